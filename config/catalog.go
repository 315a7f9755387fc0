package config

import "clementus360/mood-tracker/types"

// DefaultTaskCatalog is seeded into an empty task table.
func DefaultTaskCatalog() []types.Task {
	return []types.Task{
		{
			Title:           "Code Review",
			Description:     "Review and provide feedback on team member's code",
			DifficultyLevel: 3,
			MoodSuitability: types.CategoryNeutral,
			Tags:            []string{"technical", "collaboration"},
		},
		{
			Title:           "Bug Fixing",
			Description:     "Fix critical production bugs",
			DifficultyLevel: 4,
			MoodSuitability: types.CategoryPositive,
			Tags:            []string{"technical", "urgent"},
		},
		{
			Title:           "Documentation",
			Description:     "Update project documentation",
			DifficultyLevel: 2,
			MoodSuitability: types.CategoryNegative,
			Tags:            []string{"writing", "organization"},
		},
		{
			Title:           "Team Meeting",
			Description:     "Participate in team standup meeting",
			DifficultyLevel: 1,
			MoodSuitability: types.CategoryNegative,
			Tags:            []string{"communication", "collaboration"},
		},
		{
			Title:           "Feature Development",
			Description:     "Implement new feature based on specifications",
			DifficultyLevel: 5,
			MoodSuitability: types.CategoryPositive,
			Tags:            []string{"technical", "development"},
		},
	}
}
