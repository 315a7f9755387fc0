// Package engine holds the mood-to-action decision logic: score normalization,
// stress trend analysis, alert policy and task ranking. Everything here is pure.
package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid engine config")

// Config carries the thresholds every component is constructed with.
type Config struct {
	StressThreshold          float64 `yaml:"stress_threshold"`
	BurnoutThreshold         float64 `yaml:"burnout_threshold"`
	ConsecutiveDaysThreshold int     `yaml:"consecutive_days_threshold"`
	TrendWindow              int     `yaml:"trend_window"`
	DefaultRecommendations   int     `yaml:"default_recommendations"`
}

func DefaultConfig() Config {
	return Config{
		StressThreshold:          0.3,
		BurnoutThreshold:         0.2,
		ConsecutiveDaysThreshold: 3,
		TrendWindow:              7,
		DefaultRecommendations:   3,
	}
}

func (c Config) Validate() error {
	if c.StressThreshold < 0 || c.StressThreshold > 1 {
		return fmt.Errorf("%w: stress_threshold %.2f outside [0,1]", ErrInvalidConfig, c.StressThreshold)
	}
	if c.BurnoutThreshold < 0 || c.BurnoutThreshold > 1 {
		return fmt.Errorf("%w: burnout_threshold %.2f outside [0,1]", ErrInvalidConfig, c.BurnoutThreshold)
	}
	if c.BurnoutThreshold > c.StressThreshold {
		return fmt.Errorf("%w: burnout_threshold must not exceed stress_threshold", ErrInvalidConfig)
	}
	if c.ConsecutiveDaysThreshold < 1 {
		return fmt.Errorf("%w: consecutive_days_threshold must be positive", ErrInvalidConfig)
	}
	if c.TrendWindow < 1 {
		return fmt.Errorf("%w: trend_window must be positive", ErrInvalidConfig)
	}
	if c.DefaultRecommendations < 0 {
		return fmt.Errorf("%w: default_recommendations must not be negative", ErrInvalidConfig)
	}
	return nil
}
