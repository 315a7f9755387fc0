// Command moodctl runs wellbeing operations against the configured store
// without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"clementus360/mood-tracker/config"
	"clementus360/mood-tracker/store"
	"clementus360/mood-tracker/wellbeing"
)

type cli struct {
	configPath string
	app        *wellbeing.App
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout); err != nil {
		os.Exit(1)
	}
}

func execute(ctx context.Context, args []string, out io.Writer) error {
	c := &cli{}
	root := newRootCommand(c)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	err := root.ExecuteContext(ctx)
	if c.app != nil {
		if cerr := c.app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func newRootCommand(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "moodctl",
		Short:        "Inspect moods, stress trends and task recommendations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			config.InitLogger(cfg.LogLevel)

			app, err := wellbeing.Bootstrap(cmd.Context(), cfg, config.Logger)
			if err != nil {
				return err
			}
			c.app = app
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to config.yaml (defaults to $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(newSeedCommand(c))
	rootCmd.AddCommand(newAnalyzeCommand(c))
	rootCmd.AddCommand(newEvaluateCommand(c))
	rootCmd.AddCommand(newSweepCommand(c))
	rootCmd.AddCommand(newRecommendCommand(c))
	return rootCmd
}

func newSeedCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default task catalog if the catalog is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := store.SeedCatalog(cmd.Context(), c.app.Store, config.DefaultTaskCatalog())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tasks\n", n)
			return nil
		},
	}
}

func newAnalyzeCommand(c *cli) *cobra.Command {
	var employeeID int64
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the stress trend assessment for an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app.Service.Assess(cmd.Context(), employeeID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a)
		},
	}
	cmd.Flags().Int64VarP(&employeeID, "employee", "e", 0, "Employee ID (required)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newEvaluateCommand(c *cli) *cobra.Command {
	var employeeID int64
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Assess an employee and dispatch an alert if warranted",
		RunE: func(cmd *cobra.Command, args []string) error {
			eval, err := c.app.Service.Evaluate(cmd.Context(), employeeID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), eval)
		},
	}
	cmd.Flags().Int64VarP(&employeeID, "employee", "e", 0, "Employee ID (required)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newSweepCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate every employee once and dispatch alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := c.app.Service.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func newRecommendCommand(c *cli) *cobra.Command {
	var (
		employeeID int64
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank tasks against an employee's latest mood",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.Service.RecommendLimit(limit, cmd.Flags().Changed("limit"))
			if err != nil {
				return err
			}
			recs, err := c.app.Service.Recommend(cmd.Context(), employeeID, n)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recs)
		},
	}
	cmd.Flags().Int64VarP(&employeeID, "employee", "e", 0, "Employee ID (required)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of tasks, positive (defaults to engine.default_recommendations)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
