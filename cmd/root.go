package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/app"
	"github.com/abhisek/careerpath/internal/config"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "careerpath",
	Short: "AI-driven skill gap analysis, learning plans and career roadmaps",
	Long: "careerpath turns a parsed resume into a skill gap report, a weekly learning plan " +
		"and month-by-month career roadmaps, and re-tunes the plan from quiz scores and study time.",
	SilenceUsage: true,
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a careerpath.yaml config file")
	rootCmd.PersistentFlags().String("db", "", "SQLite file path or postgres URL (overrides config and CAREERPATH_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(recalcCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(careerCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration and applies the --db flag, which has the
// highest priority.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			cfg.Database = store.Config{Driver: store.DriverPostgres, DSN: dsn}
		} else {
			if err := store.EnsureDir(dsn); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
			cfg.Database = store.Config{Driver: store.DriverSQLite, DSN: dsn}
		}
	}
	return cfg, nil
}

// newLogger builds the logger. One-shot commands log warnings only unless
// --log-level says otherwise.
func newLogger(cmd *cobra.Command, cfg *config.Config, quiet bool) (*logger.Logger, error) {
	lc := cfg.Log
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		lc.Level = level
	} else if quiet {
		lc.Level = "warn"
	}
	return logger.New(lc)
}

// openApp loads configuration and wires the services. The returned cleanup
// closes storage and flushes the logger.
func openApp(cmd *cobra.Command) (*app.App, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cmd, cfg, true)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	a, err := app.New(cmd.Context(), app.Options{Config: cfg, Logger: log})
	if err != nil {
		log.Sync()
		return nil, nil, err
	}
	return a, func() {
		a.Close()
		log.Sync()
	}, nil
}
