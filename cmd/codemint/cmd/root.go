package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/solatis/codemint/internal/core/config"
	"github.com/solatis/codemint/internal/core/counter"
	"github.com/solatis/codemint/internal/core/db"
	"github.com/solatis/codemint/internal/core/generator"
)

const Version = "0.1.0"

var (
	configFile string
	dbURL      string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:     "codemint",
	Version: Version,
	Short:   "Codemint business code generation engine",
	Long: `Codemint assembles human-readable business codes (order numbers, batch
numbers, serial numbers) from typed rule components, with durable atomic
counters scoped per rule, form field values, and reset cycle.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig merges the config file, environment, and CLI flags.
// Flags win when explicitly set.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootCmd.PersistentFlags().Changed("db-url") {
		cfg.DatabaseURL = dbURL
	}
	if rootCmd.PersistentFlags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// openService wires the database, named queries, counter store, and
// generation service. The caller owns closing the returned database.
func openService(cfg *config.Config) (*generator.Service, *sqlx.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("database URL required (--db-url or CODEMINT_DATABASE_URL)")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	queries, err := db.LoadQueries(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}

	store, err := counter.NewSQLStore(queries)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	service, err := generator.NewService(queries, store, cfg, log.Logger)
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	return service, database, nil
}
