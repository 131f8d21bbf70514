package cli

import (
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"geoquiz-service/internal/config"
	"geoquiz-service/internal/infra/postgres"
	"geoquiz-service/internal/logging"
)

// NewSeedCmd loads the configured question bank into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the question bank into the questions table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			logger := logging.New(cfg.App.Name, cfg.App.Env, cfg.Log.Level)
			ctx := logging.IntoContext(cmd.Context(), logger)

			if err := runMigrations(ctx, cfg); err != nil {
				return err
			}
			questions, err := bankQuestions(cfg)
			if err != nil {
				return err
			}
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			if err := postgres.SeedQuestions(ctx, pool, questions); err != nil {
				return err
			}
			logger.Info().Int("questions", len(questions)).Msg("question bank seeded")
			return nil
		},
	}
}
