package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/donepaid-api/internal/infrastructure/postgres"
	"github.com/jhoicas/donepaid-api/internal/infrastructure/postgres/migrate"
	"github.com/jhoicas/donepaid-api/pkg/config"
	"github.com/jhoicas/donepaid-api/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

			pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := migrate.Run(cmd.Context(), pool, log)
			if err != nil {
				return err
			}
			log.Info().Strs("applied", applied).Int("count", len(applied)).Msg("migraciones al día")
			return nil
		},
	}
}
