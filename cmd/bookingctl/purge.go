package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SpaceBookingService/internal/config"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
	spaceServiceClient "github.com/m04kA/SMC-SpaceBookingService/internal/integrations/spaceservice"
	reservationsService "github.com/m04kA/SMC-SpaceBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/logger"
)

func newPurgeCmd() *cobra.Command {
	var (
		configPath string
		before     string
		timeout    time.Duration
	)

	c := &cobra.Command{
		Use:   "purge",
		Short: "Delete finished reservations older than a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff, err := time.Parse(time.DateOnly, before)
			if err != nil {
				return fmt.Errorf("invalid --before (want YYYY-MM-DD): %w", err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level, err := logger.ParseLevel(cfg.Logs.Level)
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(os.Stderr, level)

			db, err := sql.Open("postgres", cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			svc := reservationsService.NewService(
				reservationRepo.NewRepository(dbmetrics.Wrap(db, nil)),
				spaceServiceClient.NewClient(cfg.SpaceService.URL, cfg.SpaceService.TimeoutDuration(), log),
				log,
			)

			deleted, err := svc.Purge(ctx, cutoff)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d reservation(s) finished before %s\n", deleted, before)
			return nil
		},
	}

	c.Flags().StringVar(&configPath, "config", "config.toml", "path to the service config")
	c.Flags().StringVar(&before, "before", "", "cutoff date, YYYY-MM-DD")
	c.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	_ = c.MarkFlagRequired("before")

	return c
}
