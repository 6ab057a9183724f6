package cmd

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"fueltrack-api/metrics"
	"fueltrack-api/repositories"
	"fueltrack-api/services"
)

var migrateUserID string

var migrateCmd = &cobra.Command{
	Use:   "migrate-fuel-logs",
	Short: "Move a user's legacy fuel logs into activities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if migrateUserID == "" {
			return errors.New("--user is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		m, err := metrics.New(nil)
		if err != nil {
			return err
		}

		svc := services.NewMigrationService(
			repositories.NewVehicleRepository(db),
			repositories.NewActivityRepository(db),
			repositories.NewFuelLogRepository(db),
			m,
		)
		report, err := svc.MigrateFuelLogs(cmd.Context(), migrateUserID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateUserID, "user", "", "id of the user whose fuel logs are migrated")
}
