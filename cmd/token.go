package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fueltrack-api/auth"
	"fueltrack-api/utils"
)

var (
	tokenUserID string
	tokenEmail  string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a development bearer token signed with the configured secret",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if tokenUserID == "" {
			return errors.New("--user is required")
		}
		if tokenEmail != "" && !utils.IsValidEmail(tokenEmail) {
			return fmt.Errorf("invalid email %q", tokenEmail)
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token, err := auth.GenerateToken(cfg.Auth.JWTSecret, tokenUserID, tokenEmail, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "user id to put in the token")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email to put in the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 7*24*time.Hour, "token lifetime")
}
