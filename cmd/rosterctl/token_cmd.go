package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Dosada05/cup-roster/middleware"
	"github.com/Dosada05/cup-roster/models"
)

func newTokenCmd() *cobra.Command {
	var (
		userID int
		role   string
		ttl    time.Duration
		secret string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				_ = godotenv.Load()
				secret = os.Getenv("JWT_SECRET_KEY")
			}
			if secret == "" {
				return errors.New("JWT_SECRET_KEY is not set and --secret was not given")
			}
			r := models.UserRole(role)
			switch r {
			case models.RoleAdmin, models.RoleStaff, models.RoleReadOnly:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			token, err := middleware.NewAuthenticator(secret).NewToken(userID, r, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().IntVar(&userID, "user", 0, "User ID stored in the token (required)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleStaff), "Role: admin, staff or readonly")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (defaults to JWT_SECRET_KEY)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
