package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/athlete-load-api/internal/models"
	"github.com/noah-isme/athlete-load-api/internal/service"
)

var (
	tokenUser string
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	Long: `Token signs a JWT with the configured secret and issuer. Use it against
a local server; production tokens come from the identity provider.

  $ wellnessctl token --user dev --role DEVELOPER --ttl 2h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth := service.NewAuthService(logr, service.AuthConfig{
			Secret:      cfg.JWT.Secret,
			Issuer:      cfg.JWT.Issuer,
			DevTokenTTL: cfg.JWT.DevTokenTTL,
		})
		token, expiresAt, err := auth.IssueDevToken(tokenUser, models.UserRole(tokenRole), tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "dev", "username stamped into recorded_by")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(models.RoleDeveloper), "ADMIN, COACH, MEDICAL or DEVELOPER")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_DEV_TOKEN_TTL)")
	rootCmd.AddCommand(tokenCmd)
}
