package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/infrastructure/db/mongo"
)

var grantAdminEmail string

var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin",
	Short: "Give an existing user the admin role",
	Long: `Promote a registered user to admin.

Sign-up through the API always creates plain users; this command is the
only way to grant the admin role.`,
	RunE: runGrantAdmin,
}

func init() {
	grantAdminCmd.Flags().StringVar(&grantAdminEmail, "email", "", "email of the user to promote")
	_ = grantAdminCmd.MarkFlagRequired("email")
}

func runGrantAdmin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	email := strings.ToLower(strings.TrimSpace(grantAdminEmail))
	if email == "" {
		return errors.New("--email is required")
	}

	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.WithoutCancel(ctx), log)

	if err := mongo.NewAuthRepository(st.mongoDB).UpdateRole(ctx, email, domain.RoleAdmin); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("admin role granted")
	return nil
}
