package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/packagetracker/tracker/internal/infrastructure/db/mongo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the saved packages table and the mongo indexes",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.WithoutCancel(ctx), log)

	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := mongo.EnsureIndexes(idxCtx,
		mongo.NewTrackingRepository(st.mongoDB),
		mongo.NewAuthRepository(st.mongoDB),
	); err != nil {
		return err
	}

	log.Info().Msg("migrations applied")
	return nil
}
