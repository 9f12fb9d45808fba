package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/packagetracker/tracker/internal/infrastructure/db/mongo"
	"github.com/packagetracker/tracker/internal/infrastructure/db/sqlite"
	"github.com/packagetracker/tracker/internal/pkg/config"
)

// stores bundles the persistence handles every subcommand needs.
type stores struct {
	mongoClient *mongodriver.Client
	mongoDB     *mongodriver.Database
	sqlDB       *sql.DB
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	sqlDB, err := sqlite.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := sqlite.Migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("path", cfg.SQLite.Path).Msg("opened saved packages store")

	return &stores{mongoClient: client, mongoDB: db, sqlDB: sqlDB}, nil
}

func (s *stores) close(ctx context.Context, log zerolog.Logger) {
	if err := s.sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("close sqlite")
	}
	if err := s.mongoClient.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("disconnect mongo")
	}
}
