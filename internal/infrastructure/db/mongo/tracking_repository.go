package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/packagetracker/tracker/internal/core/domain"
)

const collectionPackageData = "package_data"

// TrackingRepository reads tracking documents keyed by tracking number.
// It implements ports.TrackingSource.
type TrackingRepository struct {
	col *mongo.Collection
}

func NewTrackingRepository(db *mongo.Database) *TrackingRepository {
	return &TrackingRepository{col: db.Collection(collectionPackageData)}
}

// Get returns the full tracking document for trackingNumber.
func (r *TrackingRepository) Get(ctx context.Context, trackingNumber string) (*domain.TrackingInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var info domain.TrackingInfo
	err := r.col.FindOne(ctx, bson.M{"tracking_number": trackingNumber}).Decode(&info)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTrackingNotFound
		}
		return nil, fmt.Errorf("find tracking document: %w", err)
	}
	return &info, nil
}

// Upsert writes info, replacing any document with the same tracking number.
// Used by the seed command.
func (r *TrackingRepository) Upsert(ctx context.Context, info domain.TrackingInfo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"tracking_number": info.TrackingNumber},
		info,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert tracking document: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique tracking number index.
func (r *TrackingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tracking_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
