package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/infrastructure/db/mongo"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load tracking documents from a YAML file into mongo",
	Long: `Load tracking documents into the package_data collection.

The file holds a list of documents:

  - tracking_number: TN1
    status: In Transit
    last_location: Chicago Hub
    eta: 2024-06-03
    history:
      - {date: 2024-06-01, status: Order Created, location: Seller}

Existing documents with the same tracking number are replaced.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML file with tracking documents")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	docs, err := loadSeedFile(seedFile)
	if err != nil {
		return err
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

	repo := mongo.NewTrackingRepository(st.mongoDB)
	for _, doc := range docs {
		if err := repo.Upsert(ctx, doc); err != nil {
			return fmt.Errorf("seed %s: %w", doc.TrackingNumber, err)
		}
	}
	log.Info().Int("documents", len(docs)).Str("file", seedFile).Msg("seed complete")
	return nil
}

// loadSeedFile parses a YAML list of tracking documents. Every document
// needs a tracking number, and numbers must be unique within the file.
func loadSeedFile(path string) ([]domain.TrackingInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var docs []domain.TrackingInfo
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[string]bool, len(docs))
	for i := range docs {
		tn := strings.TrimSpace(docs[i].TrackingNumber)
		if tn == "" {
			return nil, fmt.Errorf("seed document %d: missing tracking_number", i)
		}
		if seen[tn] {
			return nil, fmt.Errorf("seed document %d: duplicate tracking_number %q", i, tn)
		}
		seen[tn] = true
		docs[i].TrackingNumber = tn
	}
	return docs, nil
}
