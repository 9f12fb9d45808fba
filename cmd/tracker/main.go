package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/packagetracker/tracker/internal/pkg/config"
	"github.com/packagetracker/tracker/pkg/logger"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "tracker",
	Short:         "Package tracking service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(grantAdminCmd)
}

// @title           Package Tracker API
// @version         1.0
// @description     Tracks parcels, keeps a local list of saved packages and notifies on status changes.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "tracker",
	})
	return cfg, log, nil
}
