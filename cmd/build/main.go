package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/openreceptor/receptordb/internal/build"
	"github.com/openreceptor/receptordb/pkg/config"
	"github.com/openreceptor/receptordb/pkg/database"
	"github.com/openreceptor/receptordb/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "build",
		Short:         "Batch importers for the receptor database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCommonCmd(), newConstructsCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, initializes logging and connects to the database.
func setup(ctx context.Context) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, nil, err
	}
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, db, nil
}

// summarize prints per-stage digests and turns failures into a non-zero
// exit through the returned error.
func summarize(reports []*build.Report) error {
	var failedUnits, abortedStages int
	for _, rep := range reports {
		fmt.Println(rep.Summary())
		failedUnits += rep.Count(build.StatusFailed)
		if rep.Err != nil {
			abortedStages++
		}
	}
	if failedUnits > 0 || abortedStages > 0 {
		return fmt.Errorf("build finished with %d failed units, %d aborted stages", failedUnits, abortedStages)
	}
	return nil
}
