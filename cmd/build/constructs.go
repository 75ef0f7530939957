package main

import (
	"github.com/spf13/cobra"

	"github.com/openreceptor/receptordb/internal/build"
	"github.com/openreceptor/receptordb/internal/repository"
	"github.com/openreceptor/receptordb/pkg/logger"
)

func newConstructsCmd() *cobra.Command {
	var (
		filenames []string
		purge     bool
	)

	cmd := &cobra.Command{
		Use:   "constructs",
		Short: "Build engineered construct records from their definitions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer logger.Sync()

			builder := build.NewConstructBuilder(cfg.DataDir, cfg.DefaultProteinState, build.ConstructBuilderDeps{
				Proteins: repository.NewProteinRepository(db),
				Residues: repository.NewResidueRepository(db),
				Segments: repository.NewSegmentRepository(db),
				Fusions:  repository.NewFusionRepository(db),
			})

			if purge {
				if _, err := builder.Purge(ctx); err != nil {
					return err
				}
			}
			return summarize([]*build.Report{builder.Run(ctx, filenames)})
		},
	}

	cmd.Flags().StringArrayVar(&filenames, "filename", nil,
		"construct file to import; repeat the flag for several files")
	cmd.Flags().BoolVar(&purge, "purge", false,
		"delete existing construct records before importing")
	return cmd
}
