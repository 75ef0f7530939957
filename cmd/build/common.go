package main

import (
	"github.com/spf13/cobra"

	"github.com/openreceptor/receptordb/internal/build"
	"github.com/openreceptor/receptordb/internal/repository"
	"github.com/openreceptor/receptordb/pkg/logger"
)

func newCommonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "common",
		Short: "Import the shared reference catalogs",
		Long: `Imports the nine reference catalogs in dependency order: web
resources, ligands, documentation, news, pages, publications, protein
segments, residue numbering schemes and anomalies.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer logger.Sync()

			loader := build.NewCommonLoader(cfg.DataDir, cfg.DefaultNumberingScheme, build.CommonLoaderDeps{
				Resources:    repository.NewWebResourceRepository(db),
				Ligands:      repository.NewLigandRepository(db),
				Content:      repository.NewContentRepository(db),
				Publications: repository.NewPublicationRepository(db),
				Segments:     repository.NewSegmentRepository(db),
				Schemes:      repository.NewSchemeRepository(db),
				Anomalies:    repository.NewAnomalyRepository(db),
			})
			return summarize(loader.Run(ctx))
		},
	}
}
