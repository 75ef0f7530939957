package build

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/repository"
	"github.com/openreceptor/receptordb/pkg/logger"
)

// CommonLoader ingests the nine reference-data catalogs from flat files.
// Stages run in a fixed dependency order: anomalies need segments and
// numbering schemes, ligands and publications need web resources, so the
// sequence is part of the contract rather than an accident of call
// ordering.
type CommonLoader struct {
	dataDir       string
	defaultScheme string

	resources    repository.WebResourceRepository
	ligands      repository.LigandRepository
	content      repository.ContentRepository
	publications repository.PublicationRepository
	segments     repository.SegmentRepository
	schemes      repository.SchemeRepository
	anomalies    repository.AnomalyRepository
}

// CommonLoaderDeps bundles the repositories a CommonLoader writes through.
type CommonLoaderDeps struct {
	Resources    repository.WebResourceRepository
	Ligands      repository.LigandRepository
	Content      repository.ContentRepository
	Publications repository.PublicationRepository
	Segments     repository.SegmentRepository
	Schemes      repository.SchemeRepository
	Anomalies    repository.AnomalyRepository
}

func NewCommonLoader(dataDir, defaultScheme string, deps CommonLoaderDeps) *CommonLoader {
	return &CommonLoader{
		dataDir:       dataDir,
		defaultScheme: defaultScheme,
		resources:     deps.Resources,
		ligands:       deps.Ligands,
		content:       deps.Content,
		publications:  deps.Publications,
		segments:      deps.Segments,
		schemes:       deps.Schemes,
		anomalies:     deps.Anomalies,
	}
}

type stage struct {
	name string
	run  func(ctx context.Context) *Report
}

func (l *CommonLoader) stages() []stage {
	return []stage{
		{"resources", l.loadResources},
		{"ligands", l.loadLigands},
		{"documentation", l.loadDocumentation},
		{"news", l.loadNews},
		{"pages", l.loadPages},
		{"publications", l.loadPublications},
		{"protein_segments", l.loadSegments},
		{"numbering_schemes", l.loadSchemes},
		{"anomalies", l.loadAnomalies},
	}
}

// Run executes every stage in order. A stage abort (missing hard
// dependency) never blocks the stages after it.
func (l *CommonLoader) Run(ctx context.Context) []*Report {
	reports := make([]*Report, 0, 9)
	for _, s := range l.stages() {
		logger.L().Info("stage starting", zap.String("stage", s.name))
		rep := s.run(ctx)
		if rep.Err != nil {
			logger.L().Error("stage aborted", zap.String("stage", s.name), zap.Error(rep.Err))
		} else {
			logger.L().Info("stage completed", zap.String("stage", s.name), zap.String("summary", rep.Summary()))
		}
		reports = append(reports, rep)
	}
	return reports
}

func (l *CommonLoader) path(parts ...string) string {
	return filepath.Join(append([]string{l.dataDir}, parts...)...)
}
