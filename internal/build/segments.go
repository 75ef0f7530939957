package build

import (
	"context"

	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/pkg/logger"
)

// loadSegments ingests protein_data/segments.txt: token lines
// `slug category name`.
func (l *CommonLoader) loadSegments(ctx context.Context) *Report {
	rep := newReport("protein_segments")
	lines, err := tokenLines(l.path("protein_data", "segments.txt"))
	if err != nil {
		rep.Err = err
		return rep
	}

	for _, tokens := range lines {
		if len(tokens) < 3 {
			rep.failed(tokens[0], "expected 3 fields: slug category name")
			continue
		}
		slug := tokens[0]
		s, created, err := l.segments.GetOrCreate(ctx, slug, models.ProteinSegment{
			Category: tokens[1],
			Name:     tokens[2],
		})
		if err != nil {
			rep.failedErr(slug, err)
			continue
		}
		if created {
			logger.L().Info("created protein segment", zap.String("slug", s.Slug))
			rep.created(slug)
		} else {
			rep.exists(slug)
		}
	}
	return rep
}
