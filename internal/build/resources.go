package build

import (
	"context"

	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/pkg/logger"
)

// loadResources ingests common_data/resources.txt: one resource per
// line, `slug name url`.
func (l *CommonLoader) loadResources(ctx context.Context) *Report {
	rep := newReport("resources")
	lines, err := tokenLines(l.path("common_data", "resources.txt"))
	if err != nil {
		rep.Err = err
		return rep
	}

	for _, tokens := range lines {
		if len(tokens) < 3 {
			rep.failed(tokens[0], "expected 3 fields: slug name url")
			continue
		}
		slug := tokens[0]
		wr, created, err := l.resources.GetOrCreate(ctx, slug, models.WebResource{
			Name: tokens[1],
			URL:  tokens[2],
		})
		if err != nil {
			rep.failedErr(slug, err)
			continue
		}
		if created {
			logger.L().Info("created resource", zap.String("slug", wr.Slug))
			rep.created(slug)
		} else {
			rep.exists(slug)
		}
	}
	return rep
}
