package build

import (
	"context"

	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/pkg/logger"
)

// loadSchemes ingests residue_data/generic_numbers/schemes.txt: token
// lines `slug short_name name [parent_slug]`. Parents must appear
// earlier in the file; an unknown parent fails the record.
func (l *CommonLoader) loadSchemes(ctx context.Context) *Report {
	rep := newReport("numbering_schemes")
	lines, err := tokenLines(l.path("residue_data", "generic_numbers", "schemes.txt"))
	if err != nil {
		rep.Err = err
		return rep
	}

	for _, tokens := range lines {
		if len(tokens) < 3 {
			rep.failed(tokens[0], "expected at least 3 fields: slug short_name name")
			continue
		}
		slug := tokens[0]
		defaults := models.ResidueNumberingScheme{
			ShortName: tokens[1],
			Name:      tokens[2],
		}
		if len(tokens) >= 4 {
			parent, err := l.schemes.GetBySlug(ctx, tokens[3])
			if err != nil {
				rep.failed(slug, "parent scheme "+tokens[3]+" not found")
				continue
			}
			defaults.ParentID = &parent.ID
		}
		s, created, err := l.schemes.GetOrCreate(ctx, slug, defaults)
		if err != nil {
			rep.failedErr(slug, err)
			continue
		}
		if created {
			logger.L().Info("created numbering scheme", zap.String("short_name", s.ShortName))
			rep.created(slug)
		} else {
			rep.exists(slug)
		}
	}
	return rep
}
