package build

import (
	"context"

	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/models"
	appErr "github.com/openreceptor/receptordb/pkg/errors"
	"github.com/openreceptor/receptordb/pkg/logger"
)

type publicationEntry struct {
	Title           string `yaml:"title"`
	Authors         string `yaml:"authors"`
	Year            int    `yaml:"year"`
	Reference       string `yaml:"reference"`
	JournalSlug     string `yaml:"journal_slug"`
	JournalName     string `yaml:"journal_name"`
	WeblinkResource string `yaml:"weblink_resource"`
	WeblinkIndex    string `yaml:"weblink_index"`
}

// loadPublications ingests publications_data/publications.yaml. Every
// entry links out through a web resource; a resource that was never
// loaded means the resources stage is broken, so the stage aborts
// rather than producing publications without links.
func (l *CommonLoader) loadPublications(ctx context.Context) *Report {
	rep := newReport("publications")

	var entries []publicationEntry
	if err := readYAML(l.path("publications_data", "publications.yaml"), &entries); err != nil {
		rep.Err = err
		return rep
	}

	for _, entry := range entries {
		wr, err := l.resources.GetBySlug(ctx, entry.WeblinkResource)
		if err != nil {
			rep.Err = appErr.Wrap(err, appErr.CodeDependency,
				"weblink resource "+entry.WeblinkResource+" not loaded")
			return rep
		}
		wl, _, err := l.resources.GetOrCreateLink(ctx, entry.WeblinkIndex, wr.ID)
		if err != nil {
			rep.failedErr(entry.Title, err)
			continue
		}
		j, _, err := l.publications.GetOrCreateJournal(ctx, entry.JournalSlug, entry.JournalName)
		if err != nil {
			rep.failedErr(entry.Title, err)
			continue
		}
		pub := models.Publication{
			Title:     entry.Title,
			Authors:   entry.Authors,
			Year:      entry.Year,
			Reference: entry.Reference,
			JournalID: j.ID,
			WebLinkID: wl.ID,
		}
		created, err := l.publications.GetOrCreate(ctx, &pub)
		if err != nil {
			rep.failedErr(entry.Title, err)
			continue
		}
		if created {
			logger.L().Info("created publication",
				zap.String("title", entry.Title), zap.Int("year", entry.Year))
			rep.created(entry.Title)
		} else {
			rep.exists(entry.Title)
		}
	}
	return rep
}
