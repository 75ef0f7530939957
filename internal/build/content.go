package build

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/openreceptor/receptordb/internal/models"
	"github.com/openreceptor/receptordb/pkg/logger"
)

// Documentation, news and pages share a source layout: a metadata .yaml
// next to a .html sibling carrying the rendered body. The body is always
// (re)attached, so edited HTML flows through on rebuilds of records that
// already exist.

type docMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

func (l *CommonLoader) loadDocumentation(ctx context.Context) *Report {
	rep := newReport("documentation")
	dir := l.path("documentation")
	files, err := yamlFiles(dir, false)
	if err != nil {
		rep.Err = err
		return rep
	}

	for _, name := range files {
		var meta docMeta
		if err := readYAML(l.path("documentation", name), &meta); err != nil {
			rep.failedErr(name, err)
			continue
		}
		if meta.Title == "" {
			rep.failed(name, "documentation metadata without a title")
			continue
		}
		doc := models.Documentation{Title: meta.Title, Description: meta.Description, Image: meta.Image}
		created, err := l.content.GetOrCreateDocumentation(ctx, &doc)
		if err != nil {
			rep.failedErr(meta.Title, err)
			continue
		}
		html, err := readHTMLBody(htmlSibling(l.path("documentation", name)))
		if err != nil {
			rep.failedErr(meta.Title, err)
			continue
		}
		doc.HTML = html
		if err := l.content.UpdateDocumentation(ctx, &doc); err != nil {
			rep.failedErr(meta.Title, err)
			continue
		}
		if created {
			logger.L().Info("created documentation", zap.String("title", meta.Title))
			rep.created(meta.Title)
		} else {
			rep.exists(meta.Title)
		}
	}
	return rep
}

type newsMeta struct {
	Image string    `yaml:"image"`
	Date  time.Time `yaml:"date"`
}

func (l *CommonLoader) loadNews(ctx context.Context) *Report {
	rep := newReport("news")
	files, err := yamlFiles(l.path("news"), false)
	if err != nil {
		rep.Err = err
		return rep
	}

	for _, name := range files {
		var meta newsMeta
		if err := readYAML(l.path("news", name), &meta); err != nil {
			rep.failedErr(name, err)
			continue
		}
		if meta.Image == "" || meta.Date.IsZero() {
			rep.failed(name, "news metadata needs image and date")
			continue
		}
		key := meta.Date.Format("2006-01-02")
		n := models.News{Image: meta.Image, Date: meta.Date}
		created, err := l.content.GetOrCreateNews(ctx, &n)
		if err != nil {
			rep.failedErr(key, err)
			continue
		}
		html, err := readHTMLBody(htmlSibling(l.path("news", name)))
		if err != nil {
			rep.failedErr(key, err)
			continue
		}
		n.HTML = html
		if err := l.content.UpdateNews(ctx, &n); err != nil {
			rep.failedErr(key, err)
			continue
		}
		if created {
			logger.L().Info("created news", zap.String("date", key))
			rep.created(key)
		} else {
			rep.exists(key)
		}
	}
	return rep
}

type pageMeta struct {
	Title string `yaml:"title"`
}

// loadPages walks pages/ in case-insensitive filename order, which fixes
// the order pages appear in on the site.
func (l *CommonLoader) loadPages(ctx context.Context) *Report {
	rep := newReport("pages")
	files, err := yamlFiles(l.path("pages"), true)
	if err != nil {
		rep.Err = err
		return rep
	}

	for _, name := range files {
		var meta pageMeta
		if err := readYAML(l.path("pages", name), &meta); err != nil {
			rep.failedErr(name, err)
			continue
		}
		if meta.Title == "" {
			rep.failed(name, "page metadata without a title")
			continue
		}
		p := models.Page{Title: meta.Title}
		created, err := l.content.GetOrCreatePage(ctx, &p)
		if err != nil {
			rep.failedErr(meta.Title, err)
			continue
		}
		html, err := readHTMLBody(htmlSibling(l.path("pages", name)))
		if err != nil {
			rep.failedErr(meta.Title, err)
			continue
		}
		p.HTML = html
		if err := l.content.UpdatePage(ctx, &p); err != nil {
			rep.failedErr(meta.Title, err)
			continue
		}
		if created {
			logger.L().Info("created page", zap.String("title", meta.Title))
			rep.created(meta.Title)
		} else {
			rep.exists(meta.Title)
		}
	}
	return rep
}
