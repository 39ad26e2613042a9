// Package scan drives the run: fetch the corpus listing, then for each
// document fetch, parse, resolve and check every link, reporting failures.
// Execution is strictly sequential; the link cache is the only shared state.
package scan

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/creativecommons/linkchecker/pkg/check"
	"github.com/creativecommons/linkchecker/pkg/config"
	"github.com/creativecommons/linkchecker/pkg/license"
	"github.com/creativecommons/linkchecker/pkg/process"
	"github.com/creativecommons/linkchecker/pkg/report"
	"github.com/creativecommons/linkchecker/pkg/storage"
)

type ScanStats struct {
	StartTime        time.Time
	Documents        int
	DocumentsSkipped int
	LinksFound       int
	Broken           int
}

func (s *ScanStats) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}

type Scanner struct {
	cfg      *config.Config
	reporter *report.Reporter
	cache    *check.Cache
	store    storage.Storage

	// client fetches the listing and documents. It intentionally carries no
	// timeout; only per-link status checks are deadlined.
	client *http.Client

	Stats   ScanStats
	broken  []storage.BrokenLink
	errFlag bool
}

func New(cfg *config.Config, rep *report.Reporter, store storage.Storage) *Scanner {
	checker := check.NewChecker(cfg.Checker.UserAgent, cfg.Checker.GetTimeout())
	return &Scanner{
		cfg:      cfg,
		reporter: rep,
		store:    store,
		cache:    check.NewCache(checker.Check),
		client:   &http.Client{},
	}
}

// Run checks every document in the corpus and reports whether at least one
// broken link was found. A listing failure is the only fatal error; anything
// later degrades to a per-document or per-link outcome.
func (s *Scanner) Run(ctx context.Context) (bool, error) {
	s.Stats.StartTime = time.Now()

	names, err := s.fetchListing(ctx)
	if err != nil {
		return false, err
	}
	s.reporter.ListingSize(len(names))

	for _, name := range names {
		s.checkDocument(ctx, license.Document{Name: name})
	}

	slog.Info("run complete",
		slog.Int("documents", s.Stats.Documents),
		slog.Int("skipped", s.Stats.DocumentsSkipped),
		slog.Int("links", s.Stats.LinksFound),
		slog.Int("checks", s.cache.Len()),
		slog.Int("cache_hits", s.cache.Hits()),
		slog.Int("broken", s.Stats.Broken),
		slog.Duration("elapsed", s.Stats.Elapsed()),
	)

	if s.store != nil {
		if _, err := s.store.SaveRun(ctx, s.runRecord(), s.broken); err != nil {
			slog.Error("failed to save run", slog.Any("err", err))
		}
	}

	return s.errFlag, nil
}

func (s *Scanner) checkDocument(ctx context.Context, doc license.Document) {
	s.reporter.Checking(doc.Name)

	if !doc.IsHTML() {
		s.Stats.DocumentsSkipped++
		slog.Debug("encountered non-html file, skipping", slog.String("name", doc.Name))
		return
	}

	base := license.BaseURL(s.cfg.Source.CanonicalHost, doc.Key())
	s.reporter.BaseURL(base)

	baseURL, err := url.Parse(base)
	if err != nil {
		s.Stats.DocumentsSkipped++
		slog.Warn("bad base url, skipping document", slog.String("name", doc.Name), slog.Any("err", err))
		return
	}

	body, err := s.fetchDocument(ctx, doc.Name)
	if err != nil {
		s.Stats.DocumentsSkipped++
		slog.Warn("failed to fetch document, skipping", slog.String("name", doc.Name), slog.Any("err", err))
		return
	}

	anchors, err := process.ExtractAnchors(bytes.NewReader(body))
	if err != nil {
		s.Stats.DocumentsSkipped++
		slog.Warn("failed to parse document, skipping", slog.String("name", doc.Name), slog.Any("err", err))
		return
	}
	slog.Debug("links found", slog.String("name", doc.Name), slog.Int("count", len(anchors)))

	caught := 0
	for _, a := range anchors {
		if !a.HasHref {
			slog.Debug("found anchor tag without href", slog.String("tag", a.Raw))
			continue
		}
		if a.Href == "" || strings.HasPrefix(a.Href, "#") {
			slog.Debug("skipping internal link", slog.String("tag", a.Raw))
			continue
		}

		resolved := check.Resolve(a.Href, baseURL)
		res := s.cache.GetOrCheck(resolved)
		if res.OK() {
			continue
		}

		caught++
		if caught == 1 {
			s.reporter.DocumentHeader(doc.Name, base)
		}
		s.errFlag = true
		s.Stats.Broken++
		s.reporter.BrokenLink(res.Label(), a.Raw)
		s.broken = append(s.broken, storage.BrokenLink{
			Document: doc.Name,
			URL:      resolved,
			Label:    res.Label(),
			Code:     res.Code,
		})
	}

	s.Stats.LinksFound += len(anchors)
	s.Stats.Documents++
}

func (s *Scanner) runRecord() storage.Run {
	return storage.Run{
		StartedAt:        s.Stats.StartTime,
		FinishedAt:       time.Now(),
		Documents:        s.Stats.Documents,
		DocumentsSkipped: s.Stats.DocumentsSkipped,
		LinksFound:       s.Stats.LinksFound,
		ChecksPerformed:  s.cache.Len(),
		CacheHits:        s.cache.Hits(),
		Broken:           s.Stats.Broken,
	}
}
