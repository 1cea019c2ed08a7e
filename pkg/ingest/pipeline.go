package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/openswoop/syllabank/pkg/database"
	"github.com/openswoop/syllabank/pkg/monitoring"
	"github.com/openswoop/syllabank/pkg/scrape"
)

// Store is the part of the course store the pipeline writes to.
type Store interface {
	ShouldIngest(ctx context.Context, code, title, fingerprint string) (bool, error)
	Save(ctx context.Context, course *scrape.Course) (int64, error)
}

// Stats tracks the outcome of one listing sync. Every listing row counts
// toward exactly one of Skipped, Unchanged, Failed or Imported; LinkFailed
// counts imported courses whose related course links were not stored.
type Stats struct {
	Total      int `json:"total"`
	Imported   int `json:"imported"`
	Unchanged  int `json:"unchanged"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	LinkFailed int `json:"linkFailed"`
}

func (s *Stats) Add(o Stats) {
	s.Total += o.Total
	s.Imported += o.Imported
	s.Unchanged += o.Unchanged
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	s.LinkFailed += o.LinkFailed
}

const (
	outcomeImported  = "imported"
	outcomeUnchanged = "unchanged"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"
)

// Notifier is told about every listing that was synced.
type Notifier interface {
	CatalogRefreshed(ctx context.Context, listingURL string, stats Stats) error
}

// Pipeline fetches a department listing and ingests every new or changed
// course on it.
type Pipeline struct {
	scraper  scrape.Scraper
	store    Store
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	notifier Notifier

	// Runs are serialized so a course is never ingested twice at once.
	mu sync.Mutex
}

func NewPipeline(scraper scrape.Scraper, store Store, metrics *monitoring.Metrics, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		scraper: scraper,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// WithNotifier sets the Notifier called after each completed run.
func (p *Pipeline) WithNotifier(n Notifier) *Pipeline {
	p.notifier = n
	return p
}

// RunAll syncs each listing in turn, stopping at the first listing that
// cannot be processed.
func (p *Pipeline) RunAll(ctx context.Context, listingURLs []string) (Stats, error) {
	var total Stats
	for _, u := range listingURLs {
		stats, err := p.Run(ctx, u)
		total.Add(stats)
		if err != nil {
			return total, fmt.Errorf("%s: %w", u, err)
		}
	}
	return total, nil
}

// Run syncs one listing. Per-course failures are counted and logged, not
// returned; an error means the listing itself could not be processed.
func (p *Pipeline) Run(ctx context.Context, listingURL string) (Stats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var stats Stats
	listing := &scrape.Listing{URL: listingURL}
	p.logger.Info("fetching listing", zap.String("url", listingURL))
	if err := p.scraper.Scrape(ctx, listing); err != nil {
		p.metrics.IncRuns("failed")
		return stats, fmt.Errorf("failed to fetch listing: %w", err)
	}

	p.logger.Info("found courses", zap.String("url", listingURL), zap.Int("count", len(listing.Courses)))
	for _, summary := range listing.Courses {
		if err := ctx.Err(); err != nil {
			p.metrics.IncRuns("canceled")
			return stats, err
		}
		stats.Total++
		outcome, linkErr := p.ingest(ctx, summary)
		switch outcome {
		case outcomeImported:
			stats.Imported++
			if linkErr {
				stats.LinkFailed++
			}
		case outcomeUnchanged:
			stats.Unchanged++
		case outcomeSkipped:
			stats.Skipped++
		case outcomeFailed:
			stats.Failed++
		}
		p.metrics.IncCourses(outcome)
	}

	p.metrics.IncRuns("completed")
	p.logger.Info("sync complete",
		zap.String("url", listingURL),
		zap.Int("total", stats.Total),
		zap.Int("imported", stats.Imported),
		zap.Int("unchanged", stats.Unchanged),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
		zap.Int("link_failed", stats.LinkFailed),
	)

	if p.notifier != nil {
		if err := p.notifier.CatalogRefreshed(ctx, listingURL, stats); err != nil {
			p.logger.Error("failed to publish refresh event", zap.String("url", listingURL), zap.Error(err))
		}
	}
	return stats, nil
}

// ingest runs one listing row through gate, fetch, decode and persist. It
// reports the outcome and whether the related course links failed.
func (p *Pipeline) ingest(ctx context.Context, summary scrape.CourseSummary) (string, bool) {
	log := p.logger.With(zap.String("code", summary.Code), zap.String("title", summary.Title.Title))

	// Placeholder rows have no code and are never ingested
	if summary.Code == "" {
		log.Debug("skipping row without a course code")
		return outcomeSkipped, false
	}

	changed, err := p.store.ShouldIngest(ctx, summary.Code, summary.Title.Title, summary.Fingerprint)
	if err != nil {
		log.Error("failed to check fingerprint", zap.Error(err))
		return outcomeFailed, false
	}
	if !changed {
		log.Debug("course unchanged")
		return outcomeUnchanged, false
	}

	detail := &scrape.Detail{Summary: summary}
	if err := p.scraper.Scrape(ctx, detail); err != nil {
		log.Warn("failed to scrape course", zap.Error(err))
		return outcomeFailed, false
	}

	id, err := p.store.Save(ctx, detail.Course)
	if errors.Is(err, database.ErrRelatedLinks) {
		log.Warn("saved course without related courses", zap.Int64("id", id), zap.Error(err))
		return outcomeImported, true
	}
	if err != nil {
		log.Error("failed to save course", zap.Error(err))
		return outcomeFailed, false
	}
	log.Info("imported course", zap.Int64("id", id))
	return outcomeImported, false
}
