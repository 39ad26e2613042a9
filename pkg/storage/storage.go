package storage

import (
	"context"
	"time"
)

// Run is the persisted record of one completed check run.
type Run struct {
	ID               int
	StartedAt        time.Time
	FinishedAt       time.Time
	Documents        int
	DocumentsSkipped int
	LinksFound       int
	ChecksPerformed  int
	CacheHits        int
	Broken           int
}

// BrokenLink is one failure found during a run.
type BrokenLink struct {
	Document string
	URL      string
	Label    string
	Code     int // HTTP status, 0 for non-status failures
}

// Storage persists run history. A nil Storage disables persistence; the run
// itself is always in-memory.
type Storage interface {
	SaveRun(ctx context.Context, run Run, broken []BrokenLink) (int, error)
	Close() error
}
