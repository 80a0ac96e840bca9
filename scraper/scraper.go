// Package scraper defines the common lifecycle of the background
// scrapers that feed the raw log.
package scraper

import (
	"log"
	"time"
)

// FeedScraper is something that runs in the background maintaining a
// streaming session with a realtime feed and persisting what it receives
type FeedScraper interface {
	ID() string
	Init(log *log.Logger) error
	Begin() error
	End()
	Running() bool
	LastFrame() time.Time
}
