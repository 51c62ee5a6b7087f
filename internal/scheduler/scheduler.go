// Package scheduler runs the periodic full crawl.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/newcodes7/smalltown-crawler/internal/usecase"
	"github.com/robfig/cron/v3"
)

// Scheduler triggers CrawlAll on a cron spec. A failing cycle is logged
// and never prevents future cycles from firing.
type Scheduler struct {
	crawler usecase.Crawler
	cron    *cron.Cron
	spec    string
}

// New creates a scheduler for the given standard 5-field cron spec.
func New(crawler usecase.Crawler, spec string) *Scheduler {
	return &Scheduler{
		crawler: crawler,
		cron:    cron.New(),
		spec:    spec,
	}
}

// Start registers the crawl job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runCycle); err != nil {
		return fmt.Errorf("register crawl schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	slog.Info("crawl schedule registered", "spec", s.spec)
	return nil
}

// Stop stops the cron loop and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// runCycle executes one full crawl. Nothing may escape: a panic or error
// in one cycle must not disable the schedule.
func (s *Scheduler) runCycle() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduled crawl panicked", "panic", r)
		}
	}()

	slog.Info("scheduled crawl started")
	results := s.crawler.CrawlAll(context.Background())

	var successes, failures int
	var newArticles int
	for _, result := range results {
		if result.Success {
			successes++
			newArticles += result.NewArticles
			continue
		}
		failures++
		name := "unknown"
		if result.Organization != nil {
			name = result.Organization.Name
		}
		slog.Warn("scheduled crawl failure", "org", name, "error", result.ErrorMessage)
	}

	slog.Info("scheduled crawl finished",
		"successes", successes,
		"failures", failures,
		"new_articles", newArticles,
	)
}
