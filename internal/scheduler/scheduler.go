// Package scheduler runs periodic housekeeping. Its only job today is the
// nightly sweep of archived transcripts past the retention window.
package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron      *cron.Cron
	pruneFunc func(maxAge time.Duration) (int, error)
	maxAge    time.Duration
}

func New(pruneFunc func(maxAge time.Duration) (int, error), maxAge time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		pruneFunc: pruneFunc,
		maxAge:    maxAge,
	}
}

// Start registers the nightly sweep at 03:00 UTC and starts the cron loop.
// A zero retention disables the sweep entirely.
func (s *Scheduler) Start() error {
	if s.maxAge <= 0 {
		log.Println("archive retention disabled, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc("0 3 * * *", func() {
		n, err := s.pruneFunc(s.maxAge)
		if err != nil {
			log.Printf("archive sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("archive sweep removed %d transcripts", n)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduler started, archived transcripts kept for %s", s.maxAge)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}
