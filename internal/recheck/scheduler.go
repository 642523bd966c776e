package recheck

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the checker on a cron spec, for deployments without an
// external cron trigger. The first run fires immediately.
type Scheduler struct {
	Checker *Checker
	Spec    string
}

func NewScheduler(checker *Checker, spec string) *Scheduler {
	if spec == "" {
		spec = "@every 6h"
	}
	return &Scheduler{Checker: checker, Spec: spec}
}

func (s *Scheduler) Start() (*cron.Cron, error) {
	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		rep, err := s.Checker.Run(ctx)
		if err != nil {
			log.Printf("[scheduler] re-check failed: %v", err)
			return
		}
		log.Printf("[scheduler] checked %d series, %d updates", rep.Checked, len(rep.Updates))
		for _, u := range rep.Updates {
			log.Printf("[scheduler] %s", u)
		}
	}

	c := cron.New()
	go run()
	if _, err := c.AddFunc(s.Spec, run); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
