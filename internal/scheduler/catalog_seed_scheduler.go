package scheduler

import (
	"fmt"

	"github.com/lensfolio/printshop-backend/internal/seed"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CatalogJobs is the subset of the maintenance service the scheduler runs.
type CatalogJobs interface {
	ImportDir() (*seed.Report, error)
	Audit() ([]seed.Violation, error)
}

// CatalogSeedScheduler re-applies the rate-card directory on a cron
// schedule so edits to data files land without a deploy.
type CatalogSeedScheduler struct {
	cron     *cron.Cron
	jobs     CatalogJobs
	schedule string
	log      *logger.Logger
}

func NewCatalogSeedScheduler(jobs CatalogJobs, schedule string) *CatalogSeedScheduler {
	return &CatalogSeedScheduler{
		cron:     cron.New(),
		jobs:     jobs,
		schedule: schedule,
		log:      logger.Named("scheduler"),
	}
}

func (s *CatalogSeedScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		s.log.Error("Failed to add cron job for catalog seed", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return fmt.Errorf("invalid SEED_SCHEDULE %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Info("Catalog seed scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// RunOnce applies the rate cards and audits the result. Failures are logged;
// the next tick retries.
func (s *CatalogSeedScheduler) RunOnce() {
	s.log.Info("Starting scheduled catalog seed")

	report, err := s.jobs.ImportDir()
	if err != nil {
		s.log.Error("Scheduled catalog seed failed", err)
		return
	}
	s.log.Info("Scheduled catalog seed finished", map[string]interface{}{
		"created":   report.Created,
		"updated":   report.Updated,
		"unchanged": report.Unchanged,
	})

	violations, err := s.jobs.Audit()
	if err != nil {
		s.log.Error("Post-seed audit failed", err)
		return
	}
	if len(violations) > 0 {
		s.log.Warn("Catalog has sub-option violations", map[string]interface{}{
			"count": len(violations),
		})
	}
}

func (s *CatalogSeedScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Catalog seed scheduler stopped")
}
