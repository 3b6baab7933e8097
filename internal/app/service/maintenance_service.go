package service

import (
	"time"

	"github.com/lensfolio/printshop-backend/internal/seed"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/metrics"
)

// Maintenance job names, used as metric labels.
const (
	JobImport = "import"
	JobDedupe = "dedupe"
	JobAudit  = "audit"
)

// MaintenanceService runs the seed routine and catalog repairs on demand.
type MaintenanceService interface {
	ImportDir() (*seed.Report, error)
	ImportFile(path string) (*seed.Report, error)
	Deduplicate() (int64, error)
	Audit() ([]seed.Violation, error)
}

type maintenanceService struct {
	importer  *seed.Importer
	dataDir   string
	publisher EventPublisher
	metrics   *metrics.JobMetrics
}

func NewMaintenanceService(importer *seed.Importer, dataDir string, publisher EventPublisher, jobMetrics *metrics.JobMetrics) MaintenanceService {
	return &maintenanceService{
		importer:  importer,
		dataDir:   dataDir,
		publisher: publisherOrNoop(publisher),
		metrics:   jobMetrics,
	}
}

// ImportDir re-applies the configured rate-card directory.
func (s *maintenanceService) ImportDir() (*seed.Report, error) {
	return s.runImport(func() (*seed.Report, error) {
		return s.importer.ApplyDir(s.dataDir)
	})
}

func (s *maintenanceService) ImportFile(path string) (*seed.Report, error) {
	return s.runImport(func() (*seed.Report, error) {
		card, err := seed.LoadFile(path)
		if err != nil {
			return nil, invalid("file", "%s", err.Error())
		}
		return s.importer.Apply(card)
	})
}

func (s *maintenanceService) runImport(apply func() (*seed.Report, error)) (*seed.Report, error) {
	start := time.Now()
	report, err := apply()
	s.metrics.ObserveDuration(JobImport, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(JobImport)
		return nil, err
	}
	s.metrics.IncSuccess(JobImport)

	if report.Created > 0 || report.Updated > 0 {
		s.publisher.Publish(newEvent(EventCatalogImported))
	}
	return report, nil
}

func (s *maintenanceService) Deduplicate() (int64, error) {
	start := time.Now()
	removed, err := s.importer.Deduplicate()
	s.metrics.ObserveDuration(JobDedupe, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(JobDedupe)
		return 0, err
	}
	s.metrics.IncSuccess(JobDedupe)

	if removed > 0 {
		logger.Info("Catalog deduplicated", map[string]interface{}{
			"removed": removed,
		})
		s.publisher.Publish(newEvent(EventCatalogImported))
	}
	return removed, nil
}

func (s *maintenanceService) Audit() ([]seed.Violation, error) {
	start := time.Now()
	violations, err := s.importer.Audit()
	s.metrics.ObserveDuration(JobAudit, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(JobAudit)
		return nil, err
	}
	s.metrics.IncSuccess(JobAudit)
	return violations, nil
}
