package scheduler

import (
	"errors"
	"testing"

	"github.com/lensfolio/printshop-backend/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobs struct {
	imports   int
	audits    int
	importErr error
}

func (f *fakeJobs) ImportDir() (*seed.Report, error) {
	f.imports++
	if f.importErr != nil {
		return nil, f.importErr
	}
	return &seed.Report{Unchanged: 12}, nil
}

func (f *fakeJobs) Audit() ([]seed.Violation, error) {
	f.audits++
	return nil, nil
}

func TestCatalogSeedScheduler_RunOnce(t *testing.T) {
	jobs := &fakeJobs{}
	NewCatalogSeedScheduler(jobs, "@hourly").RunOnce()
	assert.Equal(t, 1, jobs.imports)
	assert.Equal(t, 1, jobs.audits)
}

func TestCatalogSeedScheduler_RunOnce_SkipsAuditOnFailure(t *testing.T) {
	jobs := &fakeJobs{importErr: errors.New("rate card 003: invalid size")}
	NewCatalogSeedScheduler(jobs, "@hourly").RunOnce()
	assert.Equal(t, 1, jobs.imports)
	assert.Zero(t, jobs.audits)
}

func TestCatalogSeedScheduler_Start(t *testing.T) {
	s := NewCatalogSeedScheduler(&fakeJobs{}, "0 3 * * *")
	require.NoError(t, s.Start())
	s.Stop()

	assert.Error(t, NewCatalogSeedScheduler(&fakeJobs{}, "every tuesday").Start())
}
