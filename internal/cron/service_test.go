package cron

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/framehouse-studio/booking-backend/pkg/logger"
	"github.com/framehouse-studio/booking-backend/pkg/metrics"
)

type fakeLock struct {
	held     bool
	releases int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	if f.held {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	f.releases++
	return nil
}

type countingJob struct {
	name string
	err  error
	runs int
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func newTestCronService(t *testing.T, lock Lock, reg prometheus.Registerer, jobs ...Job) *Service {
	t.Helper()
	registry := NewRegistry()
	for _, job := range jobs {
		require.NoError(t, registry.Register(job))
	}
	service, err := NewService(ServiceParams{
		Logger:   logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard}),
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(reg),
	})
	require.NoError(t, err)
	return service
}

func TestRunOnceRunsAllJobsEvenOnFailure(t *testing.T) {
	success := &countingJob{name: "success"}
	failure := &countingJob{name: "fail", err: errors.New("boom")}
	lock := &fakeLock{}
	service := newTestCronService(t, lock, nil, failure, success)

	require.NoError(t, service.RunOnce(context.Background()))
	require.Equal(t, 1, success.runs)
	require.Equal(t, 1, failure.runs)
	require.Equal(t, 1, lock.releases)
	require.False(t, lock.held)
}

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	job := &countingJob{name: "outbox-retention"}
	reg := prometheus.NewRegistry()
	service := newTestCronService(t, &fakeLock{held: true}, reg, job)

	require.NoError(t, service.RunOnce(context.Background()))
	require.Zero(t, job.runs)

	skipped, err := testutil.GatherAndCount(reg, "maintenance_cycles_skipped_total")
	require.NoError(t, err)
	require.Equal(t, 1, skipped)
}

func TestRunOnceRecordsJobOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	service := newTestCronService(t, &fakeLock{}, reg,
		&countingJob{name: "ok"},
		&countingJob{name: "broken", err: errors.New("boom")},
	)

	require.NoError(t, service.RunOnce(context.Background()))

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil || len(m.GetLabel()) == 0 {
				continue
			}
			values[mf.GetName()+"/"+m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
		}
	}
	require.Equal(t, 1.0, values["maintenance_job_success_total/ok"])
	require.Equal(t, 1.0, values["maintenance_job_failure_total/broken"])
}

func TestRunStopsOnCancel(t *testing.T) {
	job := &countingJob{name: "once"}
	service := newTestCronService(t, &fakeLock{}, nil, job)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, job.runs)
}
