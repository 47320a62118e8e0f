package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func TestScheduler_AddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("not a schedule", &countingJob{name: "bad"})
	assert.Error(t, err)
	assert.ErrorIs(t, s.RunNow("bad"), ErrUnknownJob)
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "cleanup"}
	require.NoError(t, s.AddJob("0 0 3 * * *", job))

	require.NoError(t, s.RunNow("cleanup"))
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestScheduler_RunNow_PropagatesError(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("@every 1h", &countingJob{name: "failing", err: errors.New("boom")}))

	assert.EqualError(t, s.RunNow("failing"), "boom")
}

func TestScheduler_RunPriceRefreshNow(t *testing.T) {
	s := New(zerolog.Nop())
	assert.ErrorIs(t, s.RunPriceRefreshNow(), ErrUnknownJob)

	job := &countingJob{name: PriceRefreshJobName}
	require.NoError(t, s.AddJob("0 */15 * * * *", job))

	require.NoError(t, s.RunPriceRefreshNow())
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("@every 1h", &countingJob{name: "idle"}))

	s.Start()
	s.Stop()
}
