package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls []time.Time
	err   error
}

func (f *fakePurger) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	f.calls = append(f.calls, now)
	return 2, f.err
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestTokenPurgeJob_RunUsesClock(t *testing.T) {
	p := &fakePurger{}
	job := NewTokenPurgeJob(p, "", discard())
	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return at }

	purged, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)
	require.Len(t, p.calls, 1)
	assert.Equal(t, at, p.calls[0])
}

func TestTokenPurgeJob_RunReportsErrors(t *testing.T) {
	p := &fakePurger{err: errors.New("db down")}
	job := NewTokenPurgeJob(p, "", discard())
	purged, err := job.Run(context.Background())
	assert.EqualError(t, err, "db down")
	assert.Zero(t, purged)
}

func TestTokenPurgeJob_InvalidSchedule(t *testing.T) {
	job := NewTokenPurgeJob(&fakePurger{}, "every now and then", discard())
	assert.Error(t, job.Start())
}

func TestTokenPurgeJob_StartStop(t *testing.T) {
	job := NewTokenPurgeJob(&fakePurger{}, "@every 1h", discard())
	require.NoError(t, job.Start())
	job.Stop()
}
