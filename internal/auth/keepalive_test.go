package auth

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// countingProvider counts lease acquisitions and optionally fails them.
type countingProvider struct {
	calls atomic.Int64
	err   error
}

func (p *countingProvider) AcquireLease(ctx context.Context) (*Lease, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return &Lease{Token: &oauth2.Token{AccessToken: "tok"}, AcquiredAt: time.Now()}, nil
}

func waitForCalls(t *testing.T, p *countingProvider, n int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p.calls.Load() >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected at least %d lease acquisitions, got %d", n, p.calls.Load())
}

func TestKeepaliveRenewsImmediatelyOnStart(t *testing.T) {
	provider := &countingProvider{}
	k := NewKeepalive(provider, time.Hour, nil)
	defer k.Stop()

	k.Start(context.Background())
	waitForCalls(t, provider, 1)
}

func TestKeepaliveRenewsOnInterval(t *testing.T) {
	provider := &countingProvider{}
	k := NewKeepalive(provider, 20*time.Millisecond, nil)
	defer k.Stop()

	k.Start(context.Background())
	waitForCalls(t, provider, 3)
}

func TestKeepaliveSurvivesRenewalFailure(t *testing.T) {
	provider := &countingProvider{err: errors.New("exchange refused")}
	k := NewKeepalive(provider, 20*time.Millisecond, nil)
	defer k.Stop()

	k.Start(context.Background())
	// Failures are retried on the next tick, so the loop keeps going.
	waitForCalls(t, provider, 3)
	assert.True(t, k.Active())
}

func TestKeepaliveStopIsIdempotent(t *testing.T) {
	provider := &countingProvider{}
	k := NewKeepalive(provider, time.Hour, nil)

	k.Start(context.Background())
	waitForCalls(t, provider, 1)

	k.Stop()
	require.False(t, k.Active())

	// Second stop is a no-op, no panic and no state change.
	k.Stop()
	assert.False(t, k.Active())
}

func TestKeepaliveStopNeverStarted(t *testing.T) {
	k := NewKeepalive(&countingProvider{}, time.Hour, nil)

	k.Stop()
	k.Stop()
	assert.False(t, k.Active())
}

func TestKeepaliveStartAfterStopIsNoop(t *testing.T) {
	provider := &countingProvider{}
	k := NewKeepalive(provider, time.Hour, nil)

	k.Stop()
	k.Start(context.Background())

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, provider.calls.Load())
}

func TestKeepaliveReportsResults(t *testing.T) {
	provider := &countingProvider{}
	k := NewKeepalive(provider, time.Hour, nil)
	defer k.Stop()

	var observed atomic.Int64
	k.OnResult(func(err error) {
		if err == nil {
			observed.Add(1)
		}
	})

	k.Start(context.Background())
	waitForCalls(t, provider, 1)

	deadline := time.Now().Add(time.Second)
	for observed.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, int64(1), observed.Load())
}
