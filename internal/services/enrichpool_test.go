package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnrichmentPoolRunsSubmittedTask(t *testing.T) {
	pool := startedPool(t)

	lines, err := pool.Submit(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"one", "two"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestEnrichmentPoolPropagatesTaskError(t *testing.T) {
	pool := startedPool(t)

	taskErr := errors.New("generation failed")
	_, err := pool.Submit(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, taskErr
	})

	assert.ErrorIs(t, err, taskErr)
}

func TestEnrichmentPoolHonorsCallerDeadline(t *testing.T) {
	pool := startedPool(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Submit(ctx, func(ctx context.Context) ([]string, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return []string{"too late"}, nil
		}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEnrichmentPoolSkipsExpiredJobs(t *testing.T) {
	pool := startedPool(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	_, err := pool.Submit(ctx, func(ctx context.Context) ([]string, error) {
		ran = true
		return nil, nil
	})

	require.Error(t, err)
	assert.False(t, ran, "an already-cancelled job must not run")
}

func TestEnrichmentPoolBoundsButServesConcurrentSubmits(t *testing.T) {
	pool := NewEnrichmentPool(2, zap.NewNop())
	pool.Start()
	defer pool.Stop()

	const jobs = 8
	var wg sync.WaitGroup
	results := make([]error, jobs)

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = pool.Submit(context.Background(), func(ctx context.Context) ([]string, error) {
				time.Sleep(5 * time.Millisecond)
				return []string{"done"}, nil
			})
		}(i)
	}
	wg.Wait()

	for i, err := range results {
		assert.NoError(t, err, "job %d", i)
	}
}
