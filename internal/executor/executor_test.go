package executor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcheronneau/homers-go/internal/model"
)

func TestProcessCollectsAllResultsInOrder(t *testing.T) {
	tasks := []model.Task{
		{Kind: model.TaskRadarr, Instance: "a", Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskRadarr, Instance: "a", RadarrMovies: []model.RadarrMovie{{Title: "A"}}}
		}},
		{Kind: model.TaskLidarr, Instance: "b", Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskLidarr, Instance: "b", LidarrArtists: []model.LidarrArtist{{Name: "B"}}}
		}},
	}

	results, err := Process(context.Background(), tasks, time.Second, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Instance)
	assert.Equal(t, "b", results[1].Instance)
}

func TestProcessRecoversPanickingTask(t *testing.T) {
	tasks := []model.Task{
		{Kind: model.TaskRadarr, Instance: "panics", Run: func(ctx context.Context) model.TaskResult {
			panic("boom")
		}},
		{Kind: model.TaskLidarr, Instance: "fine", Run: func(ctx context.Context) model.TaskResult {
			return model.TaskResult{Kind: model.TaskLidarr, Instance: "fine", LidarrArtists: []model.LidarrArtist{{Name: "ok"}}}
		}},
	}

	results, err := Process(context.Background(), tasks, time.Second, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Empty(t, results[0].RadarrMovies)
	assert.Equal(t, "panics", results[0].Instance)
	assert.Len(t, results[1].LidarrArtists, 1)
}

func TestProcessCancelsOnDeadline(t *testing.T) {
	tasks := []model.Task{
		{Kind: model.TaskRadarr, Instance: "slow", Run: func(ctx context.Context) model.TaskResult {
			select {
			case <-time.After(10 * time.Second):
				return model.TaskResult{Kind: model.TaskRadarr, Instance: "slow", RadarrMovies: []model.RadarrMovie{{Title: "late"}}}
			case <-ctx.Done():
				return model.TaskResult{Kind: model.TaskRadarr, Instance: "slow"}
			}
		}},
	}

	start := time.Now()
	results, err := Process(context.Background(), tasks, 50*time.Millisecond, 0)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].RadarrMovies)
}

func TestProcessReturnsErrorOnAlreadyExpiredDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Process(ctx, []model.Task{{Kind: model.TaskRadarr, Instance: "x", Run: func(ctx context.Context) model.TaskResult {
		return model.TaskResult{}
	}}}, time.Second, 0)
	require.ErrorIs(t, err, ErrDeadlineElapsed)
}

func TestProcessRespectsConcurrencyCap(t *testing.T) {
	var running, maxObserved int32
	tasks := make([]model.Task, 10)
	for i := range tasks {
		tasks[i] = model.Task{Kind: model.TaskRadarr, Instance: "x", Run: func(ctx context.Context) model.TaskResult {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&maxObserved)
				if n <= old || atomic.CompareAndSwapInt32(&maxObserved, old, n) {
					break
				}
			}
			defer atomic.AddInt32(&running, -1)
			time.Sleep(20 * time.Millisecond)
			return model.TaskResult{}
		}}
	}

	_, err := Process(context.Background(), tasks, time.Second, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, int(maxObserved), 2)
}
