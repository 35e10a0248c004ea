package parallel_test

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paveg/medalprep/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPool(t *testing.T) {
	ctx := context.Background()

	pool := parallel.NewWorkerPool(ctx, 0)
	defer pool.Close()
	assert.Equal(t, runtime.NumCPU(), pool.Workers())

	pool2 := parallel.NewWorkerPool(ctx, 4)
	defer pool2.Close()
	assert.Equal(t, 4, pool2.Workers())

	pool3 := parallel.NewWorkerPool(ctx, -1)
	defer pool3.Close()
	assert.Equal(t, runtime.NumCPU(), pool3.Workers())
}

func TestProcessIndexedPreservesOrder(t *testing.T) {
	pool := parallel.NewWorkerPool(context.Background(), 4)
	defer pool.Close()

	input := make([]int, 50)
	for i := range input {
		input[i] = i
	}

	results, err := parallel.ProcessIndexed(pool, input, func(_ context.Context, idx, x int) (string, error) {
		// Later items finish first.
		time.Sleep(time.Duration(50-idx) * 10 * time.Microsecond)
		return fmt.Sprintf("%d:%d", idx, x*x), nil
	})
	require.NoError(t, err)
	require.Len(t, results, 50)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("%d:%d", i, i*i), r)
	}
}

func TestProcessIndexedEmpty(t *testing.T) {
	pool := parallel.NewWorkerPool(context.Background(), 2)
	defer pool.Close()

	results, err := parallel.ProcessIndexed(pool, []int{}, func(context.Context, int, int) (int, error) {
		t.Fatal("worker should not run")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestProcessIndexedBoundsConcurrency(t *testing.T) {
	pool := parallel.NewWorkerPool(context.Background(), 2)
	defer pool.Close()

	var active, peak int32
	_, err := parallel.ProcessIndexed(pool, make([]int, 20), func(context.Context, int, int) (int, error) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&active, -1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestProcessIndexedError(t *testing.T) {
	pool := parallel.NewWorkerPool(context.Background(), 1)
	defer pool.Close()

	boom := errors.New("boom")
	var calls int32
	results, err := parallel.ProcessIndexed(pool, []int{0, 1, 2, 3, 4}, func(_ context.Context, idx, _ int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if idx == 1 {
			return 0, boom
		}
		return idx, nil
	})

	require.ErrorIs(t, err, boom)
	assert.Nil(t, results)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestProcessIndexedLowestErrorWins(t *testing.T) {
	pool := parallel.NewWorkerPool(context.Background(), 3)
	defer pool.Close()

	_, err := parallel.ProcessIndexed(pool, []int{0, 1, 2}, func(_ context.Context, idx, _ int) (int, error) {
		time.Sleep(time.Duration(3-idx) * time.Millisecond)
		return 0, fmt.Errorf("item %d", idx)
	})
	require.Error(t, err)
	assert.Equal(t, "item 0", err.Error())
}

func TestProcessIndexedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := parallel.NewWorkerPool(ctx, 2)
	defer pool.Close()
	cancel()

	_, err := parallel.ProcessIndexed(pool, []int{1, 2, 3}, func(context.Context, int, int) (int, error) {
		return 0, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
