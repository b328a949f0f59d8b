package parallel

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-simgraph/pkg/logging"
)

func TestNewWorkerPoolSizing(t *testing.T) {
	_, err := NewWorkerPool(math.MaxInt)
	assert.ErrorIs(t, err, ErrTooManyWorkers)

	tests := []struct {
		name     string
		workers  int
		expected int
	}{
		{"zero defaults to one", 0, 1},
		{"negative defaults to one", -5, 1},
		{"exact", 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewWorkerPool(tt.workers)
			require.NoError(t, err)
			defer pool.Close()
			assert.Equal(t, tt.expected, pool.Workers())
			assert.Equal(t, tt.expected*2, cap(pool.taskQueue))
		})
	}
}

// TestWorkerPoolTaskExecution tests that all submitted tasks execute
func TestWorkerPoolTaskExecution(t *testing.T) {
	pool, err := NewWorkerPool(5)
	require.NoError(t, err)

	numTasks := 50
	executed := make([]bool, numTasks)

	for i := 0; i < numTasks; i++ {
		taskID := i
		assert.True(t, pool.Submit(func() {
			executed[taskID] = true
		}))
	}

	pool.Wait()

	for i, exec := range executed {
		assert.True(t, exec, "task %d was not executed", i)
	}
}

// TestWorkerPoolSubmitAfterClose tests that submissions after close return false
func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool, err := NewWorkerPool(2)
	require.NoError(t, err)

	pool.Close()
	pool.Close() // closing twice is safe

	assert.False(t, pool.Submit(func() {
		t.Error("This task should never execute")
	}))
}

// TestWorkerPoolCloseRace validates that closing while submitting doesn't panic
func TestWorkerPoolCloseRace(t *testing.T) {
	for iteration := 0; iteration < 20; iteration++ {
		pool, err := NewWorkerPool(4)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					pool.Submit(func() {
						time.Sleep(100 * time.Microsecond)
					})
				}
			}()
		}

		time.Sleep(time.Millisecond)
		pool.Close()
		wg.Wait()
	}
}

func TestWorkerPoolRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	pool, err := NewWorkerPool(2, WithLogger(logging.NewZapLogger(&buf, logging.ErrorLevel)))
	require.NoError(t, err)

	var counter int64
	for i := 0; i < 3; i++ {
		pool.Submit(func() { panic("intentional panic") })
	}
	for i := 0; i < 10; i++ {
		pool.Submit(func() { atomic.AddInt64(&counter, 1) })
	}
	pool.Wait()

	assert.Equal(t, int64(10), atomic.LoadInt64(&counter))
	assert.Equal(t, 3, strings.Count(buf.String(), "worker panic recovered"))
	assert.Contains(t, buf.String(), "intentional panic")
}

func TestForEach(t *testing.T) {
	results := make([]int, 100)
	err := ForEach(len(results), 7, func(i int) {
		results[i] = i * i
	})
	require.NoError(t, err)

	for i, v := range results {
		assert.Equal(t, i*i, v)
	}

	called := false
	require.NoError(t, ForEach(0, 4, func(int) { called = true }))
	assert.False(t, called)
}

func TestForEachReportsPanics(t *testing.T) {
	var buf bytes.Buffer
	var done int64
	err := ForEach(10, 3, func(i int) {
		if i == 4 {
			panic("row failed")
		}
		atomic.AddInt64(&done, 1)
	}, WithLogger(logging.NewZapLogger(&buf, logging.ErrorLevel)))

	require.ErrorIs(t, err, ErrTaskPanicked)
	assert.Contains(t, err.Error(), "index 4: row failed")
	assert.Equal(t, int64(9), atomic.LoadInt64(&done), "remaining calls still run")
	assert.Contains(t, buf.String(), "worker panic recovered")
}

func BenchmarkWorkerPoolThroughput(b *testing.B) {
	pool, _ := NewWorkerPool(10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Submit(func() {})
	}
	pool.Close()
}
