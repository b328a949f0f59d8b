package parallel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dd0wney/cluso-simgraph/pkg/logging"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	logger    logging.Logger
}

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// ErrTaskPanicked is returned by ForEach when any call of fn panicked.
var ErrTaskPanicked = errors.New("task panicked")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// Option configures a WorkerPool.
type Option func(*WorkerPool)

// WithLogger sets the logger that receives recovered task panics.
func WithLogger(logger logging.Logger) Option {
	return func(wp *WorkerPool) {
		if logger != nil {
			wp.logger = logger
		}
	}
}

// NewWorkerPool creates a new worker pool with specified number of workers.
// Returns an error if the worker count exceeds MaxWorkers.
func NewWorkerPool(workers int, opts ...Option) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2), // Buffer for 2x workers
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(pool)
	}

	pool.start()
	return pool, nil
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// start initializes the worker goroutines
func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Recover from panics in tasks to prevent worker crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					wp.logger.Error("worker panic recovered",
						logging.Component("parallel"),
						logging.Int("worker", id),
						logging.Any("panic", fmt.Sprint(r)),
					)
				}
			}()
			task()
		}()
	}
}

// Submit adds a task to the worker pool
// Returns false if the pool is closed, true if task was submitted
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	// Check if pool is closed while holding read lock
	if wp.closed {
		return false
	}

	// Safe to send because we hold the lock and pool is not closed
	wp.taskQueue <- task
	return true
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		// Acquire write lock before closing
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait waits for all submitted tasks to complete
func (wp *WorkerPool) Wait() {
	// Close the queue and wait for workers to finish
	wp.Close()
}

// ForEach runs fn(i) for every i in [0, n) on a pool of the given size and
// returns once all calls have finished. fn must only write state owned by i.
// If any call panics, ForEach still waits for the rest and then returns
// ErrTaskPanicked naming the first failing index.
func ForEach(n, workers int, fn func(i int), opts ...Option) error {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}

	pool, err := NewWorkerPool(workers, opts...)
	if err != nil {
		return err
	}

	var (
		once     sync.Once
		panicErr error
	)
	for i := 0; i < n; i++ {
		pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					once.Do(func() {
						panicErr = fmt.Errorf("%w: index %d: %v", ErrTaskPanicked, i, r)
					})
					panic(r)
				}
			}()
			fn(i)
		})
	}
	pool.Wait()
	return panicErr
}
