package async

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProcessorQueue processes documents on a fixed pool of workers. Each document is
// handled start to finish by one worker; only separate documents run in parallel.
type ProcessorQueue struct {
	proc    Ingester
	logger  zerolog.Logger
	workers int
	timeout time.Duration
	onDone  DoneFunc

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*ProcessorQueue)

func WithWorkers(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *ProcessorQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *ProcessorQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func WithOnDone(fn DoneFunc) Option {
	return func(q *ProcessorQueue) {
		q.onDone = fn
	}
}

func NewProcessorQueue(proc Ingester, logger zerolog.Logger, opts ...Option) *ProcessorQueue {
	q := &ProcessorQueue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 10 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *ProcessorQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug().Int("worker_id", workerID).Msg("worker started")

				for job := range q.ch {
					q.run(workerID, job)
				}

				q.logger.Debug().Int("worker_id", workerID).Msg("worker stopped")
			}(i + 1)
		}
	})
}

func (q *ProcessorQueue) run(workerID int, job Job) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	res, err := q.proc.Ingest(ctx, job.Upload)
	cancel()

	ev := q.logger.Info()
	if err != nil {
		ev = q.logger.Error().Err(err)
	}
	ev.Int("worker_id", workerID).
		Str("filename", job.Upload.Filename).
		Str("trace_id", job.TraceID).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("queue.job.done")

	if q.onDone != nil {
		q.onDone(job, res, err)
	}
}

// Enqueue blocks while the queue is full, until ctx ends.
func (q *ProcessorQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn().Str("filename", job.Upload.Filename).Msg("cannot enqueue: queue is shutting down")
		return ErrQueueClosed
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now().UTC()
	}
	select {
	case q.ch <- job:
		q.logger.Debug().Str("filename", job.Upload.Filename).Msg("queued file for processing")
		return nil
	default:
	}
	q.logger.Warn().Str("filename", job.Upload.Filename).Msg("queue full, applying backpressure")
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish, or for ctx.
func (q *ProcessorQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn().Msg("shutdown interrupted by context")
	case <-done:
		q.logger.Info().Msg("queue drained, shutdown complete")
	}
}
