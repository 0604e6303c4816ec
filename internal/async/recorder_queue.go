package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/joseph-ayodele/resume-analyzer/internal/history"
)

type RecorderQueue struct {
	store   *history.Store
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*RecorderQueue)

func WithWorkers(n int) Option {
	return func(q *RecorderQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *RecorderQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithRecordTimeout(d time.Duration) Option {
	return func(q *RecorderQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewRecorderQueue(store *history.Store, logger *slog.Logger, opts ...Option) *RecorderQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &RecorderQueue{
		store:   store,
		logger:  logger,
		workers: 2,
		timeout: 30 * time.Second,
		ch:      make(chan Job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *RecorderQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("history worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.store.RecordBatch(ctx, job.Batch, job.Records)
					cancel()

					if err != nil {
						q.logger.Error("history record failed",
							"worker_id", workerID, "batch_id", job.Batch.ID, "error", err)
					} else {
						q.logger.Info("history record written",
							"worker_id", workerID, "batch_id", job.Batch.ID,
							"rows", len(job.Records),
							"wait_ms", time.Since(job.SubmittedAt).Milliseconds())
					}
				}

				q.logger.Info("history worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *RecorderQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "batch_id", job.Batch.ID)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued batch for recording", "batch_id", job.Batch.ID)
	default:
		// A full queue drops the record rather than delaying the caller.
		q.logger.Warn("queue full, dropping batch record", "batch_id", job.Batch.ID)
	}
	return nil
}

func (q *RecorderQueue) Shutdown(ctx context.Context) {
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
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
