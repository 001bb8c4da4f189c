package ingest

import (
	"context"
	"log/slog"
	"sync"

	"newspulse/internal/observability/metrics"
)

// DefaultQueueSize is the dispatcher queue capacity when none is configured.
const DefaultQueueSize = 64

// Job is one background ingestion request: a batch of raw articles and the
// category they were fetched under.
type Job struct {
	Articles []RawArticle
	Category string
}

// Engine runs one ingestion batch. Satisfied by *Service.
type Engine interface {
	Ingest(ctx context.Context, articles []RawArticle, categoryName string) bool
}

// Dispatcher hands ingestion jobs from the request path to a single
// background worker over a bounded queue. Enqueue never blocks: a full
// queue drops the job and records the drop. This is the backpressure
// policy for the fire-and-forget hand-off.
type Dispatcher struct {
	engine    Engine
	jobs      chan Job
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// starts its drain goroutine. A non-positive capacity uses DefaultQueueSize.
func NewDispatcher(engine Engine, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	d := &Dispatcher{
		engine: engine,
		jobs:   make(chan Job, queueSize),
	}

	d.wg.Add(1)
	go d.drain()

	return d
}

// Enqueue offers a job to the queue without blocking.
// Returns false when the queue is full and the job was dropped.
func (d *Dispatcher) Enqueue(job Job) bool {
	select {
	case d.jobs <- job:
		metrics.SetIngestQueueDepth(len(d.jobs))
		return true
	default:
		metrics.RecordIngestJobDropped()
		slog.Warn("ingest queue full, dropping job",
			slog.String("category", job.Category),
			slog.Int("articles", len(job.Articles)))
		return false
	}
}

// drain executes queued jobs one at a time until the queue is closed.
func (d *Dispatcher) drain() {
	defer d.wg.Done()

	for job := range d.jobs {
		metrics.SetIngestQueueDepth(len(d.jobs))

		// バックグラウンド処理は呼び出し元のリクエストと切り離す
		if ok := d.engine.Ingest(context.Background(), job.Articles, job.Category); !ok {
			slog.Warn("background ingest failed",
				slog.String("category", job.Category),
				slog.Int("articles", len(job.Articles)))
		}
	}
}

// Close stops accepting jobs, waits for queued jobs to finish, and returns.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}
