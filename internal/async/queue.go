package async

import (
	"context"
	"errors"
	"time"

	"github.com/joseph-ayodele/linguabridge/internal/pipeline"
)

var ErrQueueClosed = errors.New("queue is shutting down")

// Job is one uploaded file waiting for the pipeline.
type Job struct {
	Upload      pipeline.Upload
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Ingester is the part of *pipeline.Processor the queue drives.
type Ingester interface {
	Ingest(ctx context.Context, up pipeline.Upload) (*pipeline.Result, error)
}

// DoneFunc observes each finished job. It runs on the worker goroutine.
type DoneFunc func(job Job, res *pipeline.Result, err error)
