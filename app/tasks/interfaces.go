package tasks

import (
	"context"

	"newslens/app/config"
	"newslens/app/feed"
)

// TaskSchedulerInterface defines the interface for task scheduling
// operations. Used by the main application and the API handlers to manage
// background task processing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// FetcherInterface abstracts the source aggregator so tasks can be tested
// without hitting real upstreams.
type FetcherInterface interface {
	Run(ctx context.Context, cfg config.Config) feed.Snapshot
}
