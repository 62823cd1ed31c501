package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newslens/app/config"
	"newslens/app/database"
)

// RefreshFeedTask re-fetches all configured sources and replaces the stored
// feed. Without Force it is a no-op while the stored feed is younger than
// the configured refresh interval.
type RefreshFeedTask struct {
	Task
	Force       bool
	configStore *config.Store
	fetcher     FetcherInterface
	itemRepo    database.ItemRepository
	metaRepo    database.MetadataRepository
}

func NewRefreshFeedTask(force bool, configStore *config.Store, fetcher FetcherInterface,
	itemRepo database.ItemRepository, metaRepo database.MetadataRepository) *RefreshFeedTask {
	return &RefreshFeedTask{
		Task:        NewTask(TaskTypeRefreshFeed),
		Force:       force,
		configStore: configStore,
		fetcher:     fetcher,
		itemRepo:    itemRepo,
		metaRepo:    metaRepo,
	}
}

func (t *RefreshFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cfg, err := t.configStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load channel config: %w", err)
	}

	if !t.Force && !t.isStale(cfg) {
		slog.Debug("Stored feed is fresh, skipping refresh")
		return nil
	}

	snapshot := t.fetcher.Run(ctx, cfg)
	if len(snapshot) > 0 {
		if err := t.itemRepo.UpsertItems(snapshot); err != nil {
			return fmt.Errorf("failed to store items: %w", err)
		}
	}

	cutoff := time.Now().UTC().Add(-time.Duration(cfg.CacheTTLHours) * time.Hour)
	expired, err := t.itemRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to expire old items: %w", err)
	}

	if err := t.metaRepo.SetLastUpdated(time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record refresh time: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"duration", t.GetDuration(),
		"fetched", len(snapshot),
		"expired", expired,
		"forced", t.Force)

	return nil
}

func (t *RefreshFeedTask) isStale(cfg config.Config) bool {
	last, err := t.metaRepo.GetLastUpdated()
	if err != nil {
		slog.Warn("Failed to read last refresh time, refreshing", "error", err)
		return true
	}
	if last == nil {
		return true
	}
	return time.Since(*last) >= time.Duration(cfg.RefreshIntervalMinutes)*time.Minute
}
