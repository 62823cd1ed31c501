package api

import (
	"time"

	"newslens/app/config"
	"newslens/app/database"
	"newslens/app/feed"
	"newslens/app/tasks"
	"newslens/app/translate"
)

type Handler struct {
	itemRepo    database.ItemRepository
	metaRepo    database.MetadataRepository
	configStore *config.Store
	fetcher     tasks.FetcherInterface
	translator  translate.Translator
	scheduler   tasks.TaskSchedulerInterface
}

// NewsResponse is the payload of GET /api/news.
type NewsResponse struct {
	Items       feed.Snapshot `json:"items"`
	Count       int           `json:"count"`
	LastUpdated *time.Time    `json:"last_updated,omitempty"`
}

// StatsResponse is the payload of GET /api/stats.
type StatsResponse struct {
	Total       int            `json:"total"`
	BySource    map[string]int `json:"by_source"`
	LastUpdated *time.Time     `json:"last_updated,omitempty"`
}

// TranslateRequest is the payload of POST /api/translate. TargetLang
// defaults to "ru" when omitted.
type TranslateRequest struct {
	Items      []feed.Item `json:"items"`
	TargetLang string      `json:"target_lang"`
}

type TranslateResponse struct {
	Items []feed.Item `json:"items"`
}
