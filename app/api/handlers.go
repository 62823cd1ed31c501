package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newslens/app/cfg"
	"newslens/app/config"
	"newslens/app/database"
	"newslens/app/feed"
	"newslens/app/tasks"
	"newslens/app/translate"
)

func NewHandler(itemRepo database.ItemRepository, metaRepo database.MetadataRepository,
	configStore *config.Store, fetcher tasks.FetcherInterface,
	translator translate.Translator, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		itemRepo:    itemRepo,
		metaRepo:    metaRepo,
		configStore: configStore,
		fetcher:     fetcher,
		translator:  translator,
		scheduler:   scheduler,
	}
}

// GetNews serves the stored feed, refreshing it first when it is stale or
// when force=true is passed. A refresh failure is logged and the stored
// items are served as-is.
func (h *Handler) GetNews(c *gin.Context) {
	force := c.Query("force") == "true"

	refreshTask := tasks.NewRefreshFeedTask(force, h.configStore, h.fetcher, h.itemRepo, h.metaRepo)
	refreshTask.Start()
	if err := refreshTask.Execute(c.Request.Context()); err != nil {
		slog.Warn("Refresh failed, serving stored items", "error", err)
	}

	source := feed.Source(c.DefaultQuery("source", string(feed.SourceAll)))
	if !source.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown source: " + string(source)})
		return
	}

	items, err := h.itemRepo.GetItems(source)
	if err != nil {
		slog.Error("Database error", "operation", "get_items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	lastUpdated, err := h.metaRepo.GetLastUpdated()
	if err != nil {
		slog.Warn("Failed to read last refresh time", "error", err)
	}

	c.JSON(http.StatusOK, NewsResponse{
		Items:       items,
		Count:       len(items),
		LastUpdated: lastUpdated,
	})
}

// Refresh forces a synchronous re-fetch of all sources.
func (h *Handler) Refresh(c *gin.Context) {
	refreshTask := tasks.NewRefreshFeedTask(true, h.configStore, h.fetcher, h.itemRepo, h.metaRepo)
	refreshTask.Start()
	if err := refreshTask.Execute(c.Request.Context()); err != nil {
		slog.Error("Forced refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}

	count, err := h.itemRepo.GetItemCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_item_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "count": count})
}

// Translate translates a batch of items. The reply always has the same
// length and order as the request; a backend failure is a 502.
func (h *Handler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.TargetLang == "" {
		req.TargetLang = "ru"
	}

	// English is the source language: nothing to do.
	if req.TargetLang == "en" || len(req.Items) == 0 {
		c.JSON(http.StatusOK, TranslateResponse{Items: req.Items})
		return
	}

	translated, err := h.translator.TranslateBatch(c.Request.Context(), req.Items, req.TargetLang)
	if err != nil {
		slog.Error("Translation failed", "count", len(req.Items), "target_lang", req.TargetLang, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation backend unavailable"})
		return
	}
	if len(translated) != len(req.Items) {
		slog.Error("Translation length mismatch", "sent", len(req.Items), "received", len(translated))
		c.JSON(http.StatusBadGateway, gin.H{"error": "translation backend returned a malformed reply"})
		return
	}

	c.JSON(http.StatusOK, TranslateResponse{Items: translated})
}

func (h *Handler) GetConfig(c *gin.Context) {
	channelCfg, err := h.configStore.Load()
	if err != nil {
		slog.Error("Failed to load channel config", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load configuration"})
		return
	}
	c.JSON(http.StatusOK, channelCfg)
}

func (h *Handler) SaveConfig(c *gin.Context) {
	var channelCfg config.Config
	if err := c.ShouldBindJSON(&channelCfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.configStore.Save(channelCfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A changed channel list should take effect promptly.
	refreshTask := tasks.NewRefreshFeedTask(true, h.configStore, h.fetcher, h.itemRepo, h.metaRepo)
	if err := h.scheduler.EnqueueTask(refreshTask); err != nil {
		slog.Warn("Failed to enqueue refresh after config save", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetPreset(c *gin.Context) {
	c.JSON(http.StatusOK, config.Preset())
}

func (h *Handler) GetStats(c *gin.Context) {
	total, err := h.itemRepo.GetItemCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_item_count", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	counts, err := h.itemRepo.GetCountBySource()
	if err != nil {
		slog.Error("Database error", "operation", "get_count_by_source", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	bySource := make(map[string]int, len(counts))
	for source, count := range counts {
		bySource[string(source)] = count
	}

	lastUpdated, err := h.metaRepo.GetLastUpdated()
	if err != nil {
		slog.Warn("Failed to read last refresh time", "error", err)
	}

	c.JSON(http.StatusOK, StatsResponse{
		Total:       total,
		BySource:    bySource,
		LastUpdated: lastUpdated,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
	}

	if count, err := h.itemRepo.GetItemCount(); err == nil {
		health["items"] = count
	}

	c.JSON(http.StatusOK, health)
}
