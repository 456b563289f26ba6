package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/syndcheck/syndcheck/app/fetch"
	"github.com/syndcheck/syndcheck/app/fidelity"
	"github.com/syndcheck/syndcheck/app/schema"
	"github.com/syndcheck/syndcheck/app/tasks"
	"github.com/syndcheck/syndcheck/app/watch"
)

func NewHandler(configCache *watch.ConfigCache, resultStore *watch.ResultStore,
	client *fetch.Client, extractor *schema.Extractor, scorer *fidelity.Scorer,
	scheduler tasks.TaskSchedulerInterface, httpClient *http.Client, userAgent string) *Handler {
	return &Handler{
		configCache: configCache,
		resultStore: resultStore,
		client:      client,
		extractor:   extractor,
		scorer:      scorer,
		scheduler:   scheduler,
		httpClient:  httpClient,
		userAgent:   userAgent,
	}
}

// CheckFidelity runs the full pipeline for a single URL: fetch the page,
// resolve its canonical link, extract both schemas and score them.
func (h *Handler) CheckFidelity(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing url parameter",
		})
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid url parameter",
		})
		return
	}

	ctx := c.Request.Context()

	body, err := h.client.Get(ctx, req.URL)
	if err != nil {
		slog.Error("Failed to fetch page", "url", req.URL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to fetch page: " + err.Error(),
		})
		return
	}

	canonical, err := fetch.ResolveCanonical(body, req.URL)
	if err != nil {
		if errors.Is(err, fetch.ErrNoCanonical) {
			c.JSON(http.StatusOK, gin.H{
				"success":     false,
				"originalUrl": req.URL,
				"message":     "No canonical URL found on page",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to resolve canonical URL: " + err.Error(),
		})
		return
	}

	if canonical.SameDomain {
		// The page is its own source; there is nothing to compare.
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"originalUrl":  req.URL,
			"canonicalUrl": canonical.URL,
			"sameDomain":   true,
			"message":      "Page is canonical on its own domain",
		})
		return
	}

	originalSchema, err := h.extractor.Run(body, req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to extract page schema: " + err.Error(),
		})
		return
	}

	canonicalBody, err := h.client.Get(ctx, canonical.URL)
	if err != nil {
		slog.Error("Failed to fetch canonical page", "url", canonical.URL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to fetch canonical page: " + err.Error(),
		})
		return
	}

	canonicalSchema, err := h.extractor.Run(canonicalBody, canonical.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to extract canonical schema: " + err.Error(),
		})
		return
	}

	report := h.scorer.Score(originalSchema, canonicalSchema)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"originalUrl":     req.URL,
		"canonicalUrl":    canonical.URL,
		"fidelityScore":   report.OverallScore,
		"fidelityDetails": report,
		"originalSchema":  originalSchema,
		"canonicalSchema": canonicalSchema,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()
	health["checked_watches"] = len(h.resultStore.GetAll())

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListWatches(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	watches := make([]map[string]interface{}, 0, len(configs))

	for _, watchConfig := range configs {
		watchInfo := map[string]interface{}{
			"name":             watchConfig.Name,
			"feed_url":         watchConfig.FeedURL,
			"enabled":          watchConfig.Settings.Enabled,
			"max_items":        watchConfig.Settings.MaxItems,
			"refresh_interval": (time.Duration(watchConfig.Settings.RefreshInterval) * time.Second).String(),
		}

		if result, ok := h.resultStore.Get(watchConfig.Name); ok {
			watchInfo["feed_title"] = result.FeedTitle
			watchInfo["checked_at"] = result.CheckedAt
			watchInfo["item_count"] = len(result.Items)
		}

		watches = append(watches, watchInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"watches": watches,
		"total":   len(watches),
	})
}

func (h *Handler) APIGetWatch(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing watch name parameter"})
		return
	}

	watchConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Watch configuration not found", "watch", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch configuration not found"})
		return
	}

	details := map[string]interface{}{
		"name":             name,
		"feed_url":         watchConfig.FeedURL,
		"enabled":          watchConfig.Settings.Enabled,
		"max_items":        watchConfig.Settings.MaxItems,
		"refresh_interval": (time.Duration(watchConfig.Settings.RefreshInterval) * time.Second).String(),
		"timeout":          (time.Duration(watchConfig.Settings.Timeout) * time.Second).String(),
	}

	if result, ok := h.resultStore.Get(name); ok {
		details["result"] = result
	}

	c.JSON(http.StatusOK, details)
}

func (h *Handler) APIRecheckWatch(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing watch name parameter"})
		return
	}

	_, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Watch configuration not found", "watch", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch configuration not found"})
		return
	}

	watchConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "watch", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	checkWatchTask := tasks.NewCheckWatchTask(name, watchConfig, h.httpClient,
		h.client, h.extractor, h.scorer, h.resultStore, h.userAgent)
	err = h.scheduler.EnqueueTask(checkWatchTask)
	if err != nil {
		slog.Error("Error enqueueing check task", "watch", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue check task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Configuration reloaded and check enqueued successfully",
		"watch": gin.H{
			"name":     name,
			"feed_url": watchConfig.FeedURL,
		},
		"task": gin.H{
			"id":   checkWatchTask.ID,
			"type": checkWatchTask.Type,
		},
	})
}
