package api

import (
	"net/http"

	"github.com/syndcheck/syndcheck/app/fetch"
	"github.com/syndcheck/syndcheck/app/fidelity"
	"github.com/syndcheck/syndcheck/app/schema"
	"github.com/syndcheck/syndcheck/app/tasks"
	"github.com/syndcheck/syndcheck/app/watch"
)

type Handler struct {
	configCache *watch.ConfigCache
	resultStore *watch.ResultStore
	client      *fetch.Client
	extractor   *schema.Extractor
	scorer      *fidelity.Scorer
	scheduler   tasks.TaskSchedulerInterface
	httpClient  *http.Client
	userAgent   string
}

// CheckRequest is the body of POST /api/check-fidelity.
type CheckRequest struct {
	URL string `json:"url"`
}
