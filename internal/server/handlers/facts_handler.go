package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/metrics"
	"github.com/mamadbah2/labshare/internal/server/views"
	"github.com/mamadbah2/labshare/pkg/clients/facts"
)

// FactsHandler serves /cat with facts fetched from the public provider.
type FactsHandler struct {
	client facts.Client
	policy *bluemonday.Policy
	logger *zap.Logger
}

// NewFactsHandler constructs the handler. Provider text may carry markup, so it is
// passed through bluemonday's UGC policy before being rendered as HTML.
func NewFactsHandler(client facts.Client, logger *zap.Logger) *FactsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FactsHandler{client: client, policy: bluemonday.UGCPolicy(), logger: logger}
}

type factsPage struct {
	Title string
	Facts []template.HTML
}

// Cat fetches facts once, without retry, and renders them.
func (h *FactsHandler) Cat(c *gin.Context) {
	fetched, err := h.client.Fetch(c.Request.Context())
	metrics.FactFetchTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		h.logger.Error("failed fetching facts", zap.Error(err))
		c.String(http.StatusBadGateway, "unable to fetch a fact")
		return
	}

	page := factsPage{Title: "Cat Fact", Facts: make([]template.HTML, 0, len(fetched))}
	for _, fact := range fetched {
		page.Facts = append(page.Facts, template.HTML(h.policy.Sanitize(fact)))
	}

	c.HTML(http.StatusOK, views.Cats, page)
}
