package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rvslm/youtubemobile/internal/service"
	"github.com/rvslm/youtubemobile/pkg/logger"
)

// RefreshHandler triggers refresh cycles. Refreshes are synchronous: the
// response is sent after the cycle completed.
type RefreshHandler struct {
	monitor        *service.Monitor
	defaultQueries []string
}

// NewRefreshHandler creates a RefreshHandler falling back to the
// configured keyword queries when a request carries none.
func NewRefreshHandler(monitor *service.Monitor, defaultQueries []string) *RefreshHandler {
	return &RefreshHandler{monitor: monitor, defaultQueries: defaultQueries}
}

type refreshRequest struct {
	Queries []string `json:"queries"`
}

func (h *RefreshHandler) queries(c *gin.Context) []string {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && len(req.Queries) > 0 {
		return req.Queries
	}
	return h.defaultQueries
}

// Full runs a complete refresh cycle (purge, search, known-ID top-up,
// upsert).
func (h *RefreshHandler) Full(c *gin.Context) {
	summary, err := h.monitor.RefreshAll(c.Request.Context(), h.queries(c))
	if err != nil {
		logger.Log.Error("refresh failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "refresh failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Quick refreshes only videos published within the last hour.
func (h *RefreshHandler) Quick(c *gin.Context) {
	summary, err := h.monitor.QuickRefresh(c.Request.Context(), h.queries(c))
	if err != nil {
		logger.Log.Error("quick refresh failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "quick refresh failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}
