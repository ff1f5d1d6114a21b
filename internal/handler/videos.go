package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rvslm/youtubemobile/internal/export"
	"github.com/rvslm/youtubemobile/internal/service"
	"github.com/rvslm/youtubemobile/internal/store"
	"github.com/rvslm/youtubemobile/pkg/logger"
)

// VideoHandler serves the aggregated video table: filtered listing, CSV
// export and bulk clear.
type VideoHandler struct {
	repo store.VideoRepository
	loc  *time.Location
}

// NewVideoHandler creates a VideoHandler rendering times in loc.
func NewVideoHandler(repo store.VideoRepository, loc *time.Location) *VideoHandler {
	return &VideoHandler{repo: repo, loc: loc}
}

// List returns the stored rows after applying the caller's filter and
// sort parameters.
func (h *VideoHandler) List(c *gin.Context) {
	records, err := h.repo.FetchAll(c.Request.Context())
	if err != nil {
		logger.Log.Error("fetch videos failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not read the video table")
		return
	}

	filtered := service.ApplyView(records, viewOptionsFromQuery(c), time.Now())
	c.JSON(http.StatusOK, gin.H{
		"count":  len(filtered),
		"videos": filtered,
	})
}

// Export streams the same filtered set as CSV.
func (h *VideoHandler) Export(c *gin.Context) {
	records, err := h.repo.FetchAll(c.Request.Context())
	if err != nil {
		logger.Log.Error("fetch videos failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not read the video table")
		return
	}

	filtered := service.ApplyView(records, viewOptionsFromQuery(c), time.Now())

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="youtube_monitor.csv"`)
	if err := export.WriteCSV(c.Writer, filtered, h.loc); err != nil {
		logger.Log.Error("csv export failed", zap.Error(err))
	}
}

// Clear deletes every stored row.
func (h *VideoHandler) Clear(c *gin.Context) {
	if err := h.repo.ClearAll(c.Request.Context()); err != nil {
		logger.Log.Error("clear videos failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not clear the video table")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
