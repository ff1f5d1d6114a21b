package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rvslm/youtubemobile/internal/service"
	"github.com/rvslm/youtubemobile/internal/watchlist"
	"github.com/rvslm/youtubemobile/pkg/logger"
)

// PinsHandler keeps the operator's pinned-video list. Pins are
// per-process view state, deliberately not persisted.
type PinsHandler struct {
	monitor *service.Monitor

	mu  sync.Mutex
	ids []string
}

// NewPinsHandler creates an empty PinsHandler.
func NewPinsHandler(monitor *service.Monitor) *PinsHandler {
	return &PinsHandler{monitor: monitor}
}

// List returns the pinned video IDs in pin order.
func (h *PinsHandler) List(c *gin.Context) {
	h.mu.Lock()
	ids := append([]string(nil), h.ids...)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"videoIds": ids})
}

type pinRequest struct {
	Video string `json:"video" binding:"required"`
}

// Add pins a video given its ID or any URL containing one.
func (h *PinsHandler) Add(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid pin payload: "+err.Error())
		return
	}

	id, ok := watchlist.ExtractVideoID(req.Video)
	if !ok {
		respondError(c, http.StatusBadRequest, "no video ID found in "+req.Video)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, existing := range h.ids {
		if existing == id {
			c.JSON(http.StatusOK, gin.H{"videoId": id, "pinned": true})
			return
		}
	}
	h.ids = append(h.ids, id)

	c.JSON(http.StatusCreated, gin.H{"videoId": id, "pinned": true})
}

// Remove unpins a video.
func (h *PinsHandler) Remove(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	defer h.mu.Unlock()
	for i, existing := range h.ids {
		if existing == id {
			h.ids = append(h.ids[:i], h.ids[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"videoId": id, "pinned": false})
			return
		}
	}

	respondError(c, http.StatusNotFound, "video is not pinned: "+id)
}

// Videos returns fresh details for the pinned videos, read through the
// fetcher without touching the store.
func (h *PinsHandler) Videos(c *gin.Context) {
	h.mu.Lock()
	ids := append([]string(nil), h.ids...)
	h.mu.Unlock()

	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"videos": []string{}})
		return
	}

	records, err := h.monitor.PinnedDetails(c.Request.Context(), ids)
	if err != nil {
		logger.Log.Warn("pinned detail fetch incomplete", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"videos": records})
}
