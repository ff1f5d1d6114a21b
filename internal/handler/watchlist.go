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

// WatchlistHandler manages the flat-file channel watchlist and its
// resolved channel details. The file is rewritten on every edit.
type WatchlistHandler struct {
	monitor *service.Monitor
	path    string

	mu      sync.Mutex
	entries []string
}

// NewWatchlistHandler loads the watchlist file at path; a missing file
// starts the list empty.
func NewWatchlistHandler(monitor *service.Monitor, path string) (*WatchlistHandler, error) {
	entries, err := watchlist.Load(path)
	if err != nil {
		return nil, err
	}
	return &WatchlistHandler{monitor: monitor, path: path, entries: entries}, nil
}

// List returns the raw watchlist entries.
func (h *WatchlistHandler) List(c *gin.Context) {
	h.mu.Lock()
	entries := append([]string(nil), h.entries...)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type watchlistRequest struct {
	Entries []string `json:"entries"`
}

// Replace overwrites the watchlist with the submitted entries and
// rewrites the backing file.
func (h *WatchlistHandler) Replace(c *gin.Context) {
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid watchlist payload: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := watchlist.Save(h.path, req.Entries); err != nil {
		logger.Log.Error("watchlist save failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not save the watchlist")
		return
	}
	h.entries = req.Entries

	c.JSON(http.StatusOK, gin.H{"entries": req.Entries})
}

// Channels resolves the current entries to channel details. Unresolved
// entries are reported alongside the results.
func (h *WatchlistHandler) Channels(c *gin.Context) {
	h.mu.Lock()
	entries := append([]string(nil), h.entries...)
	h.mu.Unlock()

	channels, unresolved, err := h.monitor.WatchlistChannels(c.Request.Context(), entries)
	if err != nil {
		logger.Log.Warn("watchlist resolution incomplete", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"channels":   channels,
		"unresolved": unresolved,
	})
}
