// Package handler exposes the operator API over gin. Handlers are thin:
// they parse view state, call the monitor or the store, and render JSON
// or CSV.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rvslm/youtubemobile/internal/models"
	"github.com/rvslm/youtubemobile/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

// viewOptionsFromQuery parses the filter/sort query parameters shared by
// the list and export endpoints.
func viewOptionsFromQuery(c *gin.Context) service.ViewOptions {
	window, _ := strconv.Atoi(c.Query("windowHours"))
	return service.ViewOptions{
		Search:      c.Query("search"),
		Channel:     c.Query("channel"),
		Category:    c.Query("category"),
		SortBy:      c.DefaultQuery("sortBy", service.SortNewest),
		WindowHours: window,
	}
}
