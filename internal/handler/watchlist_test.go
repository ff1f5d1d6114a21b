package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvslm/youtubemobile/internal/models"
)

func newWatchlistRouter(t *testing.T, path string, fetcher *stubFetcher) *gin.Engine {
	t.Helper()

	h, err := NewWatchlistHandler(newTestMonitor(t, fetcher), path)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/api/v1/watchlist", h.List)
	router.PUT("/api/v1/watchlist", h.Replace)
	router.GET("/api/v1/watchlist/channels", h.Channels)
	return router
}

func TestWatchlistHandler_ListStartsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("@somenews\n"), 0o644))

	router := newWatchlistRouter(t, path, &stubFetcher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/watchlist", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entries":["@somenews"]}`, w.Body.String())
}

func TestWatchlistHandler_ReplaceRewritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	router := newWatchlistRouter(t, path, &stubFetcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/watchlist",
		strings.NewReader(`{"entries":["@one","@two"]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@one\n@two\n", string(data))
}

func TestWatchlistHandler_Channels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	require.NoError(t, os.WriteFile(path,
		[]byte("UCabcdefghij1234567890-_\n@somenews\n@nobody\n"), 0o644))

	fetcher := &stubFetcher{handles: map[string]string{"somenews": "UCzyxwvutsrq0987654321-_"}}
	router := newWatchlistRouter(t, path, fetcher)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/watchlist/channels", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Channels   []models.ChannelRecord `json:"channels"`
		Unresolved []string               `json:"unresolved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	ids := make([]string, 0, len(body.Channels))
	for _, ch := range body.Channels {
		ids = append(ids, ch.ChannelID)
	}
	assert.ElementsMatch(t, []string{"UCabcdefghij1234567890-_", "UCzyxwvutsrq0987654321-_"}, ids)
	assert.Equal(t, []string{"@nobody"}, body.Unresolved)
}
