package youtube

import "fmt"

// FetchError describes a failed API operation after credential rotation
// was exhausted for a page or batch. Callers that received partial
// results alongside one may keep them.
type FetchError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed: status %d: %s", e.Op, e.StatusCode, e.Message)
}
