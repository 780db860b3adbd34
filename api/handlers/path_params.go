package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// pathID extracts the {id} route parameter, falling back to the last
// path segment for direct handler tests without a chi route context.
func pathID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		segments := strings.Split(strings.Trim(strings.TrimSpace(r.URL.Path), "/"), "/")
		if len(segments) > 0 {
			raw = segments[len(segments)-1]
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
