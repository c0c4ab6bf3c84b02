package handlers

import (
	"net/http"

	"github.com/openshelf/shelfd/internal/httpserver/deps"
	"github.com/openshelf/shelfd/internal/logger"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports whether the backing store is reachable. With the in-memory
// store there is nothing external to check.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.RedisClient != nil {
			if err := d.RedisClient.Ping(r.Context()).Err(); err != nil {
				d.Logger.Warn("readiness probe failed", logger.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
				return
			}
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
