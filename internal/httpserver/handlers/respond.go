package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/httpserver/mw"
	"github.com/openshelf/shelfd/internal/logger"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusByTag maps the stable core error tags to HTTP statuses.
var statusByTag = map[string]int{
	"FIELD_EMPTY":               http.StatusBadRequest,
	"FIELD_TOO_LONG":            http.StatusBadRequest,
	"INVALID_CHARACTER":         http.StatusBadRequest,
	"INVALID_IDENTIFIER":        http.StatusBadRequest,
	"INVALID_CONTENT_POINTER":   http.StatusBadRequest,
	"INVALID_SUPER_ADMIN":       http.StatusBadRequest,
	"SELF_TRANSFER_NOT_ALLOWED": http.StatusBadRequest,

	"ONLY_SUPER_ADMIN":         http.StatusForbidden,
	"INSUFFICIENT_PERMISSIONS": http.StatusForbidden,

	"NOT_FOUND":         http.StatusNotFound,
	"ADMIN_NOT_FOUND":   http.StatusNotFound,
	"CURATOR_NOT_FOUND": http.StatusNotFound,

	"ROLE_LIMIT_EXCEEDED":              http.StatusConflict,
	"DUPLICATE_ADMIN":                  http.StatusConflict,
	"DUPLICATE_CURATOR":                http.StatusConflict,
	"DUPLICATE_CREDENTIAL":             http.StatusConflict,
	"DUPLICATE_IDENTIFIER":             http.StatusConflict,
	"TRANSFER_ALREADY_PENDING":         http.StatusConflict,
	"NO_PENDING_TRANSFER":              http.StatusConflict,
	"RECOVERY_ALREADY_PENDING":         http.StatusConflict,
	"NO_RECOVERY_PENDING":              http.StatusConflict,
	"ALREADY_VOTED_FOR_RECOVERY":       http.StatusConflict,
	"INSUFFICIENT_ADMINS_FOR_RECOVERY": http.StatusConflict,

	"PROGRAM_PAUSED": http.StatusLocked,

	"TIMELOCK_NOT_EXPIRED": http.StatusTooEarly,

	"RATE_LIMIT_COOLDOWN":  http.StatusTooManyRequests,
	"RATE_LIMIT_DAILY_CAP": http.StatusTooManyRequests,
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a core error to its HTTP status and stable tag. Non-core
// errors become opaque 500s; the detail goes to the log only.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	tag := domain.TagOf(err)
	if tag == "" {
		log.Error("internal error", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "INTERNAL",
			Message: "internal error",
		})
		return
	}
	status, ok := statusByTag[tag]
	if !ok {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: tag, Message: err.Error()})
}

// callerPrincipal extracts the pre-authenticated principal from the request
// header. Writes a 401 and returns false when absent or malformed.
func callerPrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	raw := r.Header.Get(mw.PrincipalHeader)
	if raw == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "MISSING_PRINCIPAL",
			Message: "missing " + mw.PrincipalHeader + " header",
		})
		return domain.Principal{}, false
	}
	p, err := domain.ParsePrincipal(raw)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "INVALID_PRINCIPAL",
			Message: err.Error(),
		})
		return domain.Principal{}, false
	}
	return p, true
}
