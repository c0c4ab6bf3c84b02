package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/httpserver/deps"
)

type principalRequest struct {
	Principal string `json:"principal"`
}

// decodePrincipalBody reads the {"principal": "<hex>"} body common to the
// role and governance endpoints.
func decodePrincipalBody(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	var req principalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "BAD_REQUEST", Message: "invalid JSON body"})
		return domain.Principal{}, false
	}
	p, err := domain.ParsePrincipal(req.Principal)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_PRINCIPAL", Message: err.Error()})
		return domain.Principal{}, false
	}
	return p, true
}

// urlPrincipal parses the {principal} path segment.
func urlPrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_PRINCIPAL", Message: err.Error()})
		return domain.Principal{}, false
	}
	return p, true
}

func AddAdmin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		newAdmin, ok := decodePrincipalBody(w, r)
		if !ok {
			return
		}
		if err := d.Core.AddAdmin(r.Context(), caller, newAdmin); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func RemoveAdmin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		admin, ok := urlPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.RemoveAdmin(r.Context(), caller, admin); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func AddCurator(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		newCurator, ok := decodePrincipalBody(w, r)
		if !ok {
			return
		}
		if err := d.Core.AddCurator(r.Context(), caller, newCurator); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func RemoveCurator(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		curator, ok := urlPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.RemoveCurator(r.Context(), caller, curator); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Pause(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.Pause(r.Context(), caller); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Unpause(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.Unpause(r.Context(), caller); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
