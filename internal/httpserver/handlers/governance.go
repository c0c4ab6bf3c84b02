package handlers

import (
	"net/http"

	"github.com/openshelf/shelfd/internal/httpserver/deps"
)

func InitiateTransfer(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		candidate, ok := decodePrincipalBody(w, r)
		if !ok {
			return
		}
		if err := d.Core.InitiateTransfer(r.Context(), caller, candidate); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func ConfirmTransfer(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.ConfirmTransfer(r.Context(), caller); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CancelTransfer(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.CancelTransfer(r.Context(), caller); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func InitiateRecovery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		candidate, ok := decodePrincipalBody(w, r)
		if !ok {
			return
		}
		if err := d.Core.InitiateRecovery(r.Context(), caller, candidate); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func VoteRecovery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.VoteRecovery(r.Context(), caller); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CancelRecovery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		if err := d.Core.CancelRecovery(r.Context(), caller); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := d.Core.Status(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
