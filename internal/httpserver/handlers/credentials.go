package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/httpserver/deps"
)

func MintCredential(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		cred, err := d.Core.MintCredential(r.Context(), caller)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, cred)
	}
}

// VerifyCredential looks up the credential for the principal in the URL.
// It is a read and carries no caller requirement.
func VerifyCredential(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := domain.ParsePrincipal(chi.URLParam(r, "principal"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "INVALID_PRINCIPAL", Message: err.Error()})
			return
		}
		cred, err := d.Core.VerifyCredential(r.Context(), owner)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cred)
	}
}
