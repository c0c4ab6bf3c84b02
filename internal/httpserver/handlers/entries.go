package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/core"
	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/httpserver/deps"
)

type addEntryRequest struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ContentPointer  string `json:"content_pointer"`
	Category        string `json:"category"`
	PublicationYear uint16 `json:"publication_year"`
}

type updateEntryRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ContentPointer  *string `json:"content_pointer"`
	Category        *string `json:"category"`
	PublicationYear *uint16 `json:"publication_year"`
}

// urlEntryID parses the {id} path segment.
func urlEntryID(w http.ResponseWriter, r *http.Request) (domain.EntryID, bool) {
	id, err := domain.ParseEntryID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidIdentifier.Tag, Message: err.Error()})
		return domain.EntryID{}, false
	}
	return id, true
}

func AddEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		var req addEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "BAD_REQUEST", Message: "invalid JSON body"})
			return
		}
		id, err := domain.ParseEntryID(req.ID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidIdentifier.Tag, Message: err.Error()})
			return
		}
		entry, err := d.Core.AddEntry(r.Context(), caller, core.NewEntry{
			ID:              id,
			Title:           req.Title,
			Author:          req.Author,
			ContentPointer:  req.ContentPointer,
			Category:        req.Category,
			PublicationYear: req.PublicationYear,
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	}
}

func GetEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlEntryID(w, r)
		if !ok {
			return
		}
		entry, err := d.Core.GetEntry(r.Context(), id)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

func UpdateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		id, ok := urlEntryID(w, r)
		if !ok {
			return
		}
		var req updateEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "BAD_REQUEST", Message: "invalid JSON body"})
			return
		}
		entry, err := d.Core.UpdateEntry(r.Context(), caller, id, core.EntryUpdate{
			Title:           req.Title,
			Author:          req.Author,
			ContentPointer:  req.ContentPointer,
			Category:        req.Category,
			PublicationYear: req.PublicationYear,
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

func RemoveEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerPrincipal(w, r)
		if !ok {
			return
		}
		id, ok := urlEntryID(w, r)
		if !ok {
			return
		}
		if err := d.Core.RemoveEntry(r.Context(), caller, id); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
