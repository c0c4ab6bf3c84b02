package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/httpserver/deps"
	"github.com/openshelf/shelfd/internal/httpserver/handlers"
	"github.com/openshelf/shelfd/internal/httpserver/mw"
)

func init() { Register(registerEntries) }

func registerEntries(r chi.Router, d deps.Deps) {
	throttle := mw.Throttle(mw.ThrottleConfig{
		Burst:        d.ThrottleBurst,
		RefillPerMin: d.ThrottlePerMin,
		TrustProxy:   d.TrustProxy,
	})

	r.Get("/api/entries/{id}", handlers.GetEntry(d))

	w := r.With(throttle)
	w.Post("/api/entries", handlers.AddEntry(d))
	w.Patch("/api/entries/{id}", handlers.UpdateEntry(d))
	w.Delete("/api/entries/{id}", handlers.RemoveEntry(d))
}
