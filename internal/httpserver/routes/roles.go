package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/httpserver/deps"
	"github.com/openshelf/shelfd/internal/httpserver/handlers"
	"github.com/openshelf/shelfd/internal/httpserver/mw"
)

func init() { Register(registerRoles) }

// Role management and pause control are restricted to the operator network.
func registerRoles(r chi.Router, d deps.Deps) {
	g := r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
	)

	g.Post("/api/admins", handlers.AddAdmin(d))
	g.Delete("/api/admins/{principal}", handlers.RemoveAdmin(d))
	g.Post("/api/curators", handlers.AddCurator(d))
	g.Delete("/api/curators/{principal}", handlers.RemoveCurator(d))
	g.Post("/api/pause", handlers.Pause(d))
	g.Post("/api/unpause", handlers.Unpause(d))
}
