package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/httpserver/deps"
	"github.com/openshelf/shelfd/internal/httpserver/handlers"
	"github.com/openshelf/shelfd/internal/httpserver/mw"
)

func init() { Register(registerGovernance) }

// Super admin handover and emergency recovery share the role endpoints'
// network restriction.
func registerGovernance(r chi.Router, d deps.Deps) {
	g := r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
	)

	g.Post("/api/transfer", handlers.InitiateTransfer(d))
	g.Post("/api/transfer/confirm", handlers.ConfirmTransfer(d))
	g.Post("/api/transfer/cancel", handlers.CancelTransfer(d))

	g.Post("/api/recovery", handlers.InitiateRecovery(d))
	g.Post("/api/recovery/vote", handlers.VoteRecovery(d))
	g.Post("/api/recovery/cancel", handlers.CancelRecovery(d))

	r.Get("/api/status", handlers.Status(d))
}
