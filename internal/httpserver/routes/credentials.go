package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/openshelf/shelfd/internal/httpserver/deps"
	"github.com/openshelf/shelfd/internal/httpserver/handlers"
	"github.com/openshelf/shelfd/internal/httpserver/mw"
)

func init() { Register(registerCredentials) }

func registerCredentials(r chi.Router, d deps.Deps) {
	throttle := mw.Throttle(mw.ThrottleConfig{
		Burst:        d.ThrottleBurst,
		RefillPerMin: d.ThrottlePerMin,
		TrustProxy:   d.TrustProxy,
	})

	r.With(throttle).Post("/api/credentials", handlers.MintCredential(d))
	r.Get("/api/credentials/{principal}", handlers.VerifyCredential(d))
}
