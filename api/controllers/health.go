package controllers

import (
	"context"
	"net/http"

	"github.com/janytree/storefront-dashboard/api/responses"
	"github.com/janytree/storefront-dashboard/pkg/config"
	pkgerrors "github.com/janytree/storefront-dashboard/pkg/errors"
	"github.com/janytree/storefront-dashboard/pkg/logger"
)

const envHeader = "X-Dashboard-Env"

// Pinger checks a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings redis when one is configured; a nil pinger is always ready.
func HealthReady(cfg *config.Config, redis Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if redis != nil {
			if err := redis.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
