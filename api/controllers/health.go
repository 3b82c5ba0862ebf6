package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/pharmacy-pos-backend/api/responses"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/pharmacy-pos-backend/pkg/errors"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/logger"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/types"
)

const readyTimeout = 2 * time.Second

// Pinger is satisfied by the database and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pharmacy-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.StatusBody{Status: "live"})
	}
}

// HealthReady pings every named dependency and fails with 503 on the first error.
// Nil pingers are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Pharmacy-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
						WithDetails(map[string]any{"dependency": name}))
				return
			}
		}
		responses.WriteSuccess(w, types.StatusBody{Status: "ready"})
	}
}
