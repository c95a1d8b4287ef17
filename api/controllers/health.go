package controllers

import (
	"context"
	"net/http"

	"github.com/pixelcart/pixelcart-backend/api/responses"
	pkgerrors "github.com/pixelcart/pixelcart-backend/pkg/errors"
	"github.com/pixelcart/pixelcart-backend/pkg/logger"
)

// Pinger is any backing store the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports 200 when the backing store answers and 503 when it does
// not.
func Health(pinger Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "health probe unavailable"))
			return
		}
		if err := pinger.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backing store unreachable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
