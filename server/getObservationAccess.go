package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
)

// getObservationAccess reports what the caller may do with an observation.
// The response is advisory; every mutating route re-checks permissions.
func (h AppServer) getObservationAccess(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}

	observationID, herr := observationIDFromContext(ctx)
	if herr != nil {
		return herr
	}

	info := h.Access.GetAccessInfo(observationID, caller.ToPrincipal())
	jsonResponse(w, mapping.MapAccessInfoToProtocol(info))
	return nil
}
