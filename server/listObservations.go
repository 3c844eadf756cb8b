package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/protocol"
)

func (h AppServer) listObservations(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}
	d := DAOFromContext(ctx)

	pagingRequest := protocol.NewPagingRequest(r.URL.Query())

	// The mine flag switches from the public listing to the caller's own
	// observations, drafts included.
	if r.URL.Query().Get("mine") == "true" {
		if !caller.Authenticated {
			return NewAppError(http.StatusUnauthorized, errors.New("unauthorized"), "Authentication required to list own observations")
		}
		resultset, err := d.GetObservationsByOwner(caller.UserID, mapping.MapPagingRequestToDAO(pagingRequest))
		if err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error retrieving observations")
		}
		jsonResponse(w, mapping.MapObservationResultsetToProtocol(&resultset))
		return nil
	}

	// Public listing. The default table grants READ on published
	// observations to everyone, so no per-row check is needed here; the
	// listing query returns published rows only.
	resultset, err := d.GetObservations(mapping.MapPagingRequestToDAO(pagingRequest))
	if err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving observations")
	}

	jsonResponse(w, mapping.MapObservationResultsetToProtocol(&resultset))
	return nil
}
