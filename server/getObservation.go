package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
)

func (h AppServer) getObservation(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}
	d := DAOFromContext(ctx)

	observationID, herr := observationIDFromContext(ctx)
	if herr != nil {
		return herr
	}

	// Auth check
	info := h.Access.GetAccessInfo(observationID, caller.ToPrincipal())
	if info.AccessLevel == auth.AccessLevelDenied {
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to read this observation")
	}

	dbObservation, err := d.GetObservation(observationID)
	if err != nil {
		if err == dao.ErrNoRows {
			return NewAppError(http.StatusNotFound, err, "Observation not found")
		}
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving observation")
	}

	apiResponse := mapping.MapObservationToProtocol(&dbObservation)
	jsonResponse(w, apiResponse)
	return nil
}

// observationIDFromContext reads the observationId capture group parsed from
// the route.
func observationIDFromContext(ctx context.Context) (string, *AppError) {
	captured, ok := CaptureGroupsFromContext(ctx)
	if !ok {
		return "", NewAppError(http.StatusInternalServerError, errors.New("could not get capture groups"), "Error parsing URI")
	}
	if captured["observationId"] == "" {
		return "", NewAppError(http.StatusBadRequest, errors.New("could not extract observation id from uri"), "URI provided by caller is not valid")
	}
	return captured["observationId"], nil
}
