package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
)

func (h AppServer) publishObservation(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}
	d := DAOFromContext(ctx)
	event, _ := EventFromContext(ctx)

	observationID, herr := observationIDFromContext(ctx)
	if herr != nil {
		return herr
	}

	// Auth check
	if !h.Access.CanPublish(observationID, caller.ToPrincipal()) {
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to publish this observation")
	}

	dbObservation, err := d.GetObservation(observationID)
	if err != nil {
		if err == dao.ErrNoRows {
			return NewAppError(http.StatusNotFound, err, "Observation not found")
		}
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving observation")
	}

	if !dbObservation.Published {
		dbObservation.Published = true
		if err := d.UpdateObservation(&dbObservation); err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error publishing observation")
		}
		// Record public read on the observation and each attached image so
		// anonymous callers can see them.
		if _, err := h.Permissions.GrantPublicRead(auth.ObjectTypeObservation, observationID); err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error recording public read grant")
		}
		for _, imageID := range dbObservation.ImageIDs {
			if _, err := h.Permissions.GrantPublicRead(auth.ObjectTypeImage, imageID); err != nil {
				return NewAppError(http.StatusInternalServerError, err, "Error recording public read grant")
			}
		}
	}

	apiResponse := mapping.MapObservationToProtocol(&dbObservation)

	event.Action = "publish"
	event.ObjectType = string(auth.ObjectTypeObservation)
	event.ObjectID = observationID
	h.publishSuccess(ctx, event)

	jsonResponse(w, apiResponse)
	return nil
}
