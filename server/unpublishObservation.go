package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
)

func (h AppServer) unpublishObservation(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

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
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to unpublish this observation")
	}

	dbObservation, err := d.GetObservation(observationID)
	if err != nil {
		if err == dao.ErrNoRows {
			return NewAppError(http.StatusNotFound, err, "Observation not found")
		}
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving observation")
	}

	if dbObservation.Published {
		dbObservation.Published = false
		if err := d.UpdateObservation(&dbObservation); err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error unpublishing observation")
		}
		// Withdraw public read so the observation and its images revert to
		// draft visibility.
		if err := h.Permissions.RevokePublicRead(auth.ObjectTypeObservation, observationID); err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error revoking public read grant")
		}
		for _, imageID := range dbObservation.ImageIDs {
			if err := h.Permissions.RevokePublicRead(auth.ObjectTypeImage, imageID); err != nil {
				return NewAppError(http.StatusInternalServerError, err, "Error revoking public read grant")
			}
		}
	}

	apiResponse := mapping.MapObservationToProtocol(&dbObservation)

	event.Action = "unpublish"
	event.ObjectType = string(auth.ObjectTypeObservation)
	event.ObjectID = observationID
	h.publishSuccess(ctx, event)

	jsonResponse(w, apiResponse)
	return nil
}
