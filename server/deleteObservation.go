package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
)

func (h AppServer) deleteObservation(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

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
	if !h.Access.CanDelete(observationID, caller.ToPrincipal()) {
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to delete this observation")
	}

	dbObservation, err := d.GetObservation(observationID)
	if err != nil {
		if err == dao.ErrNoRows {
			return NewAppError(http.StatusNotFound, err, "Observation not found")
		}
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving observation")
	}

	if err := d.DeleteObservation(observationID); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error deleting observation")
	}

	// Revoke every grant recorded against the observation, and public read
	// on images that were visible through it. The image rows themselves
	// survive as unattached uploads owned by the reporter.
	if err := h.Permissions.RevokeObjectPermissions(auth.ObjectTypeObservation, observationID); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error revoking observation permissions")
	}
	for _, imageID := range dbObservation.ImageIDs {
		if err := h.Permissions.RevokePublicRead(auth.ObjectTypeImage, imageID); err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error revoking image permissions")
		}
	}

	event.Action = "delete"
	event.ObjectType = string(auth.ObjectTypeObservation)
	event.ObjectID = observationID
	h.publishSuccess(ctx, event)

	w.WriteHeader(http.StatusNoContent)
	return nil
}
