package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/protocol"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

func (h AppServer) updateObservation(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

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
	if !h.Access.CanEdit(observationID, caller.ToPrincipal()) {
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to update this observation")
	}

	var jsonRequest protocol.UpdateObservationRequest
	if err := util.FullDecode(r.Body, &jsonRequest); err != nil {
		return NewAppError(http.StatusBadRequest, err, "Error parsing JSON")
	}
	if len(jsonRequest.Title) == 0 {
		return NewAppError(http.StatusBadRequest, errors.New("title is required"), "Observation title is required")
	}

	dbObservation, err := d.GetObservation(observationID)
	if err != nil {
		if err == dao.ErrNoRows {
			return NewAppError(http.StatusNotFound, err, "Observation not found")
		}
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving observation")
	}

	updated := mapping.MapUpdateObservationRequestToModel(&dbObservation, &jsonRequest)
	if err := d.UpdateObservation(&updated); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error updating observation")
	}

	// Images attached to a published observation carry a public read grant.
	// Keep those grants in step when the edit changes the attachment set: a
	// detached image reverts to draft visibility, an attached one opens up.
	if dbObservation.Published {
		if herr := h.reconcilePublicImageGrants(dbObservation.ImageIDs, updated.ImageIDs); herr != nil {
			return herr
		}
	}

	apiResponse := mapping.MapObservationToProtocol(&updated)

	event.Action = "update"
	event.ObjectType = string(auth.ObjectTypeObservation)
	event.ObjectID = updated.ID
	h.publishSuccess(ctx, event)

	jsonResponse(w, apiResponse)
	return nil
}

func (h AppServer) reconcilePublicImageGrants(before []string, after []string) *AppError {
	kept := make(map[string]bool, len(after))
	for _, imageID := range after {
		kept[imageID] = true
	}
	had := make(map[string]bool, len(before))
	for _, imageID := range before {
		had[imageID] = true
		if kept[imageID] {
			continue
		}
		if err := h.Permissions.RevokePublicRead(auth.ObjectTypeImage, imageID); err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error revoking public read grant")
		}
	}
	for _, imageID := range after {
		if had[imageID] {
			continue
		}
		if _, err := h.Permissions.GrantPublicRead(auth.ObjectTypeImage, imageID); err != nil {
			return NewAppError(http.StatusInternalServerError, err, "Error recording public read grant")
		}
	}
	return nil
}
