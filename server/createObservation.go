package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/protocol"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

func (h AppServer) createObservation(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}
	dao := DAOFromContext(ctx)
	event, _ := EventFromContext(ctx)
	principal := caller.ToPrincipal()

	// Auth check
	allowed, err := h.Permissions.HasPermission(auth.ObjectTypeObservation, "", auth.PermissionCreate, principal)
	if err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error evaluating permissions")
	}
	if !allowed {
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to create observations")
	}

	var jsonRequest protocol.CreateObservationRequest
	if err := util.FullDecode(r.Body, &jsonRequest); err != nil {
		return NewAppError(http.StatusBadRequest, err, "Error parsing JSON")
	}
	if len(jsonRequest.Title) == 0 {
		return NewAppError(http.StatusBadRequest, errors.New("title is required"), "Observation title is required")
	}

	observation := mapping.MapCreateObservationRequestToModel(&jsonRequest)
	observation.ID = newGUID()
	observation.OwnedBy = caller.UserID

	created, err := dao.CreateObservation(&observation)
	if err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error storing observation")
	}

	// Record ownership grants so the reporter can manage their draft.
	if _, err := h.Permissions.GrantOwnership(auth.ObjectTypeObservation, created.ID, caller.UserID); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error recording ownership")
	}

	apiResponse := mapping.MapObservationToProtocol(&created)

	event.Action = "create"
	event.ObjectType = string(auth.ObjectTypeObservation)
	event.ObjectID = created.ID
	h.publishSuccess(ctx, event)

	jsonResponse(w, apiResponse)
	return nil
}
