package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

func (h AppServer) getImage(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	dbImage, herr := h.fetchReadableImage(ctx)
	if herr != nil {
		return herr
	}

	apiResponse := mapping.MapImageToProtocol(dbImage)
	jsonResponse(w, apiResponse)
	return nil
}

// fetchReadableImage loads the image named in the route and enforces the
// read guard shared by the metadata and stream routes. Readability comes
// from recorded grants alone: the uploader holds a READ grant from upload
// time, everyone holds one once the owning observation is published, and
// moderators read through the default table.
func (h AppServer) fetchReadableImage(ctx context.Context) (*models.Image, *AppError) {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return nil, NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}
	d := DAOFromContext(ctx)

	imageID, herr := imageIDFromContext(ctx)
	if herr != nil {
		return nil, herr
	}

	// Auth check
	allowed, err := h.Permissions.HasPermission(auth.ObjectTypeImage, imageID, auth.PermissionRead, caller.ToPrincipal())
	if err != nil {
		return nil, NewAppError(http.StatusInternalServerError, err, "Error evaluating permissions")
	}
	if !allowed && !h.Access.CanAccessDraftResource(imageID, caller.ToPrincipal()) {
		return nil, NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to read this image")
	}

	dbImage, err := d.GetImage(imageID)
	if err != nil {
		if err == dao.ErrNoRows {
			return nil, NewAppError(http.StatusNotFound, err, "Image not found")
		}
		return nil, NewAppError(http.StatusInternalServerError, err, "Error retrieving image")
	}
	return &dbImage, nil
}

// imageIDFromContext reads the imageId capture group parsed from the route.
func imageIDFromContext(ctx context.Context) (string, *AppError) {
	captured, ok := CaptureGroupsFromContext(ctx)
	if !ok {
		return "", NewAppError(http.StatusInternalServerError, errors.New("could not get capture groups"), "Error parsing URI")
	}
	if captured["imageId"] == "" {
		return "", NewAppError(http.StatusBadRequest, errors.New("could not extract image id from uri"), "URI provided by caller is not valid")
	}
	return captured["imageId"], nil
}
