package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
)

func (h AppServer) deleteImage(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}
	d := DAOFromContext(ctx)
	event, _ := EventFromContext(ctx)

	imageID, herr := imageIDFromContext(ctx)
	if herr != nil {
		return herr
	}

	// Auth check. The uploader holds a DELETE grant from upload time and
	// moderators delete through the default table.
	allowed, err := h.Permissions.HasPermission(auth.ObjectTypeImage, imageID, auth.PermissionDelete, caller.ToPrincipal())
	if err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error evaluating permissions")
	}
	if !allowed {
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to delete this image")
	}

	dbImage, err := d.GetImage(imageID)
	if err != nil {
		if err == dao.ErrNoRows {
			return NewAppError(http.StatusNotFound, err, "Image not found")
		}
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving image")
	}

	if err := d.DeleteImage(imageID); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error deleting image metadata")
	}
	if err := h.Images.Delete(dbImage.StorageKey); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error deleting image content")
	}
	if err := h.Permissions.RevokeObjectPermissions(auth.ObjectTypeImage, imageID); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error revoking image permissions")
	}

	event.Action = "delete"
	event.ObjectType = string(auth.ObjectTypeImage)
	event.ObjectID = imageID
	h.publishSuccess(ctx, event)

	w.WriteHeader(http.StatusNoContent)
	return nil
}
