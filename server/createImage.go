package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/mapping"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/metadata/models"
)

// maxImageUploadBytes bounds a single multipart image upload.
const maxImageUploadBytes = 32 << 20

func (h AppServer) createImage(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	caller, ok := CallerFromContext(ctx)
	if !ok {
		return NewAppError(http.StatusInternalServerError, errors.New("could not get caller from context"), "Invalid caller.")
	}
	d := DAOFromContext(ctx)
	event, _ := EventFromContext(ctx)
	principal := caller.ToPrincipal()

	// Auth check
	allowed, err := h.Permissions.HasPermission(auth.ObjectTypeImage, "", auth.PermissionCreate, principal)
	if err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error evaluating permissions")
	}
	if !allowed {
		return NewAppError(http.StatusForbidden, errors.New("forbidden"), "Forbidden - User does not have permission to upload images")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		return NewAppError(http.StatusBadRequest, err, "Error reading multipart file part")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if len(contentType) == 0 {
		contentType = "application/octet-stream"
	}

	image := models.Image{
		ID:          newGUID(),
		OwnedBy:     caller.UserID,
		FileName:    path.Base(header.Filename),
		ContentType: contentType,
	}
	image.StorageKey = image.ID

	counted := &countingReader{r: file}
	if err := h.Images.Upload(counted, image.StorageKey, contentType); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error storing image content")
	}
	image.ContentSize = counted.n

	created, err := d.CreateImage(&image)
	if err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error storing image metadata")
	}

	// Record ownership grants so the uploader can manage the image.
	if _, err := h.Permissions.GrantOwnership(auth.ObjectTypeImage, created.ID, caller.UserID); err != nil {
		return NewAppError(http.StatusInternalServerError, err, "Error recording ownership")
	}

	apiResponse := mapping.MapImageToProtocol(&created)

	event.Action = "create"
	event.ObjectType = string(auth.ObjectTypeImage)
	event.ObjectID = created.ID
	h.publishSuccess(ctx, event)

	jsonResponse(w, apiResponse)
	return nil
}

// countingReader tracks how many bytes flowed through to the content store.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
