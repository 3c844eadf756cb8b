package server

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/amazon"
)

func (h AppServer) getImageStream(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {

	dbImage, herr := h.fetchReadableImage(ctx)
	if herr != nil {
		return herr
	}

	stream, err := h.Images.GetStream(dbImage.StorageKey)
	if err != nil {
		if err == amazon.ErrContentNotFound {
			return NewAppError(http.StatusNotFound, err, "Image content not found")
		}
		return NewAppError(http.StatusInternalServerError, err, "Error retrieving image content")
	}
	defer stream.Close()

	w.Header().Set("Content-Type", dbImage.ContentType)
	if dbImage.ContentSize > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(dbImage.ContentSize, 10))
	}
	if _, err := io.Copy(w, stream); err != nil {
		LoggerFromContext(ctx).Error("error streaming image content", zap.Error(err))
	}
	return nil
}
