package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/menu-interativo/back-end/internal/model"
	"github.com/menu-interativo/back-end/internal/service"
	"github.com/menu-interativo/back-end/internal/storage"

	"github.com/rs/zerolog"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

var errInvalidBody = model.NewBadRequest(model.ErrCodeInvalidJSON, "Invalid request body")

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent, nothing left to report to the client.
		return
	}
}

// writeServiceError translates err into the HTTP response. Domain and
// validation errors keep their message, anything else is logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Message: "Validation error.",
			Code:    model.ErrCodeValidation,
			Issues:  verr.Fields,
		})
		return
	}

	if de, ok := model.AsDomainError(err); ok {
		status := statusFor(de.Kind)
		logger.Debug().
			Str("code", de.Code).
			Int("status", status).
			Str("path", r.URL.Path).
			Msg("request rejected")
		writeJSON(w, status, model.ErrorResponse{Message: de.Message, Code: de.Code})
		return
	}

	logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Message: "Internal server error",
		Code:    model.ErrCodeInternalError,
	})
}

func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindBadRequest:
		return http.StatusBadRequest
	case model.KindUnauthorized:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// readImage extracts the "file" part of a multipart upload. The caller closes the returned body.
func readImage(w http.ResponseWriter, r *http.Request) (service.Upload, io.Closer, error) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxImageSize+maxBodySize)
	if err := r.ParseMultipartForm(storage.MaxImageSize); err != nil {
		return service.Upload{}, nil, model.ErrInvalidImage
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return service.Upload{}, nil, model.NewValidationError("file", "is required")
	}

	return service.Upload{
		Body:        file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, file, nil
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "healthy"})
}
