// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/pkg/errors"
)

// maxBodyBytes bounds request payload size
const maxBodyBytes = 1 << 20

// base carries what every handler group needs
type base struct {
	validate *validator.Validate
	logger   *zap.Logger
}

func newBase(logger *zap.Logger) base {
	return base{
		validate: validator.New(),
		logger:   logger,
	}
}

// decodeAndValidate reads the JSON body into dst and runs struct validation
func (b base) decodeAndValidate(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("invalid JSON body")
	}

	if err := b.validate.Struct(dst); err != nil {
		appErr := errors.NewValidationError("request body failed validation")
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			for _, fe := range verrs {
				appErr.WithField(fe.Field(), fe.Tag())
			}
		}
		return appErr
	}
	return nil
}

// writeJSON writes a JSON response with the given status
func (b base) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError converts any error to the API error envelope. Errors that are
// not AppErrors become a generic 500 so internals never leak.
func (b base) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		b.logger.Error("unhandled error", zap.Error(err))
		appErr = errors.NewInternalError("")
	}
	if appErr.StatusCode() >= http.StatusInternalServerError && appErr.Cause != nil {
		b.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(appErr.Cause),
		)
	}
	b.writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, r.Header.Get("X-Request-ID")))
}
