package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"checkout-experience-layer/internal/domain"

	"github.com/rs/zerolog"
)

// EnvLocal marks a developer environment; error responses carry the
// real message only there.
const EnvLocal = "local"

// Responder writes JSON responses and maps domain errors onto HTTP
// statuses.
type Responder struct {
	appEnv string
	logger zerolog.Logger
}

// NewResponder creates a responder for the given environment.
func NewResponder(appEnv string, logger zerolog.Logger) *Responder {
	return &Responder{appEnv: appEnv, logger: logger}
}

// JSON writes a payload with the given status.
func (re *Responder) JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			re.logger.Error().Err(err).Msg("Failed to encode response")
		}
	}
}

// Error converts a domain error into its HTTP status. Outside the
// local environment the body stays empty so remote failures leak
// nothing to the browser.
func (re *Responder) Error(w http.ResponseWriter, err error) {
	status := statusFor(err)

	message := ""
	if re.appEnv == EnvLocal {
		message = err.Error()
	}
	re.JSON(w, status, map[string]string{"message": message})
}

func statusFor(err error) int {
	var rejection *domain.RemoteRejectionError
	if errors.As(err, &rejection) {
		if rejection.Status >= http.StatusBadRequest {
			return rejection.Status
		}
		return http.StatusInternalServerError
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}

	var authorization *domain.AuthorizationError
	if errors.As(err, &authorization) {
		return http.StatusUnauthorized
	}

	// resolution and transport failures are both internal
	return http.StatusInternalServerError
}
