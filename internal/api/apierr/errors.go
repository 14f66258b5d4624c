package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/courtside/rallybot/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodeGameNotFound         = "GAME_NOT_FOUND"
	CodeRegistrationNotFound = "REGISTRATION_NOT_FOUND"
	CodeNicknameTaken        = "NICKNAME_TAKEN"
	CodeAlreadyRegistered    = "ALREADY_REGISTERED"
	CodeGameFinished         = "GAME_FINISHED"
	CodeNotConfirmed         = "NOT_CONFIRMED"
	CodeOnWaitlist           = "ON_WAITLIST"
	CodeSessionExpired       = "SESSION_EXPIRED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Validation failures carry their own message
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, ve.Error()}}
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrRegistrationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRegistrationNotFound, "Registration not found"}}
	case errors.Is(err, model.ErrNicknameTaken):
		return &httpError{http.StatusConflict, APIError{CodeNicknameTaken, "Nickname already taken"}}
	case errors.Is(err, model.ErrAlreadyRegistered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRegistered, "Already registered for this game"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is finished"}}
	case errors.Is(err, model.ErrNotConfirmed):
		return &httpError{http.StatusConflict, APIError{CodeNotConfirmed, "Registration is not confirmed"}}
	case errors.Is(err, model.ErrOnWaitlist):
		return &httpError{http.StatusConflict, APIError{CodeOnWaitlist, "Registration is on the waitlist"}}
	case errors.Is(err, model.ErrSessionExpired):
		return &httpError{http.StatusGone, APIError{CodeSessionExpired, "Conversation session expired"}}

	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid nickname or password"}}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, model.ErrNotAdmin):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Admin privileges required"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
