package apperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

// Error is one entry of the service error taxonomy. Handlers map every
// failure to one of the constructors below; nothing else crosses a handler
// boundary.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

func BadRequest(msg string) *Error { return &Error{Status: http.StatusBadRequest, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Status: http.StatusBadRequest, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Status: http.StatusNotFound, Message: msg} }
func Forbidden() *Error            { return &Error{Status: http.StatusForbidden, Message: "Forbidden"} }

func NoCredential() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "No token"}
}

func InvalidCredential() *Error {
	return &Error{Status: http.StatusForbidden, Message: "Invalid token"}
}

func ServerError(cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Server error", cause: cause}
}

// Write renders err as the standard {"message": ...} body. Unknown error
// values become ServerError. 5xx causes are logged through the request
// logger.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = ServerError(err)
	}
	if ae.Status >= http.StatusInternalServerError {
		cause := ae.cause
		if cause == nil {
			cause = err
		}
		zerolog.Ctx(r.Context()).Error().Err(cause).Str("path", r.URL.Path).Msg("handler failure")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Status)
	_ = json.NewEncoder(w).Encode(ae)
}
