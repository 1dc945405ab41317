package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"lovematch_server/services"
)

// WriteJSONResponse writes payload as JSON with the given status
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteMessage writes {"message": message}
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, map[string]string{"message": message})
}

// StatusFor maps a service error to its HTTP status
func StatusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError reports err to the client as {"error": ...}. Known errors carry their own message,
// anything else is logged and hidden behind fallback.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	status := StatusFor(err)

	var verr *services.ValidationError
	message := fallback
	switch {
	case errors.As(err, &verr):
		message = verr.Message
	case errors.Is(err, services.ErrUsernameTaken):
		message = services.ErrUsernameTaken.Error()
	case errors.Is(err, services.ErrEmailTaken):
		message = services.ErrEmailTaken.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		message = services.ErrInvalidCredentials.Error()
	case errors.Is(err, services.ErrUnauthenticated):
		message = services.ErrUnauthenticated.Error()
	case errors.Is(err, services.ErrChatNotConfigured):
		message = services.ErrChatNotConfigured.Error()
	case errors.Is(err, services.ErrForbidden):
		message = "Forbidden"
	case errors.Is(err, services.ErrNotFound):
		message = "Not found"
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg(fallback)
	}
	WriteJSONResponse(w, status, map[string]string{"error": message})
}

// DecodeJSON decodes the request body into v. An empty body leaves v untouched.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
