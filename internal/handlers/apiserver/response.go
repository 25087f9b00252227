package apiserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialnet/internal/services"
)

// writeJSONResponse writes data as a JSON body with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error body of the form {"error": message}.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps service sentinel errors to HTTP status codes.
// Anything unrecognized is logged and reported as a generic 500, so storage
// details never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRelationshipNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrNotPostOwner),
		errors.Is(err, services.ErrNotCommentOwner),
		errors.Is(err, services.ErrNotMessageSender),
		errors.Is(err, services.ErrPostAccessDenied):
		writeJSONError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrUserAlreadyExists),
		errors.Is(err, services.ErrRelationshipExists):
		writeJSONError(w, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrSelfRelationship),
		errors.Is(err, services.ErrSelfMessage),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrEmptyContent):
		writeJSONError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, err.Error())

	default:
		log.Printf("internal error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "an internal error occurred")
	}
}

// pathID extracts a numeric path variable from the route.
func pathID(r *http.Request, name string) (uint, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, errors.New("missing path parameter " + name)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}
