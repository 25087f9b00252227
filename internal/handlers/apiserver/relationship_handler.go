package apiserver

import (
	"net/http"
	"strings"

	"socialnet/internal/middleware"
	"socialnet/internal/services"
)

// RelationshipHandler handles friend requests, friendships and blocks.
type RelationshipHandler struct {
	relService services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(relService services.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relService: relService}
}

// callerAndTarget resolves the authenticated caller and the {userID} path
// variable shared by most relationship routes.
func callerAndTarget(w http.ResponseWriter, r *http.Request) (callerID, targetID uint, ok bool) {
	callerID, authed := middleware.GetUserIDFromContext(r.Context())
	if !authed {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return 0, 0, false
	}
	targetID, err := pathID(r, "userID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return callerID, targetID, true
}

// SendRequest handles POST /api/v1/relationships/request/{userID}.
func (h *RelationshipHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	callerID, targetID, ok := callerAndTarget(w, r)
	if !ok {
		return
	}

	rel, err := h.relService.SendRequest(r.Context(), callerID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, rel)
}

// AcceptRequest handles PUT /api/v1/relationships/accept/{userID}, where
// {userID} is the requester whose request the caller accepts.
func (h *RelationshipHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	callerID, requesterID, ok := callerAndTarget(w, r)
	if !ok {
		return
	}

	rel, err := h.relService.AcceptRequest(r.Context(), callerID, requesterID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, rel)
}

// CancelOrReject handles DELETE /api/v1/relationships/request/{userID}.
func (h *RelationshipHandler) CancelOrReject(w http.ResponseWriter, r *http.Request) {
	callerID, targetID, ok := callerAndTarget(w, r)
	if !ok {
		return
	}

	if err := h.relService.CancelOrReject(r.Context(), callerID, targetID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "request removed"})
}

// RemoveFriend handles DELETE /api/v1/relationships/friend/{userID}.
func (h *RelationshipHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	callerID, friendID, ok := callerAndTarget(w, r)
	if !ok {
		return
	}

	if err := h.relService.RemoveFriend(r.Context(), callerID, friendID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "friend removed"})
}

// Block handles POST /api/v1/relationships/block/{userID}.
func (h *RelationshipHandler) Block(w http.ResponseWriter, r *http.Request) {
	callerID, targetID, ok := callerAndTarget(w, r)
	if !ok {
		return
	}

	rel, err := h.relService.Block(r.Context(), callerID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, rel)
}

// Status handles GET /api/v1/relationships/status/{userID}.
func (h *RelationshipHandler) Status(w http.ResponseWriter, r *http.Request) {
	callerID, targetID, ok := callerAndTarget(w, r)
	if !ok {
		return
	}

	status, err := h.relService.StatusFor(r.Context(), callerID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"userId": targetID,
		"status": status,
	})
}

// ListFriends handles GET /api/v1/relationships/friends.
func (h *RelationshipHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	friends, err := h.relService.ListFriends(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, friends)
}

// ListPending handles GET /api/v1/relationships/pending.
func (h *RelationshipHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	pending, err := h.relService.ListPending(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, pending)
}

// ListUsersWithStatus handles GET /api/v1/relationships/users?search=.
func (h *RelationshipHandler) ListUsersWithStatus(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("search"))
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "query parameter search is required")
		return
	}

	users, err := h.relService.ListUsersWithStatus(r.Context(), callerID, query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, users)
}
