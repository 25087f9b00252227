package apiserver

import (
	"encoding/json"
	"net/http"

	"socialnet/internal/middleware"
	"socialnet/internal/services"
)

// CommentHandler handles comment CRUD.
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Content string `json:"content"`
}

// Create handles POST /api/v1/comments/{postID}.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	postID, err := pathID(r, "postID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), callerID, postID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, comment)
}

// ListForPost handles GET /api/v1/comments/post/{postID}.
func (h *CommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := h.commentService.GetCommentsForPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, comments)
}

// Update handles PUT /api/v1/comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	commentID, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(r.Context(), callerID, commentID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, comment)
}

// Delete handles DELETE /api/v1/comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	commentID, err := pathID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), callerID, commentID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
