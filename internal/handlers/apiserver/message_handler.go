package apiserver

import (
	"encoding/json"
	"net/http"

	"socialnet/internal/middleware"
	"socialnet/internal/services"
)

// MessageHandler handles direct messaging and conversation listing.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// Send handles POST /api/v1/messages/{receiverID}.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	receiverID, err := pathID(r, "receiverID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.Send(r.Context(), callerID, receiverID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, message)
}

// GetConversation handles GET /api/v1/messages/conversation/{userID}.
// With ?markSeen=true the counterpart's messages are marked seen before the
// history is returned, so the client gets one round trip for "open thread".
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	otherUserID, err := pathID(r, "userID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Query().Get("markSeen") == "true" {
		if _, err := h.messageService.MarkSeen(r.Context(), callerID, otherUserID); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	messages, err := h.messageService.GetHistory(r.Context(), callerID, otherUserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, messages)
}

// ListConversations handles GET /api/v1/messages/conversations.
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	conversations, err := h.messageService.ConversationsFor(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, conversations)
}

// MarkSeen handles PUT /api/v1/messages/seen/{senderID}.
func (h *MessageHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	senderID, err := pathID(r, "senderID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.messageService.MarkSeen(r.Context(), callerID, senderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]int64{"updated": updated})
}

// Delete handles DELETE /api/v1/messages/{messageID}.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	messageID, err := pathID(r, "messageID")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.messageService.DeleteMessage(r.Context(), callerID, messageID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
