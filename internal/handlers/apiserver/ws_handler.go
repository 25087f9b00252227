package apiserver

import (
	"net/http"

	"socialnet/internal/middleware"
	"socialnet/internal/websocket"
)

// WSHandler upgrades authenticated requests to notification push connections.
type WSHandler struct {
	hub *websocket.Hub
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect handles GET /api/v1/ws.
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	websocket.ServeWs(h.hub, callerID, w, r)
}
