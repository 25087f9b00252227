package apiserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialnet/internal/handlers/apiserver"
	"socialnet/internal/middleware"
	"socialnet/internal/mocks"
	"socialnet/internal/models"
	"socialnet/internal/services"
)

// authedRequest builds a request carrying an authenticated user ID, the way
// the auth middleware would.
func authedRequest(method, target string, userID uint) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func relationshipRouter(svc services.RelationshipService) *mux.Router {
	h := apiserver.NewRelationshipHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/relationships/request/{userID:[0-9]+}", h.SendRequest).Methods(http.MethodPost)
	r.HandleFunc("/relationships/accept/{userID:[0-9]+}", h.AcceptRequest).Methods(http.MethodPut)
	r.HandleFunc("/relationships/request/{userID:[0-9]+}", h.CancelOrReject).Methods(http.MethodDelete)
	r.HandleFunc("/relationships/friend/{userID:[0-9]+}", h.RemoveFriend).Methods(http.MethodDelete)
	r.HandleFunc("/relationships/block/{userID:[0-9]+}", h.Block).Methods(http.MethodPost)
	r.HandleFunc("/relationships/status/{userID:[0-9]+}", h.Status).Methods(http.MethodGet)
	r.HandleFunc("/relationships/friends", h.ListFriends).Methods(http.MethodGet)
	return r
}

func TestSendRequestHandler(t *testing.T) {
	t.Run("201 on success", func(t *testing.T) {
		svc := new(mocks.RelationshipService)
		svc.On("SendRequest", mock.Anything, uint(1), uint(2)).Return(
			&models.Relationship{RequesterID: 1, RecipientID: 2, Status: models.RelationshipStatusPending}, nil)

		rec := httptest.NewRecorder()
		relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/relationships/request/2", 1))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var rel models.Relationship
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rel))
		assert.Equal(t, models.RelationshipStatusPending, rel.Status)
	})

	t.Run("409 on duplicate", func(t *testing.T) {
		svc := new(mocks.RelationshipService)
		svc.On("SendRequest", mock.Anything, uint(1), uint(2)).Return(nil, services.ErrRelationshipExists)

		rec := httptest.NewRecorder()
		relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/relationships/request/2", 1))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("400 on self target", func(t *testing.T) {
		svc := new(mocks.RelationshipService)
		svc.On("SendRequest", mock.Anything, uint(1), uint(1)).Return(nil, services.ErrSelfRelationship)

		rec := httptest.NewRecorder()
		relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/relationships/request/1", 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("404 on unknown recipient", func(t *testing.T) {
		svc := new(mocks.RelationshipService)
		svc.On("SendRequest", mock.Anything, uint(1), uint(99)).Return(nil, services.ErrUserNotFound)

		rec := httptest.NewRecorder()
		relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPost, "/relationships/request/99", 1))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("401 without identity", func(t *testing.T) {
		svc := new(mocks.RelationshipService)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/relationships/request/2", nil)
		relationshipRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAcceptRequestHandler(t *testing.T) {
	t.Run("200 on accept", func(t *testing.T) {
		svc := new(mocks.RelationshipService)
		svc.On("AcceptRequest", mock.Anything, uint(2), uint(1)).Return(
			&models.Relationship{RequesterID: 1, RecipientID: 2, Status: models.RelationshipStatusAccepted}, nil)

		rec := httptest.NewRecorder()
		relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPut, "/relationships/accept/1", 2))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("404 when there is nothing to accept", func(t *testing.T) {
		svc := new(mocks.RelationshipService)
		svc.On("AcceptRequest", mock.Anything, uint(1), uint(2)).Return(nil, services.ErrRelationshipNotFound)

		rec := httptest.NewRecorder()
		relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodPut, "/relationships/accept/2", 1))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStatusHandler(t *testing.T) {
	svc := new(mocks.RelationshipService)
	svc.On("StatusFor", mock.Anything, uint(1), uint(2)).Return(models.DirectionalStatusPendingSent, nil)

	rec := httptest.NewRecorder()
	relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodGet, "/relationships/status/2", 1))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending_sent", body["status"])
}

func TestListFriendsHandler(t *testing.T) {
	svc := new(mocks.RelationshipService)
	svc.On("ListFriends", mock.Anything, uint(1)).Return([]*models.UserBasicInfo{
		{ID: 2, Username: "bob"},
	}, nil)

	rec := httptest.NewRecorder()
	relationshipRouter(svc).ServeHTTP(rec, authedRequest(http.MethodGet, "/relationships/friends", 1))

	require.Equal(t, http.StatusOK, rec.Code)
	var friends []models.UserBasicInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)
}
