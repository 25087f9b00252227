package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialnet/internal/mocks"
	"socialnet/internal/models"
	"socialnet/internal/services"
)

func newPostFixture() (*mocks.PostRepository, *mocks.UserRepository, *mocks.RelationshipRepository, services.PostService) {
	postRepo := new(mocks.PostRepository)
	userRepo := new(mocks.UserRepository)
	relRepo := new(mocks.RelationshipRepository)
	svc := services.NewPostService(postRepo, userRepo, relRepo)
	return postRepo, userRepo, relRepo, svc
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a post for the caller", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("Create", ctx, mock.AnythingOfType("*models.Post")).Return(nil)

		post, err := svc.CreatePost(ctx, 1, "first post", "")
		require.NoError(t, err)
		assert.Equal(t, uint(1), post.UserID)
		assert.Equal(t, "first post", post.Content)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, _, _, svc := newPostFixture()
		_, err := svc.CreatePost(ctx, 1, "", "")
		assert.ErrorIs(t, err, services.ErrEmptyContent)
	})
}

func TestGetPostPrivacy(t *testing.T) {
	ctx := context.Background()
	post := &models.Post{BaseModel: models.BaseModel{ID: 10}, UserID: 2, Content: "hi"}

	t.Run("owner always sees their post", func(t *testing.T) {
		postRepo, userRepo, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(post, nil)
		userRepo.On("GetByID", ctx, uint(2)).Return(
			&models.User{BaseModel: models.BaseModel{ID: 2}, IsPrivate: true}, nil)

		got, err := svc.GetPost(ctx, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, uint(10), got.ID)
	})

	t.Run("anyone sees a public author's post", func(t *testing.T) {
		postRepo, userRepo, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(post, nil)
		userRepo.On("GetByID", ctx, uint(2)).Return(
			&models.User{BaseModel: models.BaseModel{ID: 2}, Username: "bob"}, nil)

		got, err := svc.GetPost(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Author.Username)
	})

	t.Run("friend sees a private author's post", func(t *testing.T) {
		postRepo, userRepo, relRepo, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(post, nil)
		userRepo.On("GetByID", ctx, uint(2)).Return(
			&models.User{BaseModel: models.BaseModel{ID: 2}, IsPrivate: true}, nil)
		relRepo.On("FindBetween", ctx, uint(1), uint(2)).Return(
			&models.Relationship{RequesterID: 1, RecipientID: 2, Status: models.RelationshipStatusAccepted}, nil)

		_, err := svc.GetPost(ctx, 1, 10)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied a private author's post", func(t *testing.T) {
		postRepo, userRepo, relRepo, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(post, nil)
		userRepo.On("GetByID", ctx, uint(2)).Return(
			&models.User{BaseModel: models.BaseModel{ID: 2}, IsPrivate: true}, nil)
		relRepo.On("FindBetween", ctx, uint(1), uint(2)).Return(nil, nil)

		_, err := svc.GetPost(ctx, 1, 10)
		assert.ErrorIs(t, err, services.ErrPostAccessDenied)
	})

	t.Run("pending requester is still denied", func(t *testing.T) {
		postRepo, userRepo, relRepo, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(post, nil)
		userRepo.On("GetByID", ctx, uint(2)).Return(
			&models.User{BaseModel: models.BaseModel{ID: 2}, IsPrivate: true}, nil)
		relRepo.On("FindBetween", ctx, uint(1), uint(2)).Return(
			&models.Relationship{RequesterID: 1, RecipientID: 2, Status: models.RelationshipStatusPending}, nil)

		_, err := svc.GetPost(ctx, 1, 10)
		assert.ErrorIs(t, err, services.ErrPostAccessDenied)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	content := "edited"

	t.Run("owner edits", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(
			&models.Post{BaseModel: models.BaseModel{ID: 10}, UserID: 1, Content: "old"}, nil)
		postRepo.On("Update", ctx, mock.AnythingOfType("*models.Post")).Return(nil)

		post, err := svc.UpdatePost(ctx, 1, 10, services.PostUpdate{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "edited", post.Content)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(
			&models.Post{BaseModel: models.BaseModel{ID: 10}, UserID: 1}, nil)

		_, err := svc.UpdatePost(ctx, 2, 10, services.PostUpdate{Content: &content})
		assert.ErrorIs(t, err, services.ErrNotPostOwner)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("owner delete cascades to comments", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(
			&models.Post{BaseModel: models.BaseModel{ID: 10}, UserID: 1}, nil)
		postRepo.On("DeleteWithComments", ctx, uint(10)).Return(nil)

		assert.NoError(t, svc.DeletePost(ctx, 1, 10))
		postRepo.AssertCalled(t, "DeleteWithComments", ctx, uint(10))
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(
			&models.Post{BaseModel: models.BaseModel{ID: 10}, UserID: 1}, nil)

		assert.ErrorIs(t, svc.DeletePost(ctx, 2, 10), services.ErrNotPostOwner)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.DeletePost(ctx, 1, 10), services.ErrPostNotFound)
	})
}

func TestTimeline(t *testing.T) {
	ctx := context.Background()
	postRepo, userRepo, relRepo, svc := newPostFixture()

	relRepo.On("ListAcceptedFor", ctx, uint(1)).Return([]models.Relationship{
		{RequesterID: 1, RecipientID: 2, Status: models.RelationshipStatusAccepted},
	}, nil)
	postRepo.On("GetByUserIDs", ctx, []uint{1, 2}).Return([]models.Post{
		{BaseModel: models.BaseModel{ID: 20}, UserID: 2, Content: "bob's post"},
		{BaseModel: models.BaseModel{ID: 10}, UserID: 1, Content: "alice's post"},
	}, nil)
	userRepo.On("GetMultipleBasicInfoByIDs", ctx, []uint{1, 2}).Return([]*models.UserBasicInfo{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}, nil)

	timeline, err := svc.Timeline(ctx, 1)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, "bob", timeline[0].Author.Username)
	assert.Equal(t, "alice", timeline[1].Author.Username)
}

func TestLikeUnlike(t *testing.T) {
	ctx := context.Background()

	t.Run("like increments", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(&models.Post{BaseModel: models.BaseModel{ID: 10}}, nil)
		postRepo.On("AdjustLikesCount", ctx, uint(10), 1).Return(nil)

		assert.NoError(t, svc.LikePost(ctx, 10))
	})

	t.Run("unlike decrements", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(&models.Post{BaseModel: models.BaseModel{ID: 10}}, nil)
		postRepo.On("AdjustLikesCount", ctx, uint(10), -1).Return(nil)

		assert.NoError(t, svc.UnlikePost(ctx, 10))
	})

	t.Run("like of a missing post fails", func(t *testing.T) {
		postRepo, _, _, svc := newPostFixture()
		postRepo.On("GetByID", ctx, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.LikePost(ctx, 10), services.ErrPostNotFound)
	})
}
