// Package mocks provides testify mocks for the storage and service
// interfaces used across the test suites.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialnet/internal/models"
	"socialnet/internal/services"
)

// UserRepository is a mock of storage.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) SearchUsers(ctx context.Context, query string, currentUserID uint) ([]models.User, error) {
	args := m.Called(ctx, query, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) GetBasicInfoByID(ctx context.Context, id uint) (*models.UserBasicInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserBasicInfo), args.Error(1)
}

func (m *UserRepository) GetMultipleBasicInfoByIDs(ctx context.Context, userIDs []uint) ([]*models.UserBasicInfo, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserBasicInfo), args.Error(1)
}

// RelationshipRepository is a mock of storage.RelationshipRepository.
type RelationshipRepository struct {
	mock.Mock
}

func (m *RelationshipRepository) Create(ctx context.Context, rel *models.Relationship) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *RelationshipRepository) FindBetween(ctx context.Context, userID1, userID2 uint) (*models.Relationship, error) {
	args := m.Called(ctx, userID1, userID2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Relationship), args.Error(1)
}

func (m *RelationshipRepository) AcceptPending(ctx context.Context, requesterID, recipientID uint) (*models.Relationship, error) {
	args := m.Called(ctx, requesterID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Relationship), args.Error(1)
}

func (m *RelationshipRepository) DeletePendingBetween(ctx context.Context, userID1, userID2 uint) error {
	args := m.Called(ctx, userID1, userID2)
	return args.Error(0)
}

func (m *RelationshipRepository) RemoveAcceptedBetween(ctx context.Context, userID1, userID2 uint) error {
	args := m.Called(ctx, userID1, userID2)
	return args.Error(0)
}

func (m *RelationshipRepository) Block(ctx context.Context, callerID, targetID uint) (*models.Relationship, error) {
	args := m.Called(ctx, callerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Relationship), args.Error(1)
}

func (m *RelationshipRepository) ListAcceptedFor(ctx context.Context, userID uint) ([]models.Relationship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Relationship), args.Error(1)
}

func (m *RelationshipRepository) ListPendingForRecipient(ctx context.Context, recipientID uint) ([]models.Relationship, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Relationship), args.Error(1)
}

func (m *RelationshipRepository) ListAllFor(ctx context.Context, userID uint) ([]models.Relationship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Relationship), args.Error(1)
}

func (m *RelationshipRepository) RecountFriends(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MessageRepository is a mock of storage.MessageRepository.
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MessageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MessageRepository) GetBetween(ctx context.Context, userID1, userID2 uint) ([]*models.Message, error) {
	args := m.Called(ctx, userID1, userID2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MessageRepository) GetAllFor(ctx context.Context, userID uint) ([]*models.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MessageRepository) MarkSeen(ctx context.Context, senderID, receiverID uint) (int64, error) {
	args := m.Called(ctx, senderID, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// PostRepository is a mock of storage.PostRepository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) DeleteWithComments(ctx context.Context, postID uint) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *PostRepository) GetByUserIDs(ctx context.Context, userIDs []uint) ([]models.Post, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *PostRepository) AdjustLikesCount(ctx context.Context, postID uint, delta int) error {
	args := m.Called(ctx, postID, delta)
	return args.Error(0)
}

// CommentRepository is a mock of storage.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *CommentRepository) GetByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Notifier is a mock of services.Notifier that records published events.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, event services.NotificationEvent) {
	m.Called(ctx, event)
}

// RelationshipService is a mock of services.RelationshipService for handler
// tests.
type RelationshipService struct {
	mock.Mock
}

func (m *RelationshipService) SendRequest(ctx context.Context, requesterID, recipientID uint) (*models.Relationship, error) {
	args := m.Called(ctx, requesterID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Relationship), args.Error(1)
}

func (m *RelationshipService) AcceptRequest(ctx context.Context, callerID, requesterID uint) (*models.Relationship, error) {
	args := m.Called(ctx, callerID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Relationship), args.Error(1)
}

func (m *RelationshipService) CancelOrReject(ctx context.Context, callerID, otherUserID uint) error {
	args := m.Called(ctx, callerID, otherUserID)
	return args.Error(0)
}

func (m *RelationshipService) RemoveFriend(ctx context.Context, callerID, friendID uint) error {
	args := m.Called(ctx, callerID, friendID)
	return args.Error(0)
}

func (m *RelationshipService) Block(ctx context.Context, callerID, targetID uint) (*models.Relationship, error) {
	args := m.Called(ctx, callerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Relationship), args.Error(1)
}

func (m *RelationshipService) StatusFor(ctx context.Context, callerID, otherUserID uint) (models.DirectionalStatus, error) {
	args := m.Called(ctx, callerID, otherUserID)
	return args.Get(0).(models.DirectionalStatus), args.Error(1)
}

func (m *RelationshipService) ListFriends(ctx context.Context, userID uint) ([]*models.UserBasicInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserBasicInfo), args.Error(1)
}

func (m *RelationshipService) ListPending(ctx context.Context, userID uint) ([]services.PendingRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.PendingRequest), args.Error(1)
}

func (m *RelationshipService) ListUsersWithStatus(ctx context.Context, callerID uint, query string) ([]services.UserWithStatus, error) {
	args := m.Called(ctx, callerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.UserWithStatus), args.Error(1)
}

// MessageService is a mock of services.MessageService for handler tests.
type MessageService struct {
	mock.Mock
}

func (m *MessageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MessageService) GetHistory(ctx context.Context, callerID, otherUserID uint) ([]*models.Message, error) {
	args := m.Called(ctx, callerID, otherUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MessageService) MarkSeen(ctx context.Context, callerID, senderID uint) (int64, error) {
	args := m.Called(ctx, callerID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageService) ConversationsFor(ctx context.Context, callerID uint) ([]*models.ConversationSummary, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ConversationSummary), args.Error(1)
}

func (m *MessageService) DeleteMessage(ctx context.Context, callerID, messageID uint) error {
	args := m.Called(ctx, callerID, messageID)
	return args.Error(0)
}
