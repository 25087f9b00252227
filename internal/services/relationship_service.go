package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"socialnet/internal/models"
	"socialnet/internal/storage"
)

var (
	ErrSelfRelationship     = errors.New("cannot have a relationship with yourself")
	ErrRelationshipExists   = errors.New("a relationship already exists between these users")
	ErrRelationshipNotFound = errors.New("relationship not found")
)

// UserWithStatus is a search result annotated with the caller-relative
// relationship status.
type UserWithStatus struct {
	models.User
	RelationshipStatus models.DirectionalStatus `json:"relationshipStatus"`
}

// PendingRequest is one entry of the caller's incoming-request list.
type PendingRequest struct {
	RelationshipID uint                  `json:"relationshipId"`
	Requester      *models.UserBasicInfo `json:"requester"`
	CreatedAt      string                `json:"createdAt"`
}

// RelationshipService defines the interface for the friend/block state
// machine. At most one edge exists per unordered user pair; blocked is
// terminal.
type RelationshipService interface {
	SendRequest(ctx context.Context, requesterID, recipientID uint) (*models.Relationship, error)
	AcceptRequest(ctx context.Context, callerID, requesterID uint) (*models.Relationship, error)
	CancelOrReject(ctx context.Context, callerID, otherUserID uint) error
	RemoveFriend(ctx context.Context, callerID, friendID uint) error
	Block(ctx context.Context, callerID, targetID uint) (*models.Relationship, error)
	StatusFor(ctx context.Context, callerID, otherUserID uint) (models.DirectionalStatus, error)
	ListFriends(ctx context.Context, userID uint) ([]*models.UserBasicInfo, error)
	ListPending(ctx context.Context, userID uint) ([]PendingRequest, error)
	ListUsersWithStatus(ctx context.Context, callerID uint, query string) ([]UserWithStatus, error)
}

// relationshipService is the RelationshipService implementation.
type relationshipService struct {
	relRepo  storage.RelationshipRepository
	userRepo storage.UserRepository
	notifier Notifier
}

// NewRelationshipService creates a new RelationshipService instance.
func NewRelationshipService(relRepo storage.RelationshipRepository, userRepo storage.UserRepository, notifier Notifier) RelationshipService {
	return &relationshipService{relRepo: relRepo, userRepo: userRepo, notifier: notifier}
}

// SendRequest creates a pending friend request from requester to recipient.
// Fails with ErrRelationshipExists when any edge already links the pair,
// regardless of direction or status.
func (s *relationshipService) SendRequest(ctx context.Context, requesterID, recipientID uint) (*models.Relationship, error) {
	if requesterID == recipientID {
		return nil, ErrSelfRelationship
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up recipient %d: %w", recipientID, err)
	}

	existing, err := s.relRepo.FindBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing relationship: %w", err)
	}
	if existing != nil {
		return nil, ErrRelationshipExists
	}

	rel := &models.Relationship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.RelationshipStatusPending,
	}
	if err := s.relRepo.Create(ctx, rel); err != nil {
		// Two concurrent requests for the same pair race past FindBetween;
		// the pair-key unique index settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRelationshipExists
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	s.notifier.Notify(ctx, NotificationEvent{
		Type:        NotificationFriendRequest,
		ActorID:     requesterID,
		RecipientID: recipientID,
		SubjectID:   rel.ID,
	})
	return rel, nil
}

// AcceptRequest accepts the pending request sent by requesterID to the
// caller. Only the recipient of a request can accept it; a requester trying
// to accept their own request gets ErrRelationshipNotFound, since no pending
// request in that direction exists.
func (s *relationshipService) AcceptRequest(ctx context.Context, callerID, requesterID uint) (*models.Relationship, error) {
	if callerID == requesterID {
		return nil, ErrSelfRelationship
	}

	rel, err := s.relRepo.AcceptPending(ctx, requesterID, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("failed to accept friend request: %w", err)
	}

	s.notifier.Notify(ctx, NotificationEvent{
		Type:        NotificationFriendAccepted,
		ActorID:     callerID,
		RecipientID: requesterID,
		SubjectID:   rel.ID,
	})
	return rel, nil
}

// CancelOrReject removes a pending request between the caller and the other
// user. Either party may call it: the requester cancels, the recipient
// rejects. Friend counts never changed, so nothing to adjust.
func (s *relationshipService) CancelOrReject(ctx context.Context, callerID, otherUserID uint) error {
	if callerID == otherUserID {
		return ErrSelfRelationship
	}
	if err := s.relRepo.DeletePendingBetween(ctx, callerID, otherUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRelationshipNotFound
		}
		return fmt.Errorf("failed to delete pending request: %w", err)
	}
	return nil
}

// RemoveFriend dissolves an accepted friendship.
func (s *relationshipService) RemoveFriend(ctx context.Context, callerID, friendID uint) error {
	if callerID == friendID {
		return ErrSelfRelationship
	}
	if err := s.relRepo.RemoveAcceptedBetween(ctx, callerID, friendID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRelationshipNotFound
		}
		return fmt.Errorf("failed to remove friendship: %w", err)
	}
	return nil
}

// Block replaces whatever edge exists between the caller and the target with
// a blocked edge owned by the caller. Valid from any prior state, including
// no relationship at all.
func (s *relationshipService) Block(ctx context.Context, callerID, targetID uint) (*models.Relationship, error) {
	if callerID == targetID {
		return nil, ErrSelfRelationship
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user %d: %w", targetID, err)
	}

	rel, err := s.relRepo.Block(ctx, callerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to block user %d: %w", targetID, err)
	}
	return rel, nil
}

// StatusFor reports the caller-relative relationship status with another user.
func (s *relationshipService) StatusFor(ctx context.Context, callerID, otherUserID uint) (models.DirectionalStatus, error) {
	if callerID == otherUserID {
		return models.DirectionalStatusNone, ErrSelfRelationship
	}
	rel, err := s.relRepo.FindBetween(ctx, callerID, otherUserID)
	if err != nil {
		return models.DirectionalStatusNone, fmt.Errorf("failed to look up relationship: %w", err)
	}
	if rel == nil {
		return models.DirectionalStatusNone, nil
	}
	return rel.StatusFor(callerID), nil
}

// ListFriends returns the basic profiles of everyone the user has an accepted
// friendship with. Counterparts come preloaded with the relationship rows, so
// no per-friend lookups happen.
func (s *relationshipService) ListFriends(ctx context.Context, userID uint) ([]*models.UserBasicInfo, error) {
	rels, err := s.relRepo.ListAcceptedFor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	friends := make([]*models.UserBasicInfo, 0, len(rels))
	for _, rel := range rels {
		counterpart := rel.Requester
		if rel.RequesterID == userID {
			counterpart = rel.Recipient
		}
		friends = append(friends, &models.UserBasicInfo{
			ID:             counterpart.ID,
			Username:       counterpart.Username,
			FirstName:      counterpart.FirstName,
			LastName:       counterpart.LastName,
			ProfilePicture: counterpart.ProfilePicture,
		})
	}
	return friends, nil
}

// ListPending returns the friend requests awaiting the user's decision.
func (s *relationshipService) ListPending(ctx context.Context, userID uint) ([]PendingRequest, error) {
	rels, err := s.relRepo.ListPendingForRecipient(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	pending := make([]PendingRequest, 0, len(rels))
	for _, rel := range rels {
		pending = append(pending, PendingRequest{
			RelationshipID: rel.ID,
			Requester: &models.UserBasicInfo{
				ID:             rel.Requester.ID,
				Username:       rel.Requester.Username,
				FirstName:      rel.Requester.FirstName,
				LastName:       rel.Requester.LastName,
				ProfilePicture: rel.Requester.ProfilePicture,
			},
			CreatedAt: rel.CreatedAt.Format(time.RFC3339),
		})
	}
	return pending, nil
}

// ListUsersWithStatus searches users by name and annotates each hit with the
// caller-relative relationship status. The caller's relationships are fetched
// once and joined in memory, so the annotation costs one extra query
// regardless of result size.
func (s *relationshipService) ListUsersWithStatus(ctx context.Context, callerID uint, query string) ([]UserWithStatus, error) {
	users, err := s.userRepo.SearchUsers(ctx, query, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	rels, err := s.relRepo.ListAllFor(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	byCounterpart := make(map[uint]*models.Relationship, len(rels))
	for i := range rels {
		byCounterpart[rels[i].CounterpartID(callerID)] = &rels[i]
	}

	results := make([]UserWithStatus, 0, len(users))
	for _, user := range users {
		status := models.DirectionalStatusNone
		if rel, ok := byCounterpart[user.ID]; ok {
			status = rel.StatusFor(callerID)
		}
		results = append(results, UserWithStatus{User: user, RelationshipStatus: status})
	}
	return results, nil
}
