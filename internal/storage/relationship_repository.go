package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"socialnet/internal/models"
)

// RelationshipRepository defines the interface for relationship data
// operations. Operations that touch multiple records (accepting a request
// and bumping both friend counts, superseding an edge with a block) run as
// a single transaction so callers never observe a half-applied state.
//
// Relationships are hard-deleted: a soft-deleted row would keep holding the
// unique pair key and block the pair from ever relating again.
type RelationshipRepository interface {
	Create(ctx context.Context, rel *models.Relationship) error
	FindBetween(ctx context.Context, userID1, userID2 uint) (*models.Relationship, error)
	AcceptPending(ctx context.Context, requesterID, recipientID uint) (*models.Relationship, error)
	DeletePendingBetween(ctx context.Context, userID1, userID2 uint) error
	RemoveAcceptedBetween(ctx context.Context, userID1, userID2 uint) error
	Block(ctx context.Context, callerID, targetID uint) (*models.Relationship, error)
	ListAcceptedFor(ctx context.Context, userID uint) ([]models.Relationship, error)
	ListPendingForRecipient(ctx context.Context, recipientID uint) ([]models.Relationship, error)
	ListAllFor(ctx context.Context, userID uint) ([]models.Relationship, error)
	RecountFriends(ctx context.Context) error
}

// gormRelationshipRepository implements RelationshipRepository using GORM.
type gormRelationshipRepository struct {
	db *gorm.DB
}

// NewGormRelationshipRepository creates a new GORM-based RelationshipRepository.
func NewGormRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &gormRelationshipRepository{db: db}
}

// Create inserts a new relationship edge. The canonical pair key is set here
// so the store's unique index enforces unordered-pair uniqueness even when
// two requests for the same pair race.
func (r *gormRelationshipRepository) Create(ctx context.Context, rel *models.Relationship) error {
	rel.SetPairKey()
	return r.db.WithContext(ctx).Create(rel).Error
}

// FindBetween returns the relationship between two users regardless of
// direction, or nil when none exists.
func (r *gormRelationshipRepository) FindBetween(ctx context.Context, userID1, userID2 uint) (*models.Relationship, error) {
	var rel models.Relationship
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", models.PairKeyFor(userID1, userID2)).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

// AcceptPending transitions the pending request sent by requesterID to
// recipientID into an accepted friendship and increments both users' friend
// counts, all in one transaction. Returns gorm.ErrRecordNotFound when no
// such pending request exists, which also covers the requester trying to
// accept their own request.
func (r *gormRelationshipRepository) AcceptPending(ctx context.Context, requesterID, recipientID uint) (*models.Relationship, error) {
	var rel models.Relationship
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("requester_id = ? AND recipient_id = ? AND status = ?",
				requesterID, recipientID, models.RelationshipStatusPending).
			First(&rel).Error; err != nil {
			return err
		}

		rel.Status = models.RelationshipStatusAccepted
		if err := tx.Model(&rel).Update("status", models.RelationshipStatusAccepted).Error; err != nil {
			return err
		}

		return adjustFriendsCount(tx, 1, requesterID, recipientID)
	})
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// DeletePendingBetween removes a pending request between the pair, in either
// direction. Returns gorm.ErrRecordNotFound when none exists. No friend
// count changes: the request was never accepted.
func (r *gormRelationshipRepository) DeletePendingBetween(ctx context.Context, userID1, userID2 uint) error {
	result := r.db.WithContext(ctx).Unscoped().
		Where("pair_key = ? AND status = ?", models.PairKeyFor(userID1, userID2), models.RelationshipStatusPending).
		Delete(&models.Relationship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RemoveAcceptedBetween deletes an accepted friendship between the pair and
// decrements both friend counts in one transaction. Returns
// gorm.ErrRecordNotFound when the pair is not friends.
func (r *gormRelationshipRepository) RemoveAcceptedBetween(ctx context.Context, userID1, userID2 uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Where("pair_key = ? AND status = ?", models.PairKeyFor(userID1, userID2), models.RelationshipStatusAccepted).
			Delete(&models.Relationship{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return adjustFriendsCount(tx, -1, userID1, userID2)
	})
}

// Block supersedes any existing edge between the pair with a blocked edge
// owned by the caller. When the superseded edge was an accepted friendship,
// both friend counts are decremented, mirroring RemoveAcceptedBetween.
func (r *gormRelationshipRepository) Block(ctx context.Context, callerID, targetID uint) (*models.Relationship, error) {
	blocked := &models.Relationship{
		RequesterID: callerID,
		RecipientID: targetID,
		Status:      models.RelationshipStatusBlocked,
	}
	blocked.SetPairKey()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Relationship
		err := tx.Where("pair_key = ?", blocked.PairKey).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			if existing.Status == models.RelationshipStatusAccepted {
				if err := adjustFriendsCount(tx, -1, callerID, targetID); err != nil {
					return err
				}
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return tx.Create(blocked).Error
	})
	if err != nil {
		return nil, err
	}
	return blocked, nil
}

// ListAcceptedFor returns all accepted relationships involving the user,
// with both endpoints preloaded for counterpart resolution.
func (r *gormRelationshipRepository) ListAcceptedFor(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var rels []models.Relationship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, models.RelationshipStatusAccepted).
		Preload("Requester").
		Preload("Recipient").
		Find(&rels).Error
	return rels, err
}

// ListPendingForRecipient returns pending requests awaiting the user's
// decision, with the requester preloaded.
func (r *gormRelationshipRepository) ListPendingForRecipient(ctx context.Context, recipientID uint) ([]models.Relationship, error) {
	var rels []models.Relationship
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, models.RelationshipStatusPending).
		Preload("Requester").
		Find(&rels).Error
	return rels, err
}

// ListAllFor returns every relationship touching the user, any status.
func (r *gormRelationshipRepository) ListAllFor(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var rels []models.Relationship
	err := r.db.WithContext(ctx).
		Where("requester_id = ? OR recipient_id = ?", userID, userID).
		Find(&rels).Error
	return rels, err
}

// RecountFriends recomputes every user's denormalized friends count from the
// accepted relationships. Operator repair tool for drift.
func (r *gormRelationshipRepository) RecountFriends(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE users SET friends_count = (
			SELECT COUNT(*) FROM relationships
			WHERE relationships.status = 'accepted'
			  AND (relationships.requester_id = users.id OR relationships.recipient_id = users.id)
		)`).Error
}

// adjustFriendsCount applies the same friends-count delta to both users.
func adjustFriendsCount(tx *gorm.DB, delta int, userIDs ...uint) error {
	return tx.Model(&models.User{}).
		Where("id IN ?", userIDs).
		UpdateColumn("friends_count", gorm.Expr("friends_count + ?", delta)).Error
}
