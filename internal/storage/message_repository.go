package storage

import (
	"context"

	"gorm.io/gorm"

	"socialnet/internal/models"
)

// MessageRepository defines the interface for direct-message data operations.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	// GetBetween returns the full exchange between two users, oldest first.
	GetBetween(ctx context.Context, userID1, userID2 uint) ([]*models.Message, error)
	// GetAllFor returns every message touching the user, newest first.
	GetAllFor(ctx context.Context, userID uint) ([]*models.Message, error)
	// MarkSeen flips seen=true on all unseen messages from sender to
	// receiver, returning how many rows changed. Idempotent.
	MarkSeen(ctx context.Context, senderID, receiverID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// gormMessageRepository implements MessageRepository using GORM.
type gormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GORM-based MessageRepository.
func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create inserts a new message record.
func (r *gormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// GetByID retrieves a message by ID.
func (r *gormMessageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetBetween retrieves the conversation between two users in either
// direction, ordered ascending by creation time for display.
func (r *gormMessageRepository) GetBetween(ctx context.Context, userID1, userID2 uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID1, userID2, userID2, userID1).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetAllFor retrieves every message the user sent or received, newest first.
// The ordering is applied here rather than assumed from storage order; the
// conversation folding downstream depends on it.
func (r *gormMessageRepository) GetAllFor(ctx context.Context, userID uint) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

// MarkSeen bulk-updates unseen messages from sender to receiver.
func (r *gormMessageRepository) MarkSeen(ctx context.Context, senderID, receiverID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND seen = ?", senderID, receiverID, false).
		Update("seen", true)
	return result.RowsAffected, result.Error
}

// Delete removes a message.
func (r *gormMessageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Message{}, id).Error
}
