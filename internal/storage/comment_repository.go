package storage

import (
	"context"

	"gorm.io/gorm"

	"socialnet/internal/models"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetByPostID returns a post's comments, newest first.
	GetByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

// gormCommentRepository implements CommentRepository using GORM.
type gormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-based CommentRepository.
func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

// Create inserts a new comment record.
func (r *gormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID retrieves a comment by ID.
func (r *gormCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByPostID retrieves all comments attached to a post, newest first.
func (r *gormCommentRepository) GetByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// Update persists changes to an existing comment.
func (r *gormCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if comment.ID == 0 {
		return gorm.ErrMissingWhereClause
	}
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete removes a comment.
func (r *gormCommentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}
