package storage

import (
	"context"

	"gorm.io/gorm"

	"socialnet/internal/models"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	// DeleteWithComments deletes the post and all comments attached to it in
	// one transaction, so no orphaned comments survive a partial failure.
	DeleteWithComments(ctx context.Context, postID uint) error
	// GetByUserIDs returns the posts of the given authors, newest first.
	GetByUserIDs(ctx context.Context, userIDs []uint) ([]models.Post, error)
	// AdjustLikesCount applies delta to the like counter atomically. A
	// negative delta never takes the counter below zero.
	AdjustLikesCount(ctx context.Context, postID uint, delta int) error
}

// gormPostRepository implements PostRepository using GORM.
type gormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based PostRepository.
func NewGormPostRepository(db *gorm.DB) PostRepository {
	return &gormPostRepository{db: db}
}

// Create inserts a new post record.
func (r *gormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID retrieves a post by ID.
func (r *gormPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update persists changes to an existing post.
func (r *gormPostRepository) Update(ctx context.Context, post *models.Post) error {
	if post.ID == 0 {
		return gorm.ErrMissingWhereClause
	}
	return r.db.WithContext(ctx).Save(post).Error
}

// DeleteWithComments cascades the delete to the post's comments.
func (r *gormPostRepository) DeleteWithComments(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}

// GetByUserIDs retrieves the posts authored by any of the given users,
// newest first. Used for the timeline (the caller plus their friends).
func (r *gormPostRepository) GetByUserIDs(ctx context.Context, userIDs []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(userIDs) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// AdjustLikesCount updates the denormalized like counter in place.
func (r *gormPostRepository) AdjustLikesCount(ctx context.Context, postID uint, delta int) error {
	query := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID)
	if delta < 0 {
		query = query.Where("likes_count >= ?", -delta)
	}
	return query.UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}
