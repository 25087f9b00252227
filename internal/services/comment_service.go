package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"socialnet/internal/models"
	"socialnet/internal/storage"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("only the comment owner can modify it")
)

// CommentService defines the interface for comment operations.
type CommentService interface {
	// CreateComment attaches a comment to an existing post.
	CreateComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error)
	// GetCommentsForPost returns a post's comments, newest first, with
	// authors resolved.
	GetCommentsForPost(ctx context.Context, postID uint) ([]models.CommentWithAuthor, error)
	UpdateComment(ctx context.Context, callerID, commentID uint, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, callerID, commentID uint) error
}

// commentService is the CommentService implementation.
type commentService struct {
	commentRepo storage.CommentRepository
	postRepo    storage.PostRepository
	userRepo    storage.UserRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(commentRepo storage.CommentRepository, postRepo storage.PostRepository, userRepo storage.UserRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo, userRepo: userRepo}
}

// CreateComment validates the target post exists, then stores the comment.
func (s *commentService) CreateComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetCommentsForPost returns the post's comments with authors resolved in one
// batched query.
func (s *commentService) GetCommentsForPost(ctx context.Context, postID uint) ([]models.CommentWithAuthor, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}

	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for post %d: %w", postID, err)
	}

	authorIDSet := make(map[uint]struct{}, len(comments))
	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		if _, seen := authorIDSet[c.UserID]; !seen {
			authorIDSet[c.UserID] = struct{}{}
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	authors, err := s.userRepo.GetMultipleBasicInfoByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment authors: %w", err)
	}
	authorByID := make(map[uint]*models.UserBasicInfo, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a
	}

	result := make([]models.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		result = append(result, models.CommentWithAuthor{
			Comment: c,
			Author:  authorByID[c.UserID],
		})
	}
	return result, nil
}

// UpdateComment edits a comment the caller owns.
func (s *commentService) UpdateComment(ctx context.Context, callerID, commentID uint, content string) (*models.Comment, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to fetch comment %d: %w", commentID, err)
	}
	if comment.UserID != callerID {
		return nil, ErrNotCommentOwner
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}
	return comment, nil
}

// DeleteComment removes a comment the caller owns.
func (s *commentService) DeleteComment(ctx context.Context, callerID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to fetch comment %d: %w", commentID, err)
	}
	if comment.UserID != callerID {
		return ErrNotCommentOwner
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}
	return nil
}
