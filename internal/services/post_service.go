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
	ErrPostNotFound     = errors.New("post not found")
	ErrNotPostOwner     = errors.New("only the post owner can modify it")
	ErrPostAccessDenied = errors.New("this post is not visible to you")
	ErrEmptyContent     = errors.New("content must not be empty")
)

// PostUpdate carries the mutable post fields.
type PostUpdate struct {
	Content *string `json:"content,omitempty"`
	Media   *string `json:"media,omitempty"`
}

// PostService defines the interface for post operations.
type PostService interface {
	CreatePost(ctx context.Context, userID uint, content, media string) (*models.Post, error)
	// GetPost returns a post if the caller may see it: own post, public
	// author, or accepted friend of a private author.
	GetPost(ctx context.Context, callerID, postID uint) (*models.PostWithAuthor, error)
	UpdatePost(ctx context.Context, callerID, postID uint, update PostUpdate) (*models.Post, error)
	// DeletePost removes the post and all its comments.
	DeletePost(ctx context.Context, callerID, postID uint) error
	// Timeline returns the caller's and their friends' posts, newest first,
	// with authors resolved.
	Timeline(ctx context.Context, callerID uint) ([]models.PostWithAuthor, error)
	LikePost(ctx context.Context, postID uint) error
	UnlikePost(ctx context.Context, postID uint) error
}

// postService is the PostService implementation.
type postService struct {
	postRepo storage.PostRepository
	userRepo storage.UserRepository
	relRepo  storage.RelationshipRepository
}

// NewPostService creates a new PostService instance.
func NewPostService(postRepo storage.PostRepository, userRepo storage.UserRepository, relRepo storage.RelationshipRepository) PostService {
	return &postService{postRepo: postRepo, userRepo: userRepo, relRepo: relRepo}
}

// CreatePost stores a new post owned by the caller.
func (s *postService) CreatePost(ctx context.Context, userID uint, content, media string) (*models.Post, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	post := &models.Post{
		UserID:  userID,
		Content: content,
		Media:   media,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost fetches a single post, enforcing the author's privacy setting.
func (s *postService) GetPost(ctx context.Context, callerID, postID uint) (*models.PostWithAuthor, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}

	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post author %d: %w", post.UserID, err)
	}

	if post.UserID != callerID && author.IsPrivate {
		rel, err := s.relRepo.FindBetween(ctx, callerID, post.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check relationship: %w", err)
		}
		if rel == nil || rel.Status != models.RelationshipStatusAccepted {
			return nil, ErrPostAccessDenied
		}
	}

	return &models.PostWithAuthor{
		Post: *post,
		Author: &models.UserBasicInfo{
			ID:             author.ID,
			Username:       author.Username,
			FirstName:      author.FirstName,
			LastName:       author.LastName,
			ProfilePicture: author.ProfilePicture,
		},
	}, nil
}

// UpdatePost applies changes to a post the caller owns.
func (s *postService) UpdatePost(ctx context.Context, callerID, postID uint, update PostUpdate) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}
	if post.UserID != callerID {
		return nil, ErrNotPostOwner
	}

	if update.Content != nil {
		if *update.Content == "" {
			return nil, ErrEmptyContent
		}
		post.Content = *update.Content
	}
	if update.Media != nil {
		post.Media = *update.Media
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post %d: %w", postID, err)
	}
	return post, nil
}

// DeletePost removes a post the caller owns, cascading to its comments.
func (s *postService) DeletePost(ctx context.Context, callerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}
	if post.UserID != callerID {
		return ErrNotPostOwner
	}
	if err := s.postRepo.DeleteWithComments(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", postID, err)
	}
	return nil
}

// Timeline assembles the caller's feed: their own posts plus those of every
// accepted friend, newest first. Authors are resolved in one batched query.
func (s *postService) Timeline(ctx context.Context, callerID uint) ([]models.PostWithAuthor, error) {
	rels, err := s.relRepo.ListAcceptedFor(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	authorIDs := make([]uint, 0, len(rels)+1)
	authorIDs = append(authorIDs, callerID)
	for _, rel := range rels {
		authorIDs = append(authorIDs, rel.CounterpartID(callerID))
	}

	posts, err := s.postRepo.GetByUserIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeline posts: %w", err)
	}

	authors, err := s.userRepo.GetMultipleBasicInfoByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve post authors: %w", err)
	}
	authorByID := make(map[uint]*models.UserBasicInfo, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a
	}

	timeline := make([]models.PostWithAuthor, 0, len(posts))
	for _, post := range posts {
		timeline = append(timeline, models.PostWithAuthor{
			Post:   post,
			Author: authorByID[post.UserID],
		})
	}
	return timeline, nil
}

// LikePost increments the post's like counter.
func (s *postService) LikePost(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}
	if err := s.postRepo.AdjustLikesCount(ctx, postID, 1); err != nil {
		return fmt.Errorf("failed to like post %d: %w", postID, err)
	}
	return nil
}

// UnlikePost decrements the post's like counter. The store guards against
// going below zero.
func (s *postService) UnlikePost(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to fetch post %d: %w", postID, err)
	}
	if err := s.postRepo.AdjustLikesCount(ctx, postID, -1); err != nil {
		return fmt.Errorf("failed to unlike post %d: %w", postID, err)
	}
	return nil
}
