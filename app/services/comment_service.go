package services

import (
	"fmt"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	now         func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// SetClock overrides the service clock for testing
func (s *CommentService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateComment attaches a comment from a validated form to a post. Every
// comment created here is approved immediately; there is no moderation
// queue. Returns ErrNotFound if the post does not exist.
func (s *CommentService) CreateComment(postID int, form *models.CommentForm) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Author:    form.Author,
		Content:   form.Content,
		CreatedAt: s.now(),
		Approved:  true,
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}

	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %v", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListApproved retrieves the approved comments on a post. Returns
// ErrNotFound if the post does not exist.
func (s *CommentService) ListApproved(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListApprovedByPost(postID)
}
