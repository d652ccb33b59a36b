package services

import (
	"errors"
	"fmt"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostsPerPage is the fixed listing page size.
const PostsPerPage = 4

// ErrForbidden is returned when a user other than the author tries to
// mutate a post. Controllers translate it into a silent, non-mutating
// fallback view rather than an error response.
var ErrForbidden = errors.New("only the author may modify this post")

// PostPage is one page of a post listing plus pagination metadata.
type PostPage struct {
	Posts      []*models.Post
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// PrevPage returns the page number before the current one.
func (p *PostPage) PrevPage() int { return p.Page - 1 }

// NextPage returns the page number after the current one.
func (p *PostPage) NextPage() int { return p.Page + 1 }

// PostDetail is everything the detail view needs: the post, its approved
// comments, and the like state for the current user.
type PostDetail struct {
	Post      *models.Post
	Comments  []*models.Comment
	Liked     bool
	LikeCount int
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	likeRepo    repositories.LikeRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// SetClock overrides the service clock for testing
func (s *PostService) SetClock(now func() time.Time) {
	s.now = now
}

// ListPublished retrieves one page of published posts, newest first.
// Pagination never fails: page numbers below 1 become page 1 and page
// numbers past the end become the last page.
func (s *PostService) ListPublished(page int) (*PostPage, error) {
	posts, err := s.postRepo.ListPublished(s.now())
	if err != nil {
		return nil, err
	}
	return paginate(posts, page), nil
}

// ListByAuthor retrieves one page of a user's published posts, with the
// same pagination policy as ListPublished. Returns ErrNotFound if the
// username does not exist.
func (s *PostService) ListByAuthor(username string, page int) (*models.User, *PostPage, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListPublishedByAuthor(user.ID, s.now())
	if err != nil {
		return nil, nil, err
	}
	return user, paginate(posts, page), nil
}

// GetPost retrieves a post with its approved comments and the like state
// for the given user (0 means anonymous).
func (s *PostService) GetPost(id, currentUserID int) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListApprovedByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	post.Comments = comments

	count, err := s.likeRepo.Count(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %v", err)
	}

	liked := false
	if currentUserID > 0 {
		liked, err = s.likeRepo.Has(id, currentUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check like: %v", err)
		}
	}

	return &PostDetail{
		Post:      post,
		Comments:  comments,
		Liked:     liked,
		LikeCount: count,
	}, nil
}

// CreatePost creates a post from a validated form. The author and publish
// time are stamped here, never taken from the form, so neither can be
// spoofed by the client.
func (s *PostService) CreatePost(form *models.PostForm, author *models.User) (*models.Post, error) {
	post := &models.Post{
		Title:     form.Title,
		Content:   form.Content,
		CreatedAt: s.now(),
	}
	if err := post.SetAuthor(author); err != nil {
		return nil, err
	}
	post.Publish(s.now())

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %v", err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a validated form to an existing post. Only the author
// may update; anyone else gets ErrForbidden and the post is left unchanged.
// The publish time is re-stamped, so an edited post's publish time equals
// its last edit time.
func (s *PostService) UpdatePost(id int, form *models.PostForm, user *models.User) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != user.ID {
		return nil, ErrForbidden
	}

	post.Title = form.Title
	post.Content = form.Content
	if err := post.SetAuthor(user); err != nil {
		return nil, err
	}
	post.Publish(s.now())

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %v", err)
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post with its comments and likes. Only the author
// may delete; anyone else gets ErrForbidden.
func (s *PostService) DeletePost(id int, user *models.User) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		return ErrForbidden
	}

	if err := s.commentRepo.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete comments: %v", err)
	}
	if err := s.likeRepo.DeleteByPost(id); err != nil {
		return fmt.Errorf("failed to delete likes: %v", err)
	}
	return s.postRepo.Delete(id)
}

// ToggleLike flips the user's membership in the post's like-set and
// reports the resulting state. Applying it twice restores the original
// state.
func (s *PostService) ToggleLike(postID, userID int) (bool, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return false, err
	}

	liked, err := s.likeRepo.Has(postID, userID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.likeRepo.Remove(postID, userID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.likeRepo.Add(postID, userID); err != nil {
		return false, err
	}
	return true, nil
}

// paginate slices the full result set into the requested page, clamping
// the page number into the valid range.
func paginate(posts []*models.Post, page int) *PostPage {
	totalPages := (len(posts) + PostsPerPage - 1) / PostsPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PostsPerPage
	end := start + PostsPerPage
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return &PostPage{
		Posts:      posts[start:end],
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
