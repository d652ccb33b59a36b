package repositories

import (
	"time"

	"inkwell/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	// ListPublished returns every post published at or before now,
	// newest publish time first.
	ListPublished(now time.Time) ([]*models.Post, error)
	ListPublishedByAuthor(authorID int, now time.Time) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	ListApprovedByPost(postID int) ([]*models.Comment, error)
	Delete(id int) error
	DeleteByPost(postID int) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// LikeRepository tracks which users liked which posts. The relation has
// set semantics: adding twice is the same as adding once.
type LikeRepository interface {
	Add(postID, userID int) error
	Remove(postID, userID int) error
	Has(postID, userID int) (bool, error)
	Count(postID int) (int, error)
	DeleteByPost(postID int) error
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Create(session *models.Session) error
	GetByToken(token string) (*models.Session, error)
	Delete(token string) error
}
