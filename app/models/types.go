package models

import "time"

// Post represents a blog article. PublishedAt is nil until the post is
// published; posts created through the web form are published immediately.
type Post struct {
	ID          int        `json:"id" validate:"gte=0"`
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Content     string     `json:"content" validate:"required"`
	AuthorID    int        `json:"author_id" validate:"required,gt=0"`
	AuthorName  string     `json:"author_name" validate:"required"`
	CreatedAt   time.Time  `json:"created_at" validate:"required"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Comments    []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment represents a reader remark attached to a post. Author is a
// free-text display name, not a user reference.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	Author    string    `json:"author" validate:"required,min=2,max=50"`
	Content   string    `json:"content" validate:"required,min=1,max=500"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	Approved  bool      `json:"approved"`
}

// User represents a registered account. The password is only ever stored
// as a bcrypt hash.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username" validate:"required,min=3,max=30"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session ties a cookie token to a user until ExpiresAt.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
