package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

// IsPublished reports whether the post is visible at the given time.
func (p *Post) IsPublished(now time.Time) bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// Publish stamps the publish time. Editing re-stamps it, so a post's
// publish time is always its last edit time.
func (p *Post) Publish(now time.Time) {
	t := now
	p.PublishedAt = &t
}

// SetAuthor records the owning user on the post.
func (p *Post) SetAuthor(user *User) error {
	if user == nil {
		return errors.New("author cannot be nil")
	}

	p.AuthorID = user.ID
	p.AuthorName = user.Username
	return nil
}
