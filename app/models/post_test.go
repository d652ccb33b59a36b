package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:         1,
				Title:      "Valid Title",
				Content:    "This is valid content",
				AuthorID:   1,
				AuthorName: "alice",
				CreatedAt:  time.Now(),
			},
			wantErr: false,
		},
		{
			name: "title too short",
			post: &Post{
				ID:         1,
				Title:      "ab",
				Content:    "This is valid content",
				AuthorID:   1,
				AuthorName: "alice",
				CreatedAt:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing content",
			post: &Post{
				ID:         1,
				Title:      "Valid Title",
				AuthorID:   1,
				AuthorName: "alice",
				CreatedAt:  time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing author",
			post: &Post{
				ID:        1,
				Title:     "Valid Title",
				Content:   "This is valid content",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				ID:         1,
				Title:      "Valid Title",
				Content:    "This is valid content",
				AuthorID:   1,
				AuthorName: "alice",
				CreatedAt:  time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{
		ID:      1,
		Title:   "Test Post",
		Content: "Test Content",
	}

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
}

func TestPostPublishing(t *testing.T) {
	now := time.Now()
	post := &Post{
		ID:      1,
		Title:   "Test Post",
		Content: "Test Content",
	}

	t.Run("unpublished by default", func(t *testing.T) {
		assert.False(t, post.IsPublished(now))
	})

	t.Run("publish makes the post visible", func(t *testing.T) {
		post.Publish(now)
		assert.True(t, post.IsPublished(now))
		assert.Equal(t, now, *post.PublishedAt)
	})

	t.Run("future publish time stays hidden", func(t *testing.T) {
		post.Publish(now.Add(time.Hour))
		assert.False(t, post.IsPublished(now))
	})

	t.Run("re-publish re-stamps the time", func(t *testing.T) {
		later := now.Add(2 * time.Hour)
		post.Publish(later)
		assert.Equal(t, later, *post.PublishedAt)
	})
}

func TestPostSetAuthor(t *testing.T) {
	post := &Post{ID: 1, Title: "Test Post", Content: "Test Content"}

	t.Run("set author", func(t *testing.T) {
		user := &User{ID: 7, Username: "alice"}
		err := post.SetAuthor(user)
		assert.NoError(t, err)
		assert.Equal(t, 7, post.AuthorID)
		assert.Equal(t, "alice", post.AuthorName)
	})

	t.Run("set nil author", func(t *testing.T) {
		err := post.SetAuthor(nil)
		assert.Error(t, err)
	})
}
