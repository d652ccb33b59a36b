package services

import (
	"testing"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	service := NewCommentService(comments, posts)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service.SetClock(func() time.Time { return now })

	post := &models.Post{
		Title: "Commented Post", Content: "Body", AuthorID: 1, AuthorName: "alice", CreatedAt: now,
	}
	require.NoError(t, posts.Create(post))

	t.Run("comment is approved immediately", func(t *testing.T) {
		form := &models.CommentForm{Author: "Reader", Content: "Nice one"}
		comment, err := service.CreateComment(post.ID, form)
		require.NoError(t, err)
		assert.Greater(t, comment.ID, 0)
		assert.Equal(t, post.ID, comment.PostID)
		assert.True(t, comment.Approved)
		assert.Equal(t, now, comment.CreatedAt)
	})

	t.Run("missing post", func(t *testing.T) {
		form := &models.CommentForm{Author: "Reader", Content: "Nice one"}
		_, err := service.CreateComment(9999, form)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("invalid comment is rejected", func(t *testing.T) {
		form := &models.CommentForm{Author: "R", Content: "Too short a name"}
		_, err := service.CreateComment(post.ID, form)
		assert.Error(t, err)
	})
}

func TestListApproved(t *testing.T) {
	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	service := NewCommentService(comments, posts)

	now := time.Now()
	post := &models.Post{
		Title: "Commented Post", Content: "Body", AuthorID: 1, AuthorName: "alice", CreatedAt: now,
	}
	require.NoError(t, posts.Create(post))

	require.NoError(t, comments.Create(&models.Comment{
		PostID: post.ID, Author: "Reader", Content: "Visible", CreatedAt: now, Approved: true,
	}))
	require.NoError(t, comments.Create(&models.Comment{
		PostID: post.ID, Author: "Reader", Content: "Hidden", CreatedAt: now, Approved: false,
	}))

	t.Run("approved only", func(t *testing.T) {
		list, err := service.ListApproved(post.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Visible", list[0].Content)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := service.ListApproved(9999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
