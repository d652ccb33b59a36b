package repositories

import (
	"testing"
	"time"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComment(postID int, content string, createdAt time.Time, approved bool) *models.Comment {
	return &models.Comment{
		PostID:    postID,
		Author:    "Test Author",
		Content:   content,
		CreatedAt: createdAt,
		Approved:  approved,
	}
}

func TestCommentRepositoryCRUD(t *testing.T) {
	repo := NewBadgerCommentRepository(newTestDB(t))

	t.Run("create and get comment", func(t *testing.T) {
		comment := newComment(1, "First comment", time.Now(), true)

		err := repo.Create(comment)
		require.NoError(t, err)
		assert.Greater(t, comment.ID, 0)

		retrieved, err := repo.GetByID(comment.ID)
		require.NoError(t, err)
		assert.Equal(t, comment.Content, retrieved.Content)
		assert.Equal(t, comment.PostID, retrieved.PostID)
		assert.True(t, retrieved.Approved)
	})

	t.Run("get missing comment", func(t *testing.T) {
		_, err := repo.GetByID(9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete comment", func(t *testing.T) {
		comment := newComment(1, "Doomed", time.Now(), true)
		require.NoError(t, repo.Create(comment))

		require.NoError(t, repo.Delete(comment.ID))

		_, err := repo.GetByID(comment.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCommentRepositoryListByPost(t *testing.T) {
	repo := NewBadgerCommentRepository(newTestDB(t))
	now := time.Now()

	later := newComment(1, "Later", now, true)
	earlier := newComment(1, "Earlier", now.Add(-time.Hour), true)
	pending := newComment(1, "Pending", now.Add(-30*time.Minute), false)
	other := newComment(2, "Other post", now, true)

	for _, c := range []*models.Comment{later, earlier, pending, other} {
		require.NoError(t, repo.Create(c))
	}

	t.Run("oldest first", func(t *testing.T) {
		comments, err := repo.ListByPost(1)
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, "Earlier", comments[0].Content)
		assert.Equal(t, "Pending", comments[1].Content)
		assert.Equal(t, "Later", comments[2].Content)
	})

	t.Run("approved only", func(t *testing.T) {
		comments, err := repo.ListApprovedByPost(1)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "Earlier", comments[0].Content)
		assert.Equal(t, "Later", comments[1].Content)
	})

	t.Run("delete by post", func(t *testing.T) {
		require.NoError(t, repo.DeleteByPost(1))

		comments, err := repo.ListByPost(1)
		require.NoError(t, err)
		assert.Empty(t, comments)

		// comments on other posts survive
		comments, err = repo.ListByPost(2)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})
}
