package service

import (
	"strings"
	"testing"

	"reviewhub/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreate(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	bob := createUser(t, "bob", model.RoleUser)
	review := createReview(t, title, alice, 8)
	svc := NewCommentService()

	dto, err := svc.Create(title.Id, review.Id, bob, CommentInput{Text: strPtr("agreed")})
	require.NoError(t, err)
	assert.Equal(t, "bob", dto.Author)
	assert.Equal(t, "agreed", dto.Text)
	assert.False(t, dto.PubDate.IsZero())
}

func TestCommentTextLimit(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	review := createReview(t, title, alice, 8)
	svc := NewCommentService()

	_, err := svc.Create(title.Id, review.Id, alice, CommentInput{})
	assert.Contains(t, apiErr(t, err).Fields, "text")

	long := strings.Repeat("a", 256)
	_, err = svc.Create(title.Id, review.Id, alice, CommentInput{Text: &long})
	assert.Contains(t, apiErr(t, err).Fields, "text")

	max := strings.Repeat("a", 255)
	_, err = svc.Create(title.Id, review.Id, alice, CommentInput{Text: &max})
	require.NoError(t, err)
}

func TestCommentScopedToPath(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	other := createTitle(t, "Ronin", 1998)
	alice := createUser(t, "alice", model.RoleUser)
	review := createReview(t, title, alice, 8)
	svc := NewCommentService()

	dto, err := svc.Create(title.Id, review.Id, alice, CommentInput{Text: strPtr("hi")})
	require.NoError(t, err)

	// Review reached through the wrong title is invisible.
	_, err = svc.Get(other.Id, review.Id, dto.Id)
	assert.Equal(t, 404, apiErr(t, err).Status)

	_, err = svc.Get(title.Id, 9999, dto.Id)
	assert.Equal(t, 404, apiErr(t, err).Status)

	_, err = svc.Get(title.Id, review.Id, 9999)
	assert.Equal(t, 404, apiErr(t, err).Status)

	_, err = svc.Get(title.Id, review.Id, dto.Id)
	require.NoError(t, err)
}

func TestCommentUpdateAndDelete(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	review := createReview(t, title, alice, 8)
	svc := NewCommentService()

	created, err := svc.Create(title.Id, review.Id, alice, CommentInput{Text: strPtr("first take")})
	require.NoError(t, err)

	comment, err := svc.Get(title.Id, review.Id, created.Id)
	require.NoError(t, err)

	blank := ""
	_, err = svc.Update(comment, CommentInput{Text: &blank})
	assert.Contains(t, apiErr(t, err).Fields, "text")

	dto, err := svc.Update(comment, CommentInput{Text: strPtr("second take")})
	require.NoError(t, err)
	assert.Equal(t, "second take", dto.Text)

	require.NoError(t, svc.Delete(comment))
	_, err = svc.Get(title.Id, review.Id, created.Id)
	assert.Equal(t, 404, apiErr(t, err).Status)
}
