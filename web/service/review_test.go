package service

import (
	"testing"
	"time"

	"reviewhub/database"
	"reviewhub/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewCreate(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	svc := NewReviewService()

	dto, err := svc.Create(title.Id, alice, ReviewInput{Text: strPtr("great"), Score: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Heat", dto.Title)
	assert.Equal(t, "alice", dto.Author)
	assert.Equal(t, 9, dto.Score)
	assert.False(t, dto.PubDate.IsZero())
}

func TestReviewOnePerAuthorAndTitle(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	other := createTitle(t, "Ronin", 1998)
	alice := createUser(t, "alice", model.RoleUser)
	bob := createUser(t, "bob", model.RoleUser)
	svc := NewReviewService()

	_, err := svc.Create(title.Id, alice, ReviewInput{Text: strPtr("great"), Score: intPtr(9)})
	require.NoError(t, err)

	_, err = svc.Create(title.Id, alice, ReviewInput{Text: strPtr("again"), Score: intPtr(5)})
	apiError := apiErr(t, err)
	assert.Equal(t, 400, apiError.Status)
	assert.Contains(t, apiError.Fields, "non_field_errors")

	// Same author on another title, and another author on the same
	// title, are both fine.
	_, err = svc.Create(other.Id, alice, ReviewInput{Text: strPtr("ok"), Score: intPtr(7)})
	require.NoError(t, err)
	_, err = svc.Create(title.Id, bob, ReviewInput{Text: strPtr("meh"), Score: intPtr(4)})
	require.NoError(t, err)
}

func TestReviewCreateValidation(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	svc := NewReviewService()

	_, err := svc.Create(title.Id, alice, ReviewInput{})
	fields := apiErr(t, err).Fields
	assert.Contains(t, fields, "text")
	assert.Contains(t, fields, "score")

	_, err = svc.Create(title.Id, alice, ReviewInput{Text: strPtr("x"), Score: intPtr(0)})
	assert.Contains(t, apiErr(t, err).Fields, "score")

	_, err = svc.Create(title.Id, alice, ReviewInput{Text: strPtr("x"), Score: intPtr(11)})
	assert.Contains(t, apiErr(t, err).Fields, "score")

	_, err = svc.Create(9999, alice, ReviewInput{Text: strPtr("x"), Score: intPtr(5)})
	assert.Equal(t, 404, apiErr(t, err).Status)
}

func TestReviewScopedToTitle(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	other := createTitle(t, "Ronin", 1998)
	alice := createUser(t, "alice", model.RoleUser)
	review := createReview(t, title, alice, 8)
	svc := NewReviewService()

	_, err := svc.Get(title.Id, review.Id)
	require.NoError(t, err)

	_, err = svc.Get(other.Id, review.Id)
	assert.Equal(t, 404, apiErr(t, err).Status)

	_, err = svc.Get(9999, review.Id)
	assert.Equal(t, 404, apiErr(t, err).Status)
}

func TestReviewListOrderedByPubDate(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	bob := createUser(t, "bob", model.RoleUser)

	db := database.GetDB()
	now := time.Now()
	require.NoError(t, db.Create(&model.Review{
		TitleId: title.Id, AuthorId: bob.Id, Text: "later", Score: 5,
		PubDate: now,
	}).Error)
	require.NoError(t, db.Create(&model.Review{
		TitleId: title.Id, AuthorId: alice.Id, Text: "earlier", Score: 7,
		PubDate: now.Add(-time.Hour),
	}).Error)

	page, err := NewReviewService().List(title.Id, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)

	results := page.Results.([]ReviewDTO)
	require.Len(t, results, 2)
	assert.Equal(t, "earlier", results[0].Text)
	assert.Equal(t, "later", results[1].Text)
}

func TestReviewUpdateKeepsPubDate(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	review := createReview(t, title, alice, 8)
	original := review.PubDate
	svc := NewReviewService()

	loaded, err := svc.Get(title.Id, review.Id)
	require.NoError(t, err)

	dto, err := svc.Update(loaded, ReviewInput{Score: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, dto.Score)
	assert.Equal(t, "text", dto.Text)
	assert.True(t, dto.PubDate.Equal(original))
}

func TestReviewDeleteCascadesComments(t *testing.T) {
	setupTestDB(t)
	title := createTitle(t, "Heat", 1995)
	alice := createUser(t, "alice", model.RoleUser)
	review := createReview(t, title, alice, 8)
	db := database.GetDB()
	require.NoError(t, db.Create(&model.Comment{ReviewId: review.Id, AuthorId: alice.Id, Text: "yes"}).Error)
	svc := NewReviewService()

	loaded, err := svc.Get(title.Id, review.Id)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(loaded))

	var comments int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)
}
