package database

import (
	"path/filepath"
	"testing"

	"reviewhub/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Foreign-key enforcement is a per-connection sqlite pragma, so it must
// hold on every connection the pool hands out, not just the one that
// ran the migration.
func TestCascadesFireOnEveryConnection(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, InitDB(dbPath))
	t.Cleanup(func() {
		_ = CloseDB()
	})

	user := &model.User{Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
	require.NoError(t, db.Create(user).Error)
	title := &model.Title{Name: "Heat", Year: 1995}
	require.NoError(t, db.Create(title).Error)
	review := &model.Review{TitleId: title.Id, AuthorId: user.Id, Text: "great", Score: 9}
	require.NoError(t, db.Create(review).Error)
	comment := &model.Comment{ReviewId: review.Id, AuthorId: user.Id, Text: "agreed"}
	require.NoError(t, db.Create(comment).Error)

	// Drop idle connections so every statement below runs on a fresh one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(0)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	require.NoError(t, db.Delete(title).Error)

	var reviews, comments int64
	require.NoError(t, db.Model(&model.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&model.Comment{}).Count(&comments).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, comments)
}

func TestCategoryDeleteSetsNullOnEveryConnection(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, InitDB(dbPath))
	t.Cleanup(func() {
		_ = CloseDB()
	})

	category := &model.Category{Name: "Movies", Slug: "movies"}
	require.NoError(t, db.Create(category).Error)
	title := &model.Title{Name: "Heat", Year: 1995, CategoryId: &category.Id}
	require.NoError(t, db.Create(title).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(0)

	require.NoError(t, db.Delete(category).Error)

	var got model.Title
	require.NoError(t, db.First(&got, title.Id).Error)
	assert.Nil(t, got.CategoryId)
}
