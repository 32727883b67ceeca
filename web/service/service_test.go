package service

import (
	"path/filepath"
	"testing"

	"reviewhub/database"
	"reviewhub/database/model"

	"github.com/stretchr/testify/require"
)

// setupTestDB migrates a fresh sqlite database in a temp dir. InitDB
// also seeds the default admin user.
func setupTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

func createUser(t *testing.T, username string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}

func createTitle(t *testing.T, name string, year int) *model.Title {
	t.Helper()
	title := &model.Title{Name: name, Year: year}
	require.NoError(t, database.GetDB().Create(title).Error)
	return title
}
