// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"fmt"
	"testing"

	"modelhub/internal/database"
	"modelhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every user created by CreateUser.
const TestPassword = "secret123"

// NewTestDB returns a migrated in-memory SQLite database private to the test.
// The pool is limited to one connection so concurrent callers queue instead
// of each seeing an empty database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts an active user whose password is TestPassword.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:          username + "@example.com",
		Username:       username,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Deactivate marks user inactive. IsActive has a database default, so the
// zero value cannot be written on create.
func Deactivate(t testing.TB, db *gorm.DB, user *models.User) {
	t.Helper()
	require.NoError(t, db.Model(user).Update("is_active", false).Error)
	user.IsActive = false
}

// CreateModel inserts a model authored by author.
func CreateModel(t testing.TB, db *gorm.DB, author *models.User, name string) *models.Model {
	t.Helper()

	model := &models.Model{
		Name:     name,
		Category: "nlp",
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(model).Error)
	return model
}
