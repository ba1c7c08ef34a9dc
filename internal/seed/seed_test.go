package seed

import (
	"context"
	"testing"
	"time"

	"modelhub/internal/models"
	"modelhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildModel_DryRun(t *testing.T) {
	f := NewFactory(nil, Options{DryRun: true, MaxDays: 30, RandSeed: 42})
	author, err := f.CreateUser()
	require.NoError(t, err)

	m := f.BuildModel(author, "cv")
	assert.Equal(t, author.ID, m.AuthorID)
	assert.Equal(t, "cv", m.Category)
	assert.NotEmpty(t, m.Name)
	assert.NotEmpty(t, m.Tags)
	require.NotNil(t, m.FileURL)
	assert.Contains(t, *m.FileURL, "https://")
	assert.WithinDuration(t, time.Now(), m.CreatedAt, 31*24*time.Hour)
}

func TestSeeder_RunKeepsCountersConsistent(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewSeeder(db, Options{
		NumUsers:    5,
		NumModels:   6,
		MaxComments: 3,
		MaxLikes:    4,
		RandSeed:    7,
		FastHash:    true,
	})
	require.NoError(t, s.Run(context.Background()))

	var users, catalog int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Model{}).Count(&catalog).Error)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(6), catalog)

	var rows []models.Model
	require.NoError(t, db.Find(&rows).Error)
	for _, m := range rows {
		var comments, likes int64
		require.NoError(t, db.Model(&models.Comment{}).Where("model_id = ?", m.ID).Count(&comments).Error)
		require.NoError(t, db.Model(&models.Like{}).Where("model_id = ?", m.ID).Count(&likes).Error)
		assert.Equal(t, int(comments), m.CommentsCount, m.Name)
		assert.Equal(t, int(likes), m.LikesCount, m.Name)
	}

	var seeded models.User
	require.NoError(t, db.First(&seeded).Error)
	assert.True(t, seeded.IsActive)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := NewSeeder(db, Options{NumUsers: 2, NumModels: 2, MaxComments: 2, MaxLikes: 2, FastHash: true})
	require.NoError(t, s.Run(context.Background()))

	require.NoError(t, s.ClearAll())

	for _, table := range []any{&models.User{}, &models.Model{}, &models.Comment{}, &models.Like{}} {
		var n int64
		require.NoError(t, db.Model(table).Count(&n).Error)
		assert.Zero(t, n)
	}
	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(4), categories, "categories are reference data")
}
