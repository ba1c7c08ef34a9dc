package seed

import (
	"testing"

	"modelhub/internal/models"
	"modelhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInCategories(t *testing.T) {
	categories, err := BuiltInCategories()
	require.NoError(t, err)

	slugs := make([]string, 0, len(categories))
	for _, c := range categories {
		slugs = append(slugs, c.Slug)
		assert.NotEmpty(t, c.Name)
	}
	assert.Equal(t, []string{"nlp", "cv", "audio", "multimodal"}, slugs)
}

func TestLoadCategories_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad slug", "- name: Bad\n  slug: Not_A_Slug\n"},
		{"reserved slug", "- name: API\n  slug: api\n"},
		{"duplicate slug", "- name: A\n  slug: nlp\n- name: B\n  slug: nlp\n"},
		{"not a list", "name: nlp\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCategories([]byte(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestCategories_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, Categories(db))
	require.NoError(t, Categories(db))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)

	var audio models.Category
	require.NoError(t, db.First(&audio, "slug = ?", "audio").Error)
	assert.Equal(t, 3, audio.SortOrder)
}
