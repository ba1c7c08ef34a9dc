package bootstrap

import (
	"context"
	"testing"

	"modelhub/internal/config"
	"modelhub/internal/models"
	"modelhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareData(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int64
	}{
		{"seeds categories", Options{SeedCategories: true}, 4},
		{"skips seeding", Options{}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewTestDB(t)
			require.NoError(t, PrepareData(db, tc.opts))
			require.NoError(t, PrepareData(db, tc.opts))

			var count int64
			require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
			assert.Equal(t, tc.want, count)
		})
	}
}

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(&config.Config{Env: "test"}, "1.0.0")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
