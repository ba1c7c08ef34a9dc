package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"modelhub/internal/config"
	"modelhub/internal/models"
	"modelhub/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                     "8000",
		SecretKey:                "test-secret-key-12345678901234567890123456789012",
		Algorithm:                "HS256",
		AccessTokenExpireMinutes: 60,
		AllowedOrigins:           "http://localhost:5173",
		Env:                      "test",
	}
}

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
}

// newTestEnv builds the full application on a private SQLite database.
// redisClient may be nil.
func newTestEnv(t *testing.T, redisClient *redis.Client) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	s, err := NewServerWithDeps(testConfig(), db, redisClient)
	require.NoError(t, err)
	return &testEnv{server: s, app: s.NewApp(), db: db}
}

// do sends a request with an optional bearer token and JSON body and decodes
// a JSON response into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// login returns an access token for a user created by testutil.CreateUser.
func (e *testEnv) login(t *testing.T, user *models.User) string {
	t.Helper()
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    user.Email,
		"password": testutil.TestPassword,
	}, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "bearer", body.TokenType)
	return body.AccessToken
}

func (e *testEnv) modelByID(t *testing.T, id uuid.UUID) models.Model {
	t.Helper()
	var m models.Model
	require.NoError(t, e.db.First(&m, "id = ?", id).Error)
	return m
}

func assertErrorBody(t *testing.T, resp *http.Response, status int, detail string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	if detail != "" {
		assert.Contains(t, body.Detail, detail)
	}
}

func TestParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendString(parseID(c, "id").String())
	})

	id := uuid.New()
	tests := []struct {
		raw      string
		expected uuid.UUID
	}{
		{id.String(), id},
		{"42", uuid.Nil},
		{"nope", uuid.Nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+tt.raw, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.String(), string(body))
		})
	}
}

func TestParsePage(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p, err := parsePage(c)
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"page": p.Page, "page_size": p.PageSize})
	})

	tests := []struct {
		query    string
		status   int
		page     float64
		pageSize float64
	}{
		{"", http.StatusOK, 1, 20},
		{"?page=3&page_size=5", http.StatusOK, 3, 5},
		{"?page=abc", http.StatusBadRequest, 0, 0},
		{"?page_size=1.5", http.StatusBadRequest, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				return
			}
			var body map[string]float64
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.page, body["page"])
			assert.Equal(t, tt.pageSize, body["page_size"])
		})
	}
}
