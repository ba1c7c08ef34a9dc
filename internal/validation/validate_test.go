package validation

import (
	"strings"
	"testing"

	"modelhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Sort     string `json:"sort" validate:"omitempty,oneof=latest popular downloads"`
}

func validSignup() signup {
	return signup{Email: "a@example.com", Username: "abc", Password: "secret", Rating: 5}
}

func TestStruct_Messages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(s *signup)
		message string
	}{
		{"Valid", func(_ *signup) {}, ""},
		{"Bad email", func(s *signup) { s.Email = "not-an-email" }, "email must be a valid email address"},
		{"Missing email", func(s *signup) { s.Email = "" }, "email is required"},
		{"Short username", func(s *signup) { s.Username = "ab" }, "username must be at least 3 characters"},
		{"Long password", func(s *signup) { s.Password = strings.Repeat("x", 101) }, "password must be at most 100 characters"},
		{"Rating too high", func(s *signup) { s.Rating = 6 }, "rating must be at most 5"},
		{"Rating too low", func(s *signup) { s.Rating = 0 }, "rating must be at least 1"},
		{"Unknown sort", func(s *signup) { s.Sort = "random" }, "sort must be one of: latest, popular, downloads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSignup()
			tt.mutate(&s)

			err := Struct(s)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestLengthsCountCharacters(t *testing.T) {
	t.Parallel()
	// Three runes, six bytes.
	assert.NoError(t, ValidateUsername("äöü"))
	assert.Error(t, ValidateUsername("äö"))
	assert.Error(t, ValidateUsername("   "))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Multiple At Symbols", "user@@example.com", true},
		{"Space In Local Part", "user @example.com", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCategorySlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		slug string
		ok   bool
	}{
		{name: "valid nlp", slug: "nlp", ok: true},
		{name: "valid cv", slug: "cv", ok: true},
		{name: "valid with number", slug: "multimodal-2", ok: true},
		{name: "too short", slug: "a", ok: false},
		{name: "uppercase", slug: "NLP", ok: false},
		{name: "underscore", slug: "speech_to_text", ok: false},
		{name: "leading hyphen", slug: "-audio", ok: false},
		{name: "trailing hyphen", slug: "audio-", ok: false},
		{name: "reserved models", slug: "models", ok: false},
		{name: "reserved docs", slug: "docs", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCategorySlug(tc.slug)
			if tc.ok && err != nil {
				t.Fatalf("expected valid slug, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected invalid slug, got nil error")
			}
		})
	}
}
