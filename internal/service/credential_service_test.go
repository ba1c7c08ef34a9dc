package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"modelhub/internal/cache"
	"modelhub/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCredentials(t *testing.T, users *userRepoStub, denylist *cache.Denylist) *CredentialService {
	t.Helper()
	svc, err := NewCredentialService(testConfig(), users, denylist)
	require.NoError(t, err)
	return svc
}

func activeUser(email string) *models.User {
	return &models.User{ID: uuid.New(), Email: email, Username: "alice", IsActive: true}
}

func TestNewCredentialService_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Algorithm = "RS256"
	_, err := NewCredentialService(cfg, noopUserRepo(), nil)
	assert.Error(t, err)
}

func TestCredentialService_PasswordHashing(t *testing.T) {
	t.Parallel()

	svc := newCredentials(t, noopUserRepo(), nil)

	hash, err := svc.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, svc.VerifyPassword("secret123", hash))
	assert.False(t, svc.VerifyPassword("secret124", hash))
}

func TestCredentialService_PasswordTruncatedAt72Bytes(t *testing.T) {
	t.Parallel()

	svc := newCredentials(t, noopUserRepo(), nil)
	long := strings.Repeat("a", 72)

	hash, err := svc.HashPassword(long + "tail")
	require.NoError(t, err)
	assert.True(t, svc.VerifyPassword(long+"different", hash))
}

func TestCredentialService_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	user := activeUser("alice@example.com")
	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, nil
	}
	svc := newCredentials(t, repo, nil)

	token, err := svc.IssueToken(user.Email)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)

	resolved, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestCredentialService_ParseTokenRejects(t *testing.T) {
	t.Parallel()

	svc := newCredentials(t, noopUserRepo(), nil)

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		past := newCredentials(t, noopUserRepo(), nil)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := past.IssueToken("alice@example.com")
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assertUnauthorizedError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.SecretKey = "another-secret-key-that-is-long-enough"
		other, err := NewCredentialService(cfg, noopUserRepo(), nil)
		require.NoError(t, err)
		token, err := other.IssueToken("alice@example.com")
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assertUnauthorizedError(t, err)
	})

	t.Run("other HMAC algorithm", func(t *testing.T) {
		t.Parallel()
		claims := jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testConfig().SecretKey))
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assertUnauthorizedError(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()
		claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testConfig().SecretKey))
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assertUnauthorizedError(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ParseToken("not-a-token")
		assertUnauthorizedError(t, err)
	})
}

func TestCredentialService_ResolveClaims(t *testing.T) {
	t.Parallel()

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		svc := newCredentials(t, noopUserRepo(), nil)
		token, err := svc.IssueToken("ghost@example.com")
		require.NoError(t, err)

		_, err = svc.ResolveToken(context.Background(), token)
		assertUnauthorizedError(t, err)
	})

	t.Run("inactive user", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: uuid.New(), Email: email, IsActive: false}, nil
		}
		svc := newCredentials(t, repo, nil)
		token, err := svc.IssueToken("bob@example.com")
		require.NoError(t, err)

		_, err = svc.ResolveToken(context.Background(), token)
		assertUnauthorizedError(t, err)
		assert.Contains(t, err.Error(), "Inactive user")
	})
}

func TestCredentialService_RevokeWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	user := activeUser("alice@example.com")
	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return user, nil }
	svc := newCredentials(t, repo, cache.NewDenylist(client))
	ctx := context.Background()

	token, err := svc.IssueToken(user.Email)
	require.NoError(t, err)
	claims, err := svc.ParseToken(token)
	require.NoError(t, err)

	_, err = svc.ResolveClaims(ctx, claims)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, claims))
	assert.True(t, mr.Exists(cache.DenylistKey(claims.ID)))
	ttl := mr.TTL(cache.DenylistKey(claims.ID))
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)

	_, err = svc.ResolveToken(ctx, token)
	assertUnauthorizedError(t, err)
	assert.Contains(t, err.Error(), "revoked")

	// A fresh token for the same user is unaffected.
	fresh, err := svc.IssueToken(user.Email)
	require.NoError(t, err)
	_, err = svc.ResolveToken(ctx, fresh)
	assert.NoError(t, err)
}

func TestCredentialService_DenylistOutageFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	user := activeUser("alice@example.com")
	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) { return user, nil }
	svc := newCredentials(t, repo, cache.NewDenylist(client))

	token, err := svc.IssueToken(user.Email)
	require.NoError(t, err)

	mr.Close()
	resolved, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestCredentialService_RevokeWithoutRedisIsNoop(t *testing.T) {
	t.Parallel()

	svc := newCredentials(t, noopUserRepo(), nil)
	token, err := svc.IssueToken("alice@example.com")
	require.NoError(t, err)
	claims, err := svc.ParseToken(token)
	require.NoError(t, err)

	assert.NoError(t, svc.Revoke(context.Background(), claims))
}
