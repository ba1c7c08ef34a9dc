// Package service holds the business rules between the HTTP handlers and the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"modelhub/internal/cache"
	"modelhub/internal/config"
	"modelhub/internal/middleware"
	"modelhub/internal/models"
	"modelhub/internal/observability"
	"modelhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt only looks at the first 72 bytes of a password.
const bcryptMaxPasswordBytes = 72

// TokenClaims are the claims carried by an access token. Subject is the
// user's email and ID is the jti used for revocation.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// CredentialService hashes passwords and issues, verifies and revokes access tokens.
type CredentialService struct {
	secret   []byte
	method   *jwt.SigningMethodHMAC
	ttl      time.Duration
	users    repository.UserRepository
	denylist *cache.Denylist
	now      func() time.Time
}

// NewCredentialService builds a CredentialService from the validated config.
// denylist may be nil, in which case tokens cannot be revoked.
func NewCredentialService(cfg *config.Config, users repository.UserRepository, denylist *cache.Denylist) (*CredentialService, error) {
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if denylist == nil {
		denylist = cache.NewDenylist(nil)
	}
	return &CredentialService{
		secret:   []byte(cfg.SecretKey),
		method:   method,
		ttl:      time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute,
		users:    users,
		denylist: denylist,
		now:      time.Now,
	}, nil
}

// HashPassword returns the bcrypt hash of password at the default cost.
func (s *CredentialService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash.
func (s *CredentialService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordBytes {
		b = b[:bcryptMaxPasswordBytes]
	}
	return b
}

// IssueToken signs an access token for subject that expires after the configured TTL.
func (s *CredentialService) IssueToken(subject string) (string, error) {
	now := s.now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken verifies the signature, algorithm and expiry of tokenString.
func (s *CredentialService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	if claims.Subject == "" {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	return claims, nil
}

// ResolveToken parses tokenString and returns the active user it was issued to.
func (s *CredentialService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	return s.ResolveClaims(ctx, claims)
}

// ResolveClaims loads the user named by already verified claims, rejecting
// revoked tokens and inactive accounts.
func (s *CredentialService) ResolveClaims(ctx context.Context, claims *TokenClaims) (*models.User, error) {
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		// The denylist is best effort; an outage must not lock every user out.
		middleware.Logger.WarnContext(ctx, "token denylist unavailable", slog.String("error", err.Error()))
	}
	if revoked {
		return nil, models.NewUnauthorizedError("Token has been revoked")
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Inactive user")
	}
	return user, nil
}

// Revoke denylists the token for the rest of its lifetime. Without Redis it
// does nothing and logout stays stateless.
func (s *CredentialService) Revoke(ctx context.Context, claims *TokenClaims) error {
	if claims == nil || !s.denylist.Enabled() {
		return nil
	}
	if claims.ExpiresAt == nil {
		return errors.New("token has no expiry")
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return models.NewInternalError(err)
	}
	if ttl > 0 {
		observability.TokensRevokedTotal.Inc()
	}
	return nil
}
