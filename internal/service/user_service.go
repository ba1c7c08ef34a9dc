package service

import (
	"context"

	"modelhub/internal/models"
	"modelhub/internal/repository"
	"modelhub/internal/validation"
)

// UserService registers users, logs them in and edits their profile.
type UserService struct {
	userRepo    repository.UserRepository
	credentials *CredentialService
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,notblank,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput carries the fields of a profile edit. Absent fields are
// left alone; a null bio or avatar clears it.
type UpdateProfileInput struct {
	User     *models.User            `json:"-"`
	Username models.Optional[string] `json:"username"`
	Bio      models.Optional[string] `json:"bio"`
	Avatar   models.Optional[string] `json:"avatar"`
}

func NewUserService(userRepo repository.UserRepository, credentials *CredentialService) *UserService {
	return &UserService{userRepo: userRepo, credentials: credentials}
}

// Register creates an account. Email and username uniqueness is checked
// first for precise messages; the unique indexes catch concurrent sign-ups.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}

	hash, err := s.credentials.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:          in.Email,
		Username:       in.Username,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed access token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil || !s.credentials.VerifyPassword(in.Password, user.HashedPassword) {
		return "", models.NewUnauthorizedError("Incorrect email or password")
	}
	if !user.IsActive {
		return "", models.NewValidationError("Inactive user")
	}

	token, err := s.credentials.IssueToken(user.Email)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// UpdateProfile applies the present fields of in to in.User. An empty or null
// username is ignored. in.User is left untouched when the update fails.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	updated := *in.User
	user := &updated
	var fields []string

	if in.Username.Set && !in.Username.Null && in.Username.Value != "" && in.Username.Value != user.Username {
		if err := validation.ValidateUsername(in.Username.Value); err != nil {
			return nil, err
		}
		owner, err := s.userRepo.GetByUsername(ctx, in.Username.Value)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ID != user.ID {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = in.Username.Value
		fields = append(fields, "username")
	}

	if in.Bio.Set {
		user.Bio = in.Bio.Ptr()
		fields = append(fields, "bio")
	}
	if in.Avatar.Set {
		if !in.Avatar.Null {
			if err := validation.Var("avatar", in.Avatar.Value, "max=500"); err != nil {
				return nil, err
			}
		}
		user.Avatar = in.Avatar.Ptr()
		fields = append(fields, "avatar")
	}

	if err := s.userRepo.UpdateFields(ctx, user, fields...); err != nil {
		return nil, err
	}
	*in.User = updated
	return in.User, nil
}
