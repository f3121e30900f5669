// Package user provides the application layer for accounts and
// authentication.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkfeed/forkfeed/internal/domain/user"
	"github.com/forkfeed/forkfeed/internal/ports/outbound"
	apperrors "github.com/forkfeed/forkfeed/pkg/errors"
)

// TokenIssuer mints bearer tokens for authenticated subjects
type TokenIssuer interface {
	IssueToken(subjectID uuid.UUID, ttl time.Duration) (string, error)
	TokenTTL() time.Duration
}

// UserService implements account and authentication use cases
type UserService struct {
	userRepo   outbound.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	tokens TokenIssuer,
	bcryptCost int,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.Named("user-service"),
	}
}

// RegisterCommand contains user registration data
type RegisterCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginCommand contains user login data
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordCommand contains password change data
type ChangePasswordCommand struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,max=128"`
}

// UserDTO represents user data returned by the API
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AuthResult contains the credential handed back after signup or login
type AuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`

	// UserID is carried for the session variant; it is not serialized.
	UserID uuid.UUID `json:"-"`
}

// Register creates a new account and returns its first credential
func (s *UserService) Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error) {
	newUser, err := user.NewUser(cmd.Email, cmd.Name, cmd.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, outbound.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		return nil, apperrors.Wrap(err, "failed to create user")
	}

	token, err := s.tokens.IssueToken(newUser.ID(), 0)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}

	s.logger.Info("user registered",
		zap.String("user_id", newUser.ID().String()),
	)

	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        string(newUser.Role()),
		UserID:      newUser.ID(),
	}, nil
}

// Login authenticates a user. Unknown email and wrong password produce the
// same error so the response never reveals which check failed.
func (s *UserService) Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	u, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewUnauthenticatedError()
		}
		return nil, apperrors.Wrap(err, "failed to look up user")
	}

	if err := u.CheckPassword(cmd.Password); err != nil {
		return nil, apperrors.NewUnauthenticatedError()
	}

	u.RecordLogin()
	if err := s.userRepo.Update(ctx, u); err != nil {
		// login still succeeds; the timestamp is advisory
		s.logger.Warn("failed to record login time",
			zap.String("user_id", u.ID().String()),
			zap.Error(err),
		)
	}

	token, err := s.tokens.IssueToken(u.ID(), 0)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}

	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        string(u.Role()),
		UserID:      u.ID(),
	}, nil
}

// GetProfile returns the current user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User")
		}
		return nil, apperrors.Wrap(err, "failed to load user")
	}
	dto := entityToDTO(u)
	return &dto, nil
}

// ChangePassword replaces the user's password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, cmd ChangePasswordCommand) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, outbound.ErrNotFound) {
			return apperrors.NewNotFoundError("User")
		}
		return apperrors.Wrap(err, "failed to load user")
	}

	if err := u.CheckPassword(cmd.CurrentPassword); err != nil {
		return apperrors.NewUnauthenticatedError()
	}

	if err := u.UpdatePassword(cmd.NewPassword, s.bcryptCost); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

func entityToDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID(),
		Email:       u.Email(),
		Name:        u.Name(),
		Role:        string(u.Role()),
		CreatedAt:   u.CreatedAt(),
		LastLoginAt: u.LastLoginAt(),
	}
}
