package service

import (
	"context"
	"errors"
	"fmt"

	"kodask_bank/internal/model"
	"kodask_bank/internal/repository"
	"kodask_bank/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Identity is the decoded authenticated caller
type Identity struct {
	Username string
	Role     string
}

// AuthService provides registration, login and token validation
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (int, error)
	Login(ctx context.Context, username, password string) (string, string, error)
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtUtil   *utils.JWTUtil

	// checkRevocation consults the user_tokens table during Authenticate.
	// Off by default: the stored rows are an audit trail, not a session list.
	checkRevocation bool
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtUtil *utils.JWTUtil, checkRevocation bool) AuthService {
	return &authService{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		jwtUtil:         jwtUtil,
		checkRevocation: checkRevocation,
	}
}

// Register creates a new user account and returns its uid
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (int, error) {
	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return 0, ErrUserAlreadyExists
	}

	existing, err = s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return 0, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleCustomer
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The pre-checks race with concurrent registrations; the unique
		// constraint is the authority.
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user.UID, nil
}

// Login verifies credentials, issues a signed token and records it for audit.
// Unknown username and wrong password return the same error so callers cannot
// probe which field was wrong.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return "", "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", "", ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtUtil.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.tokenRepo.Insert(ctx, token, user.UID, expiresAt); err != nil {
		return "", "", fmt.Errorf("failed to record issued token: %w", err)
	}

	return token, user.Role, nil
}

// Authenticate validates a token and returns the embedded identity. The check
// is purely cryptographic unless revocation checks are enabled, in which case
// the token must also still be on file.
func (s *authService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if s.checkRevocation {
		onFile, err := s.tokenRepo.Exists(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to check token record: %w", err)
		}
		if !onFile {
			return nil, ErrInvalidToken
		}
	}

	return &Identity{Username: claims.Subject, Role: claims.Role}, nil
}
