package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "github.com/prasadp25/protecther-hrms-sub001/internal/auth/errors"
	"github.com/prasadp25/protecther-hrms-sub001/internal/rbac"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Me(ctx context.Context, userID string) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type service struct {
	repo     Repository
	tokens   *TokenIssuer
	hashCost int
	logger   *zap.Logger
}

func NewService(repo Repository, tokens *TokenIssuer, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, hashCost: bcrypt.DefaultCost, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil || !user.IsActive {
		s.logger.Debug("login rejected", zap.String("email", email), zap.Error(err))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return TokenResponse{}, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	return s.issue(user)
}

func (s *service) Me(ctx context.Context, userID string) (AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return AuthResponse{}, mapRepositoryError(err)
	}
	return toAuthResponse(user), nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if !rbac.ValidRole(role) {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}

	user, err := s.newUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return AuthResponse{}, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", role))
	return toAuthResponse(user), nil
}

// EnsureAdmin creates the bootstrap admin account when no user has the
// given email yet.
func (s *service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(mapRepositoryError(err), autherrors.ErrUserNotFound) {
		return err
	}

	user, err := s.newUser("Administrator", email, password, rbac.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("bootstrap admin created", zap.String("email", user.Email))
	return nil
}

func (s *service) newUser(name, email, password, role string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}, nil
}

func (s *service) issue(user *User) (TokenResponse, error) {
	access, refresh, err := s.tokens.Issue(user.ID.String(), user.Role)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         toAuthResponse(user),
	}, nil
}

func toAuthResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
