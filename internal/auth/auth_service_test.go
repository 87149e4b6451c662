package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/auth"
	autherrors "github.com/prasadp25/protecther-hrms-sub001/internal/auth/errors"
	authMock "github.com/prasadp25/protecther-hrms-sub001/internal/auth/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (auth.Service, *authMock.MockRepository, *auth.TokenIssuer) {
	ctrl := gomock.NewController(t)
	repo := authMock.NewMockRepository(ctrl)
	issuer := auth.NewTokenIssuer("test-secret", 15*time.Minute, time.Hour)
	return auth.NewService(repo, issuer), repo, issuer
}

func storedUser(t *testing.T, password, role string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &auth.User{
		ID:       uuid.New(),
		Name:     "Meera HR",
		Email:    "meera@example.com",
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, issuer := setupService(t)
		user := storedUser(t, "s3cret-pass", "HR")
		repo.EXPECT().GetByEmail(ctx, "meera@example.com").Return(user, nil)

		resp, err := svc.Login(ctx, "meera@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int64(900), resp.ExpiresIn)
		assert.Equal(t, "HR", resp.User.Role)

		p, err := issuer.VerifyAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), p.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.EXPECT().GetByEmail(ctx, "meera@example.com").Return(storedUser(t, "s3cret-pass", "HR"), nil)

		_, err := svc.Login(ctx, "meera@example.com", "guess")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		user := storedUser(t, "s3cret-pass", "HR")
		user.IsActive = false
		repo.EXPECT().GetByEmail(ctx, "meera@example.com").Return(user, nil)

		_, err := svc.Login(ctx, "meera@example.com", "s3cret-pass")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, repo, issuer := setupService(t)
	user := storedUser(t, "s3cret-pass", "VIEWER")

	access, refresh, err := issuer.Issue(user.ID.String(), user.Role)
	require.NoError(t, err)

	repo.EXPECT().GetByID(ctx, user.ID.String()).Return(user, nil)
	resp, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Refresh(ctx, access)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestService_Me(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupService(t)

	_, err := svc.Me(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)

	id := uuid.NewString()
	repo.EXPECT().GetByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.Me(ctx, id)
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password and normalized email", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		var created *auth.User
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
			created = u
			return nil
		})

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Name: "Ravi", Email: " Ravi@Example.com ", Password: "longenough", Role: "hr",
		})

		require.NoError(t, err)
		assert.Equal(t, "ravi@example.com", resp.Email)
		assert.Equal(t, "HR", resp.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("longenough")))
	})

	t.Run("invalid role", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Register(ctx, auth.RegisterRequest{Name: "Ravi", Email: "r@example.com", Password: "longenough", Role: "OWNER"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"})

		_, err := svc.Register(ctx, auth.RegisterRequest{Name: "Ravi", Email: "r@example.com", Password: "longenough", Role: "HR"})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing admin", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.EXPECT().GetByEmail(ctx, "admin@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *auth.User) error {
			assert.Equal(t, "ADMIN", u.Role)
			return nil
		})

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "change-me-now"))
	})

	t.Run("existing admin is left alone", func(t *testing.T) {
		svc, repo, _ := setupService(t)
		repo.EXPECT().GetByEmail(ctx, "admin@example.com").Return(storedUser(t, "x", "ADMIN"), nil)

		assert.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "change-me-now"))
	})

	t.Run("not configured", func(t *testing.T) {
		svc, _, _ := setupService(t)

		assert.NoError(t, svc.EnsureAdmin(ctx, "", ""))
	})
}
