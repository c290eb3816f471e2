package auth_test

import (
	"context"
	"testing"
	"time"

	"go-worksuite/internal/auth"
	autherrors "go-worksuite/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepository struct {
	createFn          func(ctx context.Context, user *auth.User) error
	getByEmailFn      func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	touchLastSignInFn func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) TouchLastSignIn(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.touchLastSignInFn != nil {
		return f.touchLastSignInFn(ctx, id, at)
	}
	return nil
}

type fakeProfileReader struct {
	role     string
	fullName string
	err      error
}

func (f *fakeProfileReader) SummaryByUserID(context.Context, string) (string, string, error) {
	return f.role, f.fullName, f.err
}

func noProfile() *fakeProfileReader {
	return &fakeProfileReader{err: gorm.ErrRecordNotFound}
}

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.User{
		ID:       uuid.New(),
		Email:    "user@worksuite.test",
		Password: string(hashed),
		IsActive: true,
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	var saved *auth.User
	repo := &fakeAuthRepository{
		createFn: func(_ context.Context, user *auth.User) error {
			saved = user
			return nil
		},
	}
	svc := auth.NewService(repo, noProfile(), zap.NewNop())

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "new@worksuite.test",
		Password: "swordfish42",
	})

	assert.NoError(t, err)
	assert.False(t, resp.ProfileComplete)
	if assert.NotNil(t, saved) {
		assert.NotEqual(t, "swordfish42", saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("swordfish42")))
	}
}

func TestAuthService_Register_DuplicateEmailConflicts(t *testing.T) {
	repo := &fakeAuthRepository{
		createFn: func(_ context.Context, _ *auth.User) error {
			return &pgconn.PgError{Code: "23505"}
		},
	}
	svc := auth.NewService(repo, noProfile(), zap.NewNop())

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "taken@worksuite.test",
		Password: "swordfish42",
	})

	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
}

func TestAuthService_Login_Succeeds(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := activeUser(t, "swordfish42")
	touched := false
	repo := &fakeAuthRepository{
		getByEmailFn: func(_ context.Context, email string) (*auth.User, error) {
			assert.Equal(t, user.Email, email)
			return user, nil
		},
		touchLastSignInFn: func(_ context.Context, id uuid.UUID, _ time.Time) error {
			assert.Equal(t, user.ID, id)
			touched = true
			return nil
		},
	}
	svc := auth.NewService(repo, &fakeProfileReader{role: "team", fullName: "Dana"}, zap.NewNop())

	accessToken, refreshToken, resp, err := svc.Login(context.Background(), user.Email, "swordfish42")

	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)
	assert.True(t, touched)
	assert.True(t, resp.ProfileComplete)
	if assert.NotNil(t, resp.Role) {
		assert.Equal(t, "team", *resp.Role)
	}
}

func TestAuthService_Login_WrongPasswordRejected(t *testing.T) {
	user := activeUser(t, "swordfish42")
	repo := &fakeAuthRepository{
		getByEmailFn: func(_ context.Context, _ string) (*auth.User, error) {
			return user, nil
		},
	}
	svc := auth.NewService(repo, noProfile(), zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), user.Email, "not-the-password")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	svc := auth.NewService(&fakeAuthRepository{}, noProfile(), zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), "ghost@worksuite.test", "whatever1")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledAccountRejected(t *testing.T) {
	user := activeUser(t, "swordfish42")
	user.IsActive = false
	repo := &fakeAuthRepository{
		getByEmailFn: func(_ context.Context, _ string) (*auth.User, error) {
			return user, nil
		},
	}
	svc := auth.NewService(repo, noProfile(), zap.NewNop())

	_, _, _, err := svc.Login(context.Background(), user.Email, "swordfish42")

	assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
}

func TestAuthService_RefreshToken_RoundTrips(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := activeUser(t, "swordfish42")
	repo := &fakeAuthRepository{
		getByEmailFn: func(_ context.Context, _ string) (*auth.User, error) {
			return user, nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (*auth.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}
	svc := auth.NewService(repo, noProfile(), zap.NewNop())

	_, refreshToken, _, err := svc.Login(context.Background(), user.Email, "swordfish42")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, user.ID.String(), resp.ID)
}

func TestAuthService_RefreshToken_GarbageRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := auth.NewService(&fakeAuthRepository{}, noProfile(), zap.NewNop())

	_, _, _, err := svc.RefreshToken(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}
