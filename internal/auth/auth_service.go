package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-worksuite/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// ProfileReader is satisfied by the profile service. ErrRecordNotFound means
// the user has not completed their profile yet.
type ProfileReader interface {
	SummaryByUserID(ctx context.Context, userID string) (role string, fullName string, err error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo     Repository
	profiles ProfileReader
	logger   *zap.Logger
}

func NewService(repo Repository, profiles ProfileReader, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, profiles: profiles, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return AuthResponse{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	return AuthResponse{
		ID:              user.ID.String(),
		Email:           user.Email,
		ProfileComplete: false,
	}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastSignIn(ctx, user.ID, now); err != nil {
		// login still succeeds, last_sign_in is informational
		s.logger.Warn("touch last_sign_in failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	accessToken, err := s.generateToken(user.ID.String(), accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user.ID.String(), refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	resp := s.buildResponse(ctx, user)
	s.logger.Info("login success", zap.String("user_id", user.ID.String()))
	return accessToken, refreshToken, resp, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(user.ID.String(), accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(user.ID.String(), refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, s.buildResponse(ctx, user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := s.buildResponse(ctx, u)
	return &resp, nil
}

func (s *service) buildResponse(ctx context.Context, user *User) AuthResponse {
	resp := AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
	}

	role, fullName, err := s.profiles.SummaryByUserID(ctx, user.ID.String())
	switch {
	case err == nil:
		resp.ProfileComplete = true
		resp.Role = &role
		resp.FullName = &fullName
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.ProfileComplete = false
	default:
		s.logger.Warn("profile summary lookup failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return resp
}

func (s *service) generateToken(userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
