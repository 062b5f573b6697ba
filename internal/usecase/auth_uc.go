package usecase

import (
	"context"
	"errors"
	"time"

	"estate-marketplace/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenTTL = 24 * time.Hour

type AuthUsecase struct {
	repo      domain.UserRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthUsecase(repo domain.UserRepository, jwtSecret string, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		repo:      repo,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

func (uc *AuthUsecase) SignUp(ctx context.Context, username, email, password string) (*domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		uc.logger.Error("SignUp: failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// SignIn verifies the credentials and returns the user together with a
// signed session token for the auth cookie.
func (uc *AuthUsecase) SignIn(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.issueToken(user.ID)
	if err != nil {
		uc.logger.Error("SignIn: failed to sign token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}
	return user, token, nil
}

func (uc *AuthUsecase) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.jwtSecret))
}
