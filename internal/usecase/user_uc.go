package usecase

import (
	"context"
	"errors"

	"estate-marketplace/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrUserNotFound = errors.New("user not found")

// UserUpdate carries the partial profile fields of an update request.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Avatar   *string
}

type UserUsecase struct {
	repo   domain.UserRepository
	logger *zap.Logger
}

func NewUserUsecase(repo domain.UserRepository, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger}
}

func (uc *UserUsecase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser overwrites the supplied profile fields. Only the account owner
// may update; a supplied password is re-hashed before persistence.
func (uc *UserUsecase) UpdateUser(ctx context.Context, id, actorID string, update UserUpdate) (*domain.User, error) {
	if !domain.CanModify(id, actorID) {
		uc.logger.Warn("UpdateUser: forbidden", zap.String("user_id", id), zap.String("actor_id", actorID))
		return nil, ErrForbidden
	}

	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Username != nil && *update.Username != "" {
		user.Username = *update.Username
	}
	if update.Email != nil && *update.Email != "" {
		user.Email = *update.Email
	}
	if update.Avatar != nil && *update.Avatar != "" {
		user.Avatar = *update.Avatar
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := uc.repo.Update(ctx, user); err != nil {
		uc.logger.Error("UpdateUser: failed to update user", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (uc *UserUsecase) DeleteUser(ctx context.Context, id, actorID string) error {
	if !domain.CanModify(id, actorID) {
		uc.logger.Warn("DeleteUser: forbidden", zap.String("user_id", id), zap.String("actor_id", actorID))
		return ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrUserNotFound
		}
		uc.logger.Error("DeleteUser: failed to delete user", zap.String("user_id", id), zap.Error(err))
		return err
	}
	return nil
}
