package usecases

import (
	"context"

	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/domain/repositories"
)

// UserSettingsUsecase reads and writes per-user preferences
type UserSettingsUsecase struct {
	settingsRepo repositories.UserSettingsRepository
	uow          repositories.UnitOfWork
	policy       AccessPolicy
}

// NewUserSettingsUsecase creates a new user settings usecase
func NewUserSettingsUsecase(settingsRepo repositories.UserSettingsRepository, uow repositories.UnitOfWork) *UserSettingsUsecase {
	return &UserSettingsUsecase{
		settingsRepo: settingsRepo,
		uow:          uow,
		policy:       DefaultAccessPolicy,
	}
}

// Get returns the requestor's settings
func (u *UserSettingsUsecase) Get(ctx context.Context, requestor entities.Requestor) ([]*entities.UserSettings, error) {
	settings, err := u.settingsRepo.GetByUserID(ctx, requestor.ID)
	if err != nil {
		return nil, notFoundOr(err, "user settings not found")
	}
	return []*entities.UserSettings{settings}, nil
}

// Update writes settings rows. Non-admins may only touch their own row.
func (u *UserSettingsUsecase) Update(ctx context.Context, requestor entities.Requestor, settings []*entities.UserSettings) error {
	if len(settings) == 0 {
		return domainerrors.BadRequest("no settings to update")
	}
	for _, s := range settings {
		if s.ID != requestor.ID {
			if err := u.policy.Authorize(requestor, CapManageSettings); err != nil {
				return domainerrors.Unauthorized("you may only update your own settings")
			}
		}
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		for _, s := range settings {
			if err := u.settingsRepo.Update(txCtx, s); err != nil {
				return notFoundOr(err, "user settings not found")
			}
		}
		return nil
	})
}
