package usecases

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/domain/repositories"
	"timecard.backend/pkg/crypto"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/utils"
)

var (
	generateLinkToken = crypto.GenerateVerificationToken
	hashPassword      = crypto.HashPassword
)

// InviteUsecase handles invitations and the signup that redeems them
type InviteUsecase struct {
	inviteRepo   repositories.InviteRepository
	identityRepo repositories.IdentityRepository
	userRepo     repositories.UserRepository
	geopointRepo repositories.GeopointRepository
	settingsRepo repositories.UserSettingsRepository
	uow          repositories.UnitOfWork
	mailer       Mailer
	baseURL      string
	policy       AccessPolicy
}

// NewInviteUsecase creates a new invite usecase
func NewInviteUsecase(
	inviteRepo repositories.InviteRepository,
	identityRepo repositories.IdentityRepository,
	userRepo repositories.UserRepository,
	geopointRepo repositories.GeopointRepository,
	settingsRepo repositories.UserSettingsRepository,
	uow repositories.UnitOfWork,
	mailer Mailer,
	baseURL string,
) *InviteUsecase {
	return &InviteUsecase{
		inviteRepo:   inviteRepo,
		identityRepo: identityRepo,
		userRepo:     userRepo,
		geopointRepo: geopointRepo,
		settingsRepo: settingsRepo,
		uow:          uow,
		mailer:       mailer,
		baseURL:      strings.TrimRight(baseURL, "/"),
		policy:       DefaultAccessPolicy,
	}
}

// Invite emails a signup link to a new address
func (u *InviteUsecase) Invite(ctx context.Context, requestor entities.Requestor, input *entities.InviteInput) (*entities.Invite, error) {
	if err := u.policy.Authorize(requestor, CapManageInvites); err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, domainerrors.BadRequest("invalid role")
	}

	// An existing account must be rejected before anything is issued
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.Conflict("a user with this email already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	token, err := generateLinkToken()
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	invite := &entities.Invite{Email: input.Email, Role: input.Role, Token: null.StringFrom(token)}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		now := null.TimeFrom(timeNow().UTC())
		identity, err := u.identityRepo.GetByEmail(txCtx, input.Email)
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			identity = &entities.Identity{ID: utils.GenerateUUIDv7(), Email: input.Email, InvitedAt: now}
			if err := u.identityRepo.Create(txCtx, identity); err != nil {
				return err
			}
		case err != nil:
			return err
		case identity.IsConfirmed():
			return domainerrors.Conflict("this email has already been confirmed")
		default:
			identity.InvitedAt = now
			if err := u.identityRepo.Update(txCtx, identity); err != nil {
				return err
			}
		}

		invite.ID = identity.ID
		return u.inviteRepo.Upsert(txCtx, invite)
	})
	if err != nil {
		return nil, notFoundOr(err, "identity not found")
	}

	if err := u.mailer.SendInvite(ctx, invite.Email, u.signupLink(token, invite.Email)); err != nil {
		logger.Error(ctx, "Failed to send invite", zap.String("inviteId", invite.ID.String()), zap.Error(err))
		return nil, domainerrors.InternalServerError("failed to send invite email")
	}

	logger.Info(ctx, "Invite issued", zap.String("inviteId", invite.ID.String()), zap.String("role", string(invite.Role)))
	return invite, nil
}

// SignUp redeems an invite and creates the user
func (u *InviteUsecase) SignUp(ctx context.Context, input *entities.SignUpInput) (*entities.SignUpResult, error) {
	invite, err := u.inviteRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, notFoundOr(err, "invite not found")
	}
	if !invite.Token.Valid || subtle.ConstantTimeCompare([]byte(invite.Token.String), []byte(input.Token)) != 1 {
		return nil, domainerrors.Unauthorized("invalid invite token")
	}

	taken, err := u.userRepo.ContactTaken(ctx, input.Email, input.PhoneNumber, uuid.Nil)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if taken {
		return nil, domainerrors.Conflict("email or phone number is already in use")
	}

	if err := crypto.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}
	if input.Geopoint == nil {
		return nil, domainerrors.BadRequest("geopoint is required")
	}
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	geopoint := input.Geopoint.ToGeopoint()
	result := &entities.SignUpResult{Role: invite.Role}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		now := timeNow().UTC()
		identity, err := u.identityRepo.GetByEmail(txCtx, input.Email)
		if errors.Is(err, domainerrors.ErrNotFound) {
			identity = &entities.Identity{ID: invite.ID, Email: input.Email}
			err = u.identityRepo.Create(txCtx, identity)
		}
		if err != nil {
			return err
		}

		identity.Phone = null.StringFrom(input.PhoneNumber)
		identity.PasswordHash = null.StringFrom(hash)
		identity.EmailConfirmedAt = null.TimeFrom(now)
		if err := u.identityRepo.Update(txCtx, identity); err != nil {
			return err
		}
		if err := u.inviteRepo.DeleteByIDs(txCtx, []uuid.UUID{invite.ID}); err != nil {
			return err
		}
		if err := u.geopointRepo.Upsert(txCtx, geopoint); err != nil {
			return err
		}

		user := &entities.User{
			ID:          identity.ID,
			FirstName:   input.FirstName,
			MiddleName:  null.StringFromPtr(input.MiddleName),
			LastName:    input.LastName,
			Email:       input.Email,
			PhoneNumber: input.PhoneNumber,
			Role:        invite.Role,
			IsActive:    true,
			GeopointID:  geopoint.ID,
		}
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		if err := u.settingsRepo.Create(txCtx, entities.DefaultUserSettings(user.ID)); err != nil {
			return err
		}
		result.UserID = user.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email or phone number is already in use")
		}
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "User signed up", zap.String("userId", result.UserID.String()), zap.String("role", string(result.Role)))
	return result, nil
}

// DeleteInvites removes invites and the unconfirmed identities behind them
func (u *InviteUsecase) DeleteInvites(ctx context.Context, requestor entities.Requestor, ids []uuid.UUID) error {
	if err := u.policy.Authorize(requestor, CapManageInvites); err != nil {
		return err
	}
	if len(ids) == 0 {
		return domainerrors.BadRequest("no invites to delete")
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.inviteRepo.DeleteByIDs(txCtx, ids); err != nil {
			return err
		}
		return u.identityRepo.DeleteUnconfirmed(txCtx, ids)
	})
	if err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

// ListInvites returns a page of open invites ordered by email
func (u *InviteUsecase) ListInvites(ctx context.Context, requestor entities.Requestor, page, perPage int) (*entities.Page[*entities.Invite], error) {
	if err := u.policy.Authorize(requestor, CapManageInvites); err != nil {
		return nil, err
	}
	result, err := fetchPage(ctx, page, perPage, u.inviteRepo.List)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return result, nil
}

// VerifyToken reports whether an open invite carries token
func (u *InviteUsecase) VerifyToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	ok, err := u.inviteRepo.ExistsByToken(ctx, token)
	if err != nil {
		return false, domainerrors.InternalError(err)
	}
	return ok, nil
}

func (u *InviteUsecase) signupLink(token, email string) string {
	return u.baseURL + "/signup?token=" + url.QueryEscape(token) + "&email=" + url.QueryEscape(email)
}
