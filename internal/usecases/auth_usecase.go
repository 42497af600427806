package usecases

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/domain/repositories"
	"timecard.backend/pkg/crypto"
	"timecard.backend/pkg/jwt"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/redis"
)

var (
	checkPassword = crypto.CheckPassword
	newSessionID  = uuid.NewString
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	identityRepo repositories.IdentityRepository
	userRepo     repositories.UserRepository
	settingsRepo repositories.UserSettingsRepository
	users        *UserUsecase
	jwtService   *jwt.JWTService
	sessions     SessionStore
	magicTokens  TokenStore
	mailer       Mailer
	baseURL      string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	identityRepo repositories.IdentityRepository,
	userRepo repositories.UserRepository,
	settingsRepo repositories.UserSettingsRepository,
	users *UserUsecase,
	jwtService *jwt.JWTService,
	sessions SessionStore,
	magicTokens TokenStore,
	mailer Mailer,
	baseURL string,
) *AuthUsecase {
	return &AuthUsecase{
		identityRepo: identityRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		users:        users,
		jwtService:   jwtService,
		sessions:     sessions,
		magicTokens:  magicTokens,
		mailer:       mailer,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// Login authenticates with email and password
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	identity, err := u.identityRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, domainerrors.InternalError(err)
	}
	if !identity.PasswordHash.Valid || !checkPassword(input.Password, identity.PasswordHash.String) {
		return nil, invalidCredentials()
	}

	user, err := u.activeUser(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	return u.issue(ctx, user, input.UseSession)
}

// Refresh exchanges a refresh token for a new pair
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "invalid refresh token", err)
	}
	user, err := u.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return u.issue(ctx, user, false)
}

// Logout ends a server-side session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := u.sessions.DeleteSession(ctx, sessionID); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

// Me returns the signed-in user with their settings
func (u *AuthUsecase) Me(ctx context.Context, requestor entities.Requestor) (*entities.MeResponse, error) {
	user, err := u.userRepo.GetCompleteByID(ctx, requestor.ID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	settings, err := u.settingsRepo.GetByUserID(ctx, requestor.ID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		settings, err = entities.DefaultUserSettings(requestor.ID), nil
	}
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.MeResponse{User: user, Settings: settings}, nil
}

// VerifyAdmin reports whether the requestor is an admin
func (u *AuthUsecase) VerifyAdmin(_ context.Context, requestor entities.Requestor) bool {
	return requestor.IsAdmin()
}

// GetMagicLink emails a one-time login link
func (u *AuthUsecase) GetMagicLink(ctx context.Context, email string) error {
	if _, err := u.userRepo.GetByEmail(ctx, email); err != nil {
		return notFoundOr(err, "user not found")
	}

	token, err := generateLinkToken()
	if err != nil {
		return domainerrors.InternalError(err)
	}
	if err := u.magicTokens.Issue(ctx, email, token); err != nil {
		return domainerrors.InternalError(err)
	}

	link := u.baseURL + "/login?email=" + url.QueryEscape(email) + "&token=" + url.QueryEscape(token)
	if err := u.mailer.SendMagicLink(ctx, email, link); err != nil {
		logger.Error(ctx, "Failed to send magic link", zap.Error(err))
		return domainerrors.InternalServerError("failed to send magic link")
	}
	return nil
}

// LoginWithMagicLink redeems a magic link token
func (u *AuthUsecase) LoginWithMagicLink(ctx context.Context, input *entities.MagicLinkLoginInput) (*entities.AuthResponse, error) {
	if err := u.magicTokens.Consume(ctx, input.Email, input.Token); err != nil {
		if errors.Is(err, redis.ErrTokenMismatch) || errors.Is(err, redis.ErrKeyNotFound) {
			return nil, domainerrors.Unauthorized("invalid or expired login link")
		}
		return nil, domainerrors.InternalError(err)
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	complete, err := u.activeUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return u.issue(ctx, complete, false)
}

// ConfirmEmail stamps the identity of email as confirmed
func (u *AuthUsecase) ConfirmEmail(ctx context.Context, email string) error {
	if _, err := u.userRepo.GetByEmail(ctx, email); err != nil {
		return notFoundOr(err, "user not found")
	}
	identity, err := u.identityRepo.GetByEmail(ctx, email)
	if err != nil {
		return notFoundOr(err, "identity not found")
	}
	if identity.IsConfirmed() {
		return domainerrors.PreconditionFailed("email has already been confirmed")
	}
	identity.EmailConfirmedAt = null.TimeFrom(timeNow().UTC())
	if err := u.identityRepo.Update(ctx, identity); err != nil {
		return notFoundOr(err, "identity not found")
	}
	return nil
}

// ChangePassword replaces the requestor's password after checking the current one
func (u *AuthUsecase) ChangePassword(ctx context.Context, requestor entities.Requestor, input *entities.ChangePasswordInput) error {
	identity, err := u.identityRepo.GetByID(ctx, requestor.ID)
	if err != nil {
		return notFoundOr(err, "identity not found")
	}
	if !identity.PasswordHash.Valid || !checkPassword(input.CurrentPassword, identity.PasswordHash.String) {
		return domainerrors.Unauthorized("current password is incorrect")
	}
	if err := crypto.ValidatePasswordStrength(input.NewPassword); err != nil {
		return domainerrors.BadRequest(err.Error())
	}

	hash, err := hashPassword(input.NewPassword)
	if err != nil {
		return domainerrors.InternalError(err)
	}
	identity.PasswordHash = null.StringFrom(hash)
	if err := u.identityRepo.Update(ctx, identity); err != nil {
		return notFoundOr(err, "identity not found")
	}
	return nil
}

// DeleteUser removes one user and everything attached to it
func (u *AuthUsecase) DeleteUser(ctx context.Context, requestor entities.Requestor, id uuid.UUID) error {
	return u.users.Delete(ctx, requestor, []uuid.UUID{id})
}

func (u *AuthUsecase) activeUser(ctx context.Context, id uuid.UUID) (*entities.CompleteUser, error) {
	user, err := u.userRepo.GetCompleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, domainerrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, domainerrors.Forbidden("account is inactive")
	}
	return user, nil
}

func (u *AuthUsecase) issue(ctx context.Context, user *entities.CompleteUser, useSession bool) (*entities.AuthResponse, error) {
	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if !useSession {
		return &entities.AuthResponse{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			User:         user,
		}, nil
	}

	// Session clients never see the tokens; they present the session id instead
	sessionID := newSessionID()
	err = u.sessions.CreateSession(ctx, sessionID, &redis.SessionData{
		UserID:       user.ID.String(),
		Role:         string(user.Role),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, u.jwtService.RefreshExpiry())
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
}

func invalidCredentials() *domainerrors.AppError {
	return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "invalid email or password", domainerrors.ErrInvalidCredentials)
}
