package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/interfaces/http/response"
	"timecard.backend/pkg/jwt"
	"timecard.backend/pkg/logger"
	"timecard.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a server-side session id instead of a bearer token
	SessionHeader = "X-Session-ID"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// SessionIDKey is the context key for the session id, when one was used
	SessionIDKey = "sessionId"
)

// SessionReader resolves a session id to its stored tokens
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware accepts either a bearer access token or a session id and
// puts the caller's identity on the gin context.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		if sessionID := c.GetHeader(SessionHeader); sessionID != "" && sessions != nil {
			session, err := sessions.GetSession(c.Request.Context(), sessionID)
			if err != nil {
				logger.Debug(c.Request.Context(), "Session lookup failed", zap.Error(err))
				response.Abort(c, domainerrors.Unauthorized("session not found or expired"))
				return
			}
			tokenString = session.AccessToken
			c.Set(SessionIDKey, sessionID)
		} else {
			authHeader := c.GetHeader(AuthorizationHeader)
			if authHeader == "" {
				response.Abort(c, domainerrors.Unauthorized("authorization header is required"))
				return
			}
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				response.Abort(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
				return
			}
			tokenString = strings.TrimPrefix(authHeader, BearerPrefix)
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Abort(c, domainerrors.Unauthorized("token has expired"))
				return
			}
			response.Abort(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// GetRequestor builds the explicit caller passed into usecases
func GetRequestor(c *gin.Context) (entities.Requestor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return entities.Requestor{}, false
	}
	role, _ := GetUserRole(c)
	return entities.Requestor{
		ID:    id,
		Email: c.GetString(UserEmailKey),
		Role:  entities.UserRole(role),
	}, true
}
