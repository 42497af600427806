package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr.Code == domainerrors.CodeInternalError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

// Abort writes the error and stops the handler chain. Used by middleware.
func Abort(c *gin.Context, err *domainerrors.AppError) {
	c.AbortWithStatusJSON(err.Status, gin.H{
		"code":    err.Code,
		"message": err.Message,
	})
}
