package main

import (
	"github.com/gin-gonic/gin"
	"timecard.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	inviteHandler       *handlers.InviteHandler
	userHandler         *handlers.UserHandler
	assignmentHandler   *handlers.AssignmentHandler
	timecardHandler     *handlers.TimecardHandler
	userSettingsHandler *handlers.UserSettingsHandler
	geopointHandler     *handlers.GeopointHandler
	authMiddleware      gin.HandlerFunc
	idempotency         gin.HandlerFunc
	authLimiter         gin.HandlerFunc
	clockLimiter        gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, rate limited)
		auth := v1.Group("/auth")
		auth.Use(d.authLimiter)
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/signup", d.idempotency, d.inviteHandler.SignUp)
			auth.POST("/magic-link", d.authHandler.MagicLink)
			auth.POST("/magic-link/login", d.authHandler.MagicLinkLogin)
			auth.POST("/confirm-email", d.authHandler.ConfirmEmail)
		}

		// Auth routes (protected)
		authed := v1.Group("/auth")
		authed.Use(d.authMiddleware)
		{
			authed.GET("/me", d.authHandler.Me)
			authed.GET("/verify-admin", d.authHandler.VerifyAdmin)
			authed.POST("/logout", d.authHandler.Logout)
			authed.POST("/change-password", d.authHandler.ChangePassword)
			authed.POST("/invite", d.idempotency, d.inviteHandler.Invite)
			authed.DELETE("/invites", d.inviteHandler.Delete)
			authed.DELETE("/users/:id", d.authHandler.DeleteUser)
		}

		// Invite token check for the signup page (public)
		v1.GET("/invites/verify", d.inviteHandler.Verify)

		invites := v1.Group("/invites")
		invites.Use(d.authMiddleware)
		{
			invites.GET("", d.inviteHandler.List)
		}

		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("", d.userHandler.List)
			users.GET("/all", d.userHandler.GetAll)
			users.GET("/by-ids", d.userHandler.GetByIDs)
			users.POST("", d.userHandler.Create)
			users.PUT("/client", d.userHandler.UpdateClient)
			users.PUT("/self", d.userHandler.UpdateSelf)
			users.PATCH("/:id/active", d.userHandler.SetActive)
			users.DELETE("", d.userHandler.Delete)
		}

		assignments := v1.Group("/assignments")
		assignments.Use(d.authMiddleware)
		{
			assignments.GET("/assigned/:userId", d.assignmentHandler.GetAssigned)
			assignments.GET("/available/:userId", d.assignmentHandler.GetAvailable)
			assignments.GET("/user/:userId", d.assignmentHandler.GetByUserID)
			assignments.PUT("", d.assignmentHandler.Update)
		}

		timecards := v1.Group("/timecards")
		timecards.Use(d.authMiddleware)
		{
			timecards.POST("/clock-in", d.clockLimiter, d.idempotency, d.timecardHandler.ClockIn)
			timecards.POST("/:id/verify", d.clockLimiter, d.timecardHandler.VerifyClockIn)
			timecards.POST("/:id/clock-out", d.clockLimiter, d.timecardHandler.ClockOut)
			timecards.PUT("/:id", d.timecardHandler.Update)
			timecards.DELETE("/:id", d.timecardHandler.Delete)
			timecards.GET("", d.timecardHandler.List)
			timecards.GET("/pending", d.timecardHandler.Pending)
			timecards.GET("/active", d.timecardHandler.Active)
		}

		settings := v1.Group("/user-settings")
		settings.Use(d.authMiddleware)
		{
			settings.GET("", d.userSettingsHandler.Get)
			settings.PUT("", d.userSettingsHandler.Update)
		}

		geopoints := v1.Group("/geopoints")
		geopoints.Use(d.authMiddleware)
		{
			geopoints.GET("", d.geopointHandler.Get)
		}
	}
}
