package main

import (
	"github.com/gin-gonic/gin"

	"complianceconnect.backend/internal/domain/entities"
	"complianceconnect.backend/internal/interfaces/http/handlers"
	"complianceconnect.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	professionalHandler *handlers.ProfessionalHandler
	serviceHandler      *handlers.ServiceHandler
	bookingHandler      *handlers.BookingHandler
	messageHandler      *handlers.MessageHandler
	requirementHandler  *handlers.RequirementHandler
	authMiddleware      gin.HandlerFunc
	authRateLimit       gin.HandlerFunc
	idempotency         gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	require := middleware.Require
	api := r.Group("/api")
	{
		// Auth routes (public, throttled)
		auth := api.Group("/auth")
		auth.Use(d.authRateLimit)
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
		}

		users := api.Group("/users")
		users.Use(d.authMiddleware, require(entities.PermProfileRead))
		{
			users.GET("/me", d.userHandler.GetMe)
			users.PATCH("/me", d.userHandler.UpdateMe)
		}

		professionals := api.Group("/professionals")
		{
			professionals.GET("", d.professionalHandler.List)
			professionals.GET("/:id", d.professionalHandler.Get)
			professionals.POST("", d.authMiddleware, require(entities.PermProfessionalCreate), d.professionalHandler.Create)
			professionals.PUT("/:id/kyc", d.authMiddleware, require(entities.PermProfessionalKYC), d.professionalHandler.UpdateKYC)
		}

		services := api.Group("/services")
		{
			services.GET("", d.serviceHandler.List)
			services.GET("/:id/quote", d.serviceHandler.Quote)
			services.POST("", d.authMiddleware, require(entities.PermServiceCreate), d.serviceHandler.Create)
		}

		bookings := api.Group("/bookings")
		bookings.Use(d.authMiddleware)
		{
			bookings.POST("", require(entities.PermBookingCreate), d.idempotency, d.bookingHandler.Create)
			bookings.GET("/:id", require(entities.PermBookingRead), d.bookingHandler.Get)
			bookings.GET("/business/:businessId", require(entities.PermBookingRead), d.bookingHandler.ListByBusiness)
			bookings.GET("/professional/:professionalId", require(entities.PermBookingRead), d.bookingHandler.ListByProfessional)
			bookings.PUT("/:id", require(entities.PermBookingUpdate), d.bookingHandler.Update)
		}

		messages := api.Group("/messages")
		messages.Use(d.authMiddleware)
		{
			messages.POST("", require(entities.PermMessageSend), d.messageHandler.Send)
			messages.GET("/booking/:bookingId", require(entities.PermMessageRead), d.messageHandler.ListByBooking)
		}

		requirements := api.Group("/requirements")
		{
			requirements.GET("", d.requirementHandler.List)
			requirements.POST("", d.authMiddleware, require(entities.PermRequirementCreate), d.requirementHandler.Create)
			requirements.GET("/business/:businessId", d.authMiddleware, require(entities.PermRequirementRead), d.requirementHandler.ListByBusiness)
		}
	}
}
