package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"gqcars/internal/handler"
	"gqcars/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	BookingHandler    *handler.BookingHandler
	AssessmentHandler *handler.AssessmentHandler
	EmergencyHandler  *handler.EmergencyHandler
	PaymentHandler    *handler.PaymentHandler
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Security assessment routes.
		assessment := v1.Group("/assessment")
		{
			assessment.GET("/questions", deps.AssessmentHandler.GetQuestions)
			assessment.GET("/status", deps.AssessmentHandler.GetStatus)
			assessment.GET("", deps.AssessmentHandler.GetCurrent)
			assessment.POST("", deps.AssessmentHandler.Submit)
			assessment.DELETE("", deps.AssessmentHandler.Reset)
		}

		// Fare quote route.
		v1.POST("/quotes", deps.BookingHandler.Quote)

		// Booking routes. "current" must be registered before ":id".
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", deps.BookingHandler.GetHistory)
			bookings.GET("/current", deps.BookingHandler.GetCurrent)
			bookings.DELETE("/current", deps.BookingHandler.ClearCurrent)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
			bookings.POST("/:id/status", deps.BookingHandler.UpdateStatus)
			bookings.POST("/:id/driver", deps.BookingHandler.AssignDriver)
			bookings.POST("/:id/cancel", deps.BookingHandler.CancelBooking)
		}

		// Emergency routes.
		emergency := v1.Group("/emergency")
		{
			emergency.GET("/contacts", deps.EmergencyHandler.ListContacts)
			emergency.POST("/contacts", deps.EmergencyHandler.AddContact)
			emergency.DELETE("/contacts/:id", deps.EmergencyHandler.RemoveContact)
			emergency.GET("/templates", deps.EmergencyHandler.GetTemplates)
			emergency.POST("/activate", deps.EmergencyHandler.Activate)
			emergency.POST("/deactivate", deps.EmergencyHandler.Deactivate)
			emergency.GET("/status", deps.EmergencyHandler.GetStatus)
			emergency.GET("/last", deps.EmergencyHandler.GetLastActivation)
		}

		// Payment routes.
		paymentMethods := v1.Group("/payment-methods")
		{
			paymentMethods.GET("", deps.PaymentHandler.ListMethods)
			paymentMethods.POST("", deps.PaymentHandler.AddMethod)
			paymentMethods.DELETE("/:id", deps.PaymentHandler.RemoveMethod)
			paymentMethods.POST("/:id/default", deps.PaymentHandler.SetDefault)
		}
		v1.POST("/payments/authorize", deps.PaymentHandler.Authorize)
	}

	return router
}
