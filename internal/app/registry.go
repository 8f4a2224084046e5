package app

import (
	"database/sql"
	"time"

	"leave-desk/internal/leaverequest"
	"leave-desk/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	writer *kafkago.Writer,
) {
	// --- Repositories ---
	leaveRequestRepo := leaverequest.NewRepository(gormDB)

	// --- Services ---
	publisher := leaverequest.NewNoopEventPublisher()
	if writer != nil {
		publisher = leaverequest.NewKafkaEventPublisher(writer)
	}
	leaveRequestService := leaverequest.NewServiceWithPublisher(db, leaveRequestRepo, publisher)

	// --- Handlers ---
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)

	// --- Routes Registration ---
	// The frontend is served from a different origin; allow-all matches the
	// original deployment.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Idempotency-Key", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	api.Use(middleware.RequestID())
	api.Use(middleware.RateLimitByIP(50, 100))
	{
		var submitGuards []gin.HandlerFunc
		if rdb != nil {
			submitGuards = append(submitGuards, middleware.Idempotency(rdb))
		}
		leaverequest.RegisterRoutes(api, leaveRequestHandler, submitGuards...)
	}
}
