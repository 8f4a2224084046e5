package app

import (
	"os"
	"strings"

	"leave-desk/internal/leaverequest"
	"leave-desk/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, provisions the schema and registers
// all routes. The returned cleanup closes every connection it opened and is
// meant to run on shutdown.
func BuildApp(router *gin.Engine) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return nil, err
	}

	// The table is provisioned on startup if absent, CHECK constraints
	// included.
	if err := gormDB.AutoMigrate(&leaverequest.LeaveRequest{}); err != nil {
		return nil, err
	}

	db, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	// Redis and Kafka are optional: without them the service runs with the
	// idempotency guard disabled and lifecycle events discarded.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return nil, err
		}
	}

	var writer *kafkago.Writer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		writer = &kafkago.Writer{
			Addr:     kafkago.TCP(strings.Split(brokers, ",")...),
			Balancer: &kafkago.LeastBytes{},
		}
		zap.L().Info("kafka lifecycle publisher enabled", zap.String("brokers", brokers))
	}

	registerModules(router, db, gormDB, rdb, writer)

	cleanup := func() {
		if writer != nil {
			if err := writer.Close(); err != nil {
				zap.L().Warn("close kafka writer failed", zap.Error(err))
			}
		}
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				zap.L().Warn("close redis failed", zap.Error(err))
			}
		}
		if err := db.Close(); err != nil {
			zap.L().Warn("close database failed", zap.Error(err))
		}
	}
	return cleanup, nil
}
