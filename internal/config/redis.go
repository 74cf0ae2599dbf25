package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis initializes the optional Redis client used for session
// revocation. A missing REDIS_ADDR or a failed ping leaves RDB nil and the
// application runs without server-side logout.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR no establecida, la revocación de sesiones queda deshabilitada")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("no se pudo conectar a Redis", "error", err)
		RDB = nil
		return
	}

	slog.Info("conexión a Redis establecida")
}
