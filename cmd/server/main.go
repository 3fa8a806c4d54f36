package main

import (
	"context"
	"log"
	"os"

	"turkish_shop_backend/internal/config"
	"turkish_shop_backend/internal/database"
	"turkish_shop_backend/internal/handlers"
	"turkish_shop_backend/internal/mailer"
	"turkish_shop_backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseScylla()

	// Mail provider config is resolved once and injected, not read ambiently.
	mailCfg := mailer.ConfigFromEnv()
	if !mailCfg.Primary.Configured() && !mailCfg.Fallback.Configured() {
		log.Println("⚠️ No email provider configured — delivery emails will be logged as failed")
	}
	handlers.Init(mailer.New(mailCfg))

	warmupRedisCache()

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Turkish Shop backend listening on port", port)
	r.Run(":" + port)
}

// warmupRedisCache pings Redis so the first request does not pay the
// connection latency.
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
