package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/buzzbingo/bingo-backend/config"
	"github.com/buzzbingo/bingo-backend/routes"
	"github.com/buzzbingo/bingo-backend/services"
	"github.com/buzzbingo/bingo-backend/store"
	"github.com/buzzbingo/bingo-backend/utils/logger"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg config.Config, hub *services.Hub, coord *services.Coordinator) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, cfg.StaticDir)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket endpoint; every game event flows through here.
	r.GET("/ws", services.WSHandler(hub, coord))

	return r
}

func main() {
	cfg := config.Load()

	ctx := context.Background()
	st, err := store.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}
	if cfg.FlushOnStart {
		if err := st.FlushAll(ctx); err != nil {
			logger.Fatalf("store flush: %v", err)
		}
		logger.Infof("store flushed (prefix %s)", store.Prefix)
	}

	hub := services.NewHub()
	if cfg.NATSURL != "" {
		broker, err := services.NewBroker(cfg.NATSURL)
		if err != nil {
			logger.Fatalf("broker: %v", err)
		}
		defer broker.Close()
		hub.SetBroker(broker)
		logger.Infof("room broadcasts mirrored via NATS at %s", cfg.NATSURL)
	}
	go hub.Run()

	coord := services.NewCoordinator(st)
	router := setupRouter(cfg, hub, coord)

	logger.Infof("bingo backend listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
