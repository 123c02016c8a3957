package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"comics-service/internal/config"
	"comics-service/internal/db"
	"comics-service/internal/handlers"
	"comics-service/internal/middleware"
	"comics-service/internal/observability"
	"comics-service/internal/rabbitmq"
	"comics-service/internal/repositories"
	"comics-service/internal/telemetry"
	"comics-service/internal/ws"
)

const serviceName = "comics-service"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(context.Background(), serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(ctx)
		}()
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AuditExchange)
	defer publisher.Close()
	audit := telemetry.NewAuditEmitter(publisher, cfg.AuditRoutingKey, serviceName, cfg.Environment)

	if wsPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AuditExchange); err == nil {
		observability.SetPublisher(wsPublisher)
		defer wsPublisher.Close()
	}

	userRepo := repositories.NewUserRepo(database)
	chatRepo := repositories.NewChatRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	comicRepo := repositories.NewComicRepo(database)
	interactionRepo := repositories.NewInteractionRepo(database)

	hub := ws.NewHub()
	jwtSecret := []byte(cfg.JWTSecret)

	authHandler := handlers.NewAuthHandler(userRepo, audit, jwtSecret, cfg.TokenTTL)
	chatHandler := handlers.NewChatHandler(chatRepo, userRepo, hub, audit)
	messageHandler := handlers.NewMessageHandler(messageRepo, hub, audit)
	comicHandler := handlers.NewComicHandler(comicRepo, audit)
	interactionHandler := handlers.NewInteractionHandler(interactionRepo, audit)

	chatFeed := ws.NewChatFeedHandler(hub)
	inboxFeed := ws.NewInboxFeedHandler(hub, jwtSecret)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Content-Type", "X-Auth-Token", "X-User-Id"},
		MaxAge:                    24 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}))
	router.Use(middleware.Identity(jwtSecret))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	router.POST("/auth", authHandler.Handle)

	router.GET("/chat", chatHandler.ListRecent)
	router.POST("/chat", chatHandler.Send)

	router.GET("/messages", messageHandler.Get)
	router.POST("/messages", messageHandler.Send)

	router.GET("/comics", comicHandler.Get)
	router.POST("/comics", comicHandler.Create)

	router.GET("/interactions", interactionHandler.Get)
	router.POST("/interactions", interactionHandler.Post)
	router.DELETE("/interactions", interactionHandler.Delete)

	router.GET("/ws/chat", chatFeed.Handle)
	router.GET("/ws/messages", inboxFeed.Handle)

	router.GET("/healthz", func(c *gin.Context) {
		if err := database.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
