package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"progression-service/internal/db"
	"progression-service/internal/event"
	"progression-service/internal/handlers"
	"progression-service/internal/leaderboard"
	"progression-service/internal/repository"
	"progression-service/internal/service"
	"progression-service/internal/streak"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)
	defer db.Disconnect()

	// Redis leaderboard (optional)
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	} else {
		log.Println("Redis not configured, leaderboard disabled")
	}
	board := leaderboard.NewBoard(redisClient)

	// RabbitMQ event publisher (optional)
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.EventPublisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, progression events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("progression_service")

	progressRepo := repository.NewProgressRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	achievementRepo := repository.NewAchievementRepository(database)

	tracker := streak.NewTracker(nil)
	progressService := service.NewProgressService(progressRepo, tracker)
	badgeService := service.NewBadgeService(nil, achievementRepo, progressRepo)

	var events service.EventSink
	if publisher != nil {
		events = publisher
	}
	submissionService := service.NewSubmissionService(
		quizRepo,
		progressRepo,
		progressService,
		badgeService,
		board,
		events,
	)

	quizHandler := handlers.NewQuizHandler(submissionService)
	progressHandler := handlers.NewProgressHandler(progressService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)
	leaderboardHandler := handlers.NewLeaderboardHandler(board)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := db.Client.Ping(ctx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/public")
	{
		public.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		public.GET("/badges/catalog", badgeHandler.GetCatalog)
	}

	protected := r.Group("/protected")
	protected.Use(requireUser())
	{
		protected.POST("/quiz/:id/submit", quizHandler.SubmitQuiz)
		protected.GET("/quiz/:id/review", quizHandler.ReviewQuiz)
		protected.POST("/battle/result", quizHandler.RecordBattle)
		protected.GET("/progress", progressHandler.GetProgress)
		protected.GET("/streak", progressHandler.GetStreak)
		protected.POST("/streak/freeze", progressHandler.BuyFreeze)
		protected.GET("/badges", badgeHandler.GetBadges)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "6660"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// requireUser enforces the authenticated identity header set by the upstream
// gateway.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
