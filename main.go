package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/aihara87/LastletterGame/auth"
	"github.com/aihara87/LastletterGame/bot"
	"github.com/aihara87/LastletterGame/crypto"
	"github.com/aihara87/LastletterGame/dictionary"
	"github.com/aihara87/LastletterGame/game"
	"github.com/aihara87/LastletterGame/logger"
	"github.com/aihara87/LastletterGame/migrations"
	"github.com/aihara87/LastletterGame/storage"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
	}))

	return r
}

func main() {
	logger.Setup(os.Getenv("DEBUG") == "true")

	// ENVs
	ALLOWED_ORIGINS, exists := os.LookupEnv("ALLOWED_ORIGINS")
	if !exists {
		log.Fatal("Missing allowed origins")
	}
	allowedOrigins := strings.Split(ALLOWED_ORIGINS, ",")

	POSTGRES_URL, exists := os.LookupEnv("POSTGRES_URL")
	if !exists {
		log.Fatal("Missing postgres url")
	}

	JWT_KEY, exists := os.LookupEnv("JWT_KEY")
	if !exists {
		log.Fatal("Missing jwt signing key")
	}

	ADMIN_PASSWORD_HASH, exists := os.LookupEnv("ADMIN_PASSWORD_HASH")
	if !exists {
		log.Fatal("Missing admin password hash")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	if err := migrations.Migrate(POSTGRES_URL); err != nil {
		log.Fatal(err)
	}

	// Dependencies
	pgRepo, err := storage.NewPostgresRepo(context.Background(), POSTGRES_URL)
	if err != nil {
		log.Fatal(err)
	}

	tokenAge := time.Hour * 24 // admin sessions, not player sessions
	passwordHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
	tokenManager := crypto.NewJWTManager(JWT_KEY, tokenAge)

	authService := auth.NewService(ADMIN_PASSWORD_HASH, passwordHasher, tokenManager)
	authHandler := auth.NewAuthHandler(authService, tokenAge)

	gameService := game.NewService(pgRepo, pgRepo, game.NewIdGen(), game.SystemClock{}, game.SystemDice{})
	roomHandler := game.NewRoomHandler(gameService)

	dictService := dictionary.NewService(pgRepo, game.SystemClock{})
	dictHandler := dictionary.NewHandler(dictService)

	botHandler := bot.NewHandler(pgRepo)

	r := CreateServer(allowedOrigins)

	{
		authGroup := r.Group("/auth")
		authGroup.POST("/login", authHandler.LoginHandler)
		authGroup.POST("/logout", authHandler.LogoutHandler)
	}

	{
		rooms := r.Group("/api/rooms")
		rooms.Use(game.RateLimitMiddleware(rate.Limit(10), 20))

		rooms.GET("", roomHandler.ListRoomsHandler)
		rooms.POST("", roomHandler.CreateRoomHandler)
		rooms.GET("/:id", roomHandler.GetRoomHandler)
		rooms.POST("/:id/join", roomHandler.JoinRoomHandler)
		rooms.POST("/:id/leave", roomHandler.LeaveRoomHandler)
		rooms.POST("/:id/start", roomHandler.StartGameHandler)
		rooms.POST("/:id/play", roomHandler.PlayWordHandler)
		rooms.POST("/:id/heartbeat", roomHandler.HeartbeatHandler)
		rooms.POST("/:id/vote", roomHandler.VoteRetryHandler)
		rooms.POST("/:id/use-buff", roomHandler.UseBuffHandler)
		rooms.POST("/:id/use-debuff", roomHandler.UseDebuffHandler)
	}

	{
		dict := r.Group("/api/dictionary")
		dict.GET("", dictHandler.ListHandler)

		admin := dict.Group("")
		admin.Use(authHandler.RequireAdminMiddleware())
		admin.POST("", dictHandler.AddHandler)
		admin.PUT("/:id", dictHandler.UpdateHandler)
		admin.DELETE("/:id", dictHandler.DeleteHandler)
		admin.POST("/import", dictHandler.ImportHandler)
	}

	r.GET("/api/bot/word", botHandler.FindWordHandler)

	r.Run(":" + port)
}
