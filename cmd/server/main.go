package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"kodask_bank/internal/config"
	"kodask_bank/internal/handler"
	"kodask_bank/internal/llm"
	"kodask_bank/internal/middleware"
	"kodask_bank/internal/repository"
	"kodask_bank/internal/service"
	"kodask_bank/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const tokenTTL = time.Hour

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET_KEY not set in environment")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "3000" // Default port
	}

	publicDir := os.Getenv("PUBLIC_DIR")
	if publicDir == "" {
		publicDir = "public"
	}

	hfToken := os.Getenv("HF_TOKEN")
	if hfToken == "" {
		log.Println("HF_TOKEN not set; chat requests will fail upstream authentication")
	}
	aiBaseURL := os.Getenv("AI_BASE_URL")
	aiModel := os.Getenv("AI_MODEL")

	cookieSecure := os.Getenv("COOKIE_SECURE") == "true"
	revocationCheck := os.Getenv("TOKEN_REVOCATION_CHECK") == "true"

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, tokenTTL)
	llmClient := llm.NewClient(aiBaseURL, hfToken, aiModel)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	tokenRepo := repository.NewTokenRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, tokenRepo, jwtUtil, revocationCheck)
	balanceService := service.NewBalanceService(userRepo)
	chatService := service.NewChatService(llmClient)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, int(tokenTTL.Seconds()), cookieSecure)
	accountHandler := handler.NewAccountHandler(balanceService)
	chatHandler := handler.NewChatHandler(chatService)

	// --- Setup Gin Router ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	// For production, configure specific origins, methods, headers
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	cookieAuthMW := middleware.CookieAuthMiddleware(authService)
	staffMW := middleware.StaffMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup)
	accountHandler.RegisterAccountRoutes(apiGroup, cookieAuthMW, staffMW)
	chatHandler.RegisterChatRoutes(apiGroup)

	apiGroup.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is reachable"})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		// Check DB connection
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Static Front-End ---
	router.Static("/assets", filepath.Join(publicDir, "assets"))
	router.GET("/", func(c *gin.Context) { c.File(filepath.Join(publicDir, "index.html")) })
	router.GET("/login", func(c *gin.Context) { c.File(filepath.Join(publicDir, "login.html")) })
	router.GET("/dashboard", func(c *gin.Context) { c.File(filepath.Join(publicDir, "dashboard.html")) })

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
