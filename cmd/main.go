package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "library-backend/docs"
	"library-backend/internal/config"
	"library-backend/internal/database"
	"library-backend/internal/handlers"
	"library-backend/internal/middleware"
	"library-backend/internal/repository"
	"library-backend/internal/routes"
	"library-backend/internal/services"
	"library-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Local Library API
// @version 1.0
// @description Library catalogue with authors, books, copies on loan, reviews and reader accounts

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	// Load environment variables
	loadEnvFile()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	log := setupLogger()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	minioService, err := services.NewMinIOService(&cfg.MinIO, log)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	bookRepo := repository.NewBookRepository(db)
	instanceRepo := repository.NewBookInstanceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokenService := services.NewTokenService(cfg.Auth)
	catalogService := services.NewCatalogService(authorRepo, bookRepo, genreRepo, instanceRepo, reviewRepo, cfg.Library, log)
	loanService := services.NewLoanService(instanceRepo, bookRepo, userRepo, cfg.Library, log)
	accountService := services.NewAccountService(userRepo, tokenService, minioService, cfg.Library, log)

	sessionStorage := setupSessionStorage(cfg.Redis, log)
	sessions := middleware.NewSessionStore(cfg.Redis, sessionStorage)

	app := fiber.New(fiber.Config{
		AppName:               "Local Library API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.Server.BodyLimit,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db, sessionStorage))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Setup API routes
	routes.Setup(app, routes.Handlers{
		Catalog: handlers.NewCatalogHandler(catalogService, sessions, log),
		Loan:    handlers.NewLoanHandler(loanService, log),
		Account: handlers.NewAccountHandler(accountService, log),
		Upload:  handlers.NewUploadHandler(minioService, cfg.Library.CoverPrefix, cfg.Library.PresignedExpiry, log),
	}, accountService, log)

	// Graceful shutdown
	go gracefulShutdown(app, sessionStorage, log)

	log.Infof("Local Library API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// setupSessionStorage connects to redis when REDIS_ADDR is set. A nil
// result keeps sessions in memory.
func setupSessionStorage(cfg config.RedisConfig, log *logrus.Logger) *middleware.RedisStorage {
	if cfg.Addr == "" {
		log.Info("REDIS_ADDR not set, sessions are kept in memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis unavailable, sessions are kept in memory")
		_ = client.Close()
		return nil
	}

	log.WithField("addr", cfg.Addr).Info("Redis session storage connected")
	return middleware.NewRedisStorage(client)
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(db *database.Database, sessionStorage *middleware.RedisStorage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		sessionStatus := "memory"
		if sessionStorage != nil {
			sessionStatus = "healthy"
			if err := sessionStorage.Ping(c.UserContext()); err != nil {
				sessionStatus = "unhealthy"
			}
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "library-backend",
			"version":   "1.0.0",
			"database":  dbStatus,
			"sessions":  sessionStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
		return utils.ErrorResponse(c, code, message)
	}
}

func gracefulShutdown(app *fiber.App, sessionStorage *middleware.RedisStorage, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	if sessionStorage != nil {
		if err := sessionStorage.Close(); err != nil {
			log.Errorf("Error closing redis connection: %v", err)
		}
	}

	log.Info("Server shutdown complete")
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("Could not load environment file %s: %v", envFile, err)

		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err != nil {
			log.Warnf("Could not load default environment file: %v", err)
		} else {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
