package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/cmd"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/container"
	logger "github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/core/logger"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/database"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/middleware"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/routes"
)

const requestTimeout = 30 * time.Second

func main() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	if len(os.Args) > 1 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		cmd.Execute(ctx)
		return
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		appLogger.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		appLogger.Fatal("unable to connect to the database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(dbURL, "./migrations", appLogger); err != nil {
		appLogger.Fatal("unable to run database migrations", zap.Error(err))
	}

	appContainer, err := container.NewAppContainer(db, appLogger)
	if err != nil {
		appLogger.Fatal("unable to build application container", zap.Error(err))
	}

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.TimeoutMiddleware(requestTimeout))

	routes.RegisterRoutes(router, appContainer)
	routes.RegisterUtilityRoutes(router)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	appLogger.Info("starting server", zap.String("host", host))
	if err := router.Run(host); err != nil {
		appLogger.Fatal("server stopped", zap.Error(err))
	}
}
