package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workout-scheduler/internal/api"
	"workout-scheduler/internal/config"
	"workout-scheduler/internal/repository"
	"workout-scheduler/internal/repository/memory"
	mongorepo "workout-scheduler/internal/repository/mongo"
	"workout-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// @title Workout Scheduler API
// @version 1.0
// @description API for scheduling workouts onto calendar days, one per day.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Workout Scheduler...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Storage ---
	// The catalog is static reference data and always lives in process.
	catalog := memory.NewWorkoutCatalog(memory.DefaultWorkouts())

	var scheduleRepo repository.ScheduleRepository
	var userRepo repository.UserRepository

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongorepo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		log.Println("Ensuring database indexes...")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongorepo.EnsureUserIndexes(ctx, appDB.Collection("users"))
			mongorepo.EnsureScheduleIndexes(ctx, appDB.Collection("workout_schedules"))
			log.Println("Index creation process completed.")
		}()

		scheduleRepo = mongorepo.NewMongoScheduleRepository(appDB)
		userRepo = mongorepo.NewMongoUserRepository(appDB)
	case config.DriverMemory:
		log.Println("Using transient in-memory storage.")
		scheduleRepo = memory.NewScheduleRepository()
		userRepo = memory.NewUserRepository()
	default:
		log.Fatalf("FATAL: Unknown storage driver %q", cfg.Storage.Driver)
	}

	// --- Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	scheduleService := service.NewScheduleService(catalog, scheduleRepo)

	// --- Gin Engine & Routes ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, scheduleService)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
