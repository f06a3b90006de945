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

	"github.com/jestephe2/rootedwellness-workout-app/internal/api"
	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository/mongo"
	"github.com/jestephe2/rootedwellness-workout-app/internal/service"
	"github.com/jestephe2/rootedwellness-workout-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Rooted Wellness Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureCursorIndexes(ctx, appDB.Collection("progress_cursors"))
		mongo.EnsureWorkoutLogIndexes(ctx, appDB.Collection("workout_logs"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("admin_sessions"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	// Snapshot archiving is optional; without a bucket the catalog still
	// works, only publish archiving and presigned exports are off.
	var snapshotStorage storage.SnapshotStorage
	if cfg.S3.BucketName != "" {
		log.Println("Initializing snapshot storage...")
		snapshotStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: No S3 bucket configured; snapshot archiving disabled.")
	}

	// --- Initialize Remote Gateway ---
	remote := gateway.New(cfg.Remote)

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	programRepo := mongo.NewMongoProgramRepository(appDB)
	cursorRepo := mongo.NewMongoCursorRepository(appDB)
	workoutLogRepo := mongo.NewMongoWorkoutLogRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	userRepo := mongo.NewMongoUserRepository(appDB)
	reflectionRepo := mongo.NewMongoReflectionRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()
	catalogService, err := service.NewCatalogService(startupCtx, programRepo, snapshotStorage, cfg.Program)
	if err != nil {
		log.Fatalf("FATAL: Failed to load the program catalog: %v", err)
	}
	progressService := service.NewProgressService(cursorRepo, reflectionRepo, catalogService, cfg.Program)
	ledgerService := service.NewLedgerService(workoutLogRepo, remote)
	sessionService := service.NewSessionService(sessionRepo, remote, cfg.JWT)
	userService := service.NewUserService(userRepo, remote, ledgerService, progressService)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, userService, progressService, ledgerService, catalogService, sessionService)

	// --- Start HTTP Server ---
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
