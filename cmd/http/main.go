package main

import (
	"context"
	"meetcue-service/internal/app/config"
	"meetcue-service/internal/app/delivery/http/middlewares"
	"meetcue-service/internal/app/delivery/http/routers"
	"meetcue-service/internal/app/drivers/database"
	"meetcue-service/internal/app/drivers/logger"
	"meetcue-service/internal/app/drivers/messaging"
	"meetcue-service/internal/app/drivers/storage"
	"meetcue-service/internal/app/services/core/groups"
	"meetcue-service/internal/app/services/core/selections"
	"meetcue-service/internal/app/services/shared/locker"
	"meetcue-service/internal/app/services/shared/recomputequeue"
	sharedredis "meetcue-service/internal/app/services/shared/redis"
	sharedstorage "meetcue-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

// queuePrefetchCount bounds how many unacked recompute messages one worker
// channel holds at a time.
const queuePrefetchCount = 50

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if err := bootstrapingTheApp(bootstrap, minioClient); err != nil {
		log.Fatalf("Failed to bootstrap the application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Failed to shutdown cleanly: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) error {
	// Shared services
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	minioStorage := sharedstorage.NewMinioStorage(minioClient)

	recomputeQueue, err := recomputequeue.NewService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.Queue.RecomputeQueue,
		queuePrefetchCount,
	)
	if err != nil {
		return err
	}

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, redisRepository, bootstrap.InternalConfig)

	// Selection
	selectionMongoRepository := selections.NewSelectionMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)

	// Group
	groupMongoRepository := groups.NewGroupMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)

	selectionUsecase := selections.NewSelectionUsecase(selectionMongoRepository, groupMongoRepository, recomputeQueue)
	selectionController := selections.NewSelectionController(bootstrap.Logger, selectionUsecase)

	groupUsecase := groups.NewGroupUsecase(
		groupMongoRepository,
		selectionMongoRepository,
		redisRepository,
		minioStorage,
		recomputeQueue,
		bootstrap.InternalConfig,
	)
	groupController := groups.NewGroupController(bootstrap.Logger, groupUsecase)

	// Background compaction worker
	worker := groups.NewWorker(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockService,
		recomputeQueue,
		groupMongoRepository,
		groupUsecase,
	)
	worker.Start(context.Background())
	bootstrap.WorkerStop = worker.Stop

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, selectionController, groupController)
	return nil
}
