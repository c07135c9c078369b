package main

import (
	"context"
	"log"
	"neohearts-service/internal/app/config"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/app/delivery/http/controllers"
	"neohearts-service/internal/app/delivery/http/middlewares"
	"neohearts-service/internal/app/delivery/http/routers"
	"neohearts-service/internal/app/drivers/database"
	"neohearts-service/internal/app/drivers/fhirstore"
	"neohearts-service/internal/app/drivers/logger"
	"neohearts-service/internal/app/drivers/secrets"
	"neohearts-service/internal/app/services/core/newborns"
	"neohearts-service/internal/app/services/core/organizations"
	"neohearts-service/internal/app/services/fhir_spark/bundle"
	"neohearts-service/internal/app/services/fhir_spark/observations"
	fhirOrganizations "neohearts-service/internal/app/services/fhir_spark/organizations"
	"neohearts-service/internal/app/services/fhir_spark/patients"
	"neohearts-service/internal/app/services/fhir_spark/resources"
	"neohearts-service/internal/app/services/shared/locker"
	redisService "neohearts-service/internal/app/services/shared/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	ctx := context.Background()

	if internalConfig.JWT.SecretName != "" {
		secretManager, err := secrets.NewAWSSecretsManager(ctx, internalConfig)
		if err != nil {
			zapLogger.Fatal("Error initializing AWS Secrets Manager", zap.Error(err))
		}
		secret, err := secretManager.GetSecret(ctx, internalConfig.JWT.SecretName)
		if err != nil {
			zapLogger.Fatal("Error fetching JWT secret", zap.String("secret_name", internalConfig.JWT.SecretName), zap.Error(err))
		}
		internalConfig.JWT.Secret = secret
	}
	if internalConfig.JWT.Enabled && internalConfig.JWT.Secret == "" {
		zapLogger.Fatal("AUTH_ENABLED is set but no JWT secret is configured")
	}

	bootstrap := config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if driverConfig.Redis.Enabled {
		redisClient, err := database.NewRedisClient(ctx, driverConfig)
		if err != nil {
			zapLogger.Fatal("Error connecting to Redis", zap.Error(err))
		}
		bootstrap.Redis = redisClient
		zapLogger.Info("Successfully connected to Redis")
	}

	if err := bootstrapingTheApp(ctx, bootstrap); err != nil {
		zapLogger.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		internalConfig.App.ShutdownTimeout,
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error closing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	log := bootstrap.Logger

	// FHIR store
	httpClient, err := fhirstore.NewHTTPClient(ctx, cfg.FHIR, log)
	if err != nil {
		return err
	}
	bundleFhirClient := bundle.NewBundleFhirClient(cfg.FHIR.BaseUrl, httpClient, log)
	patientFhirClient := patients.NewPatientFhirClient(cfg.FHIR.BaseUrl, httpClient, log)
	observationFhirClient := observations.NewObservationFhirClient(cfg.FHIR.BaseUrl, httpClient, log)
	organizationFhirClient := fhirOrganizations.NewOrganizationFhirClient(cfg.FHIR.BaseUrl, httpClient, log)
	resourceWriter := resources.NewResourceWriter(patientFhirClient, observationFhirClient, organizationFhirClient)

	// Cache and locks
	var bundleCache contracts.BundleCache
	var lockerService contracts.LockerService
	if bootstrap.Redis != nil {
		redisRepository := redisService.NewRedisRepository(bootstrap.Redis)
		bundleCache = redisService.NewBundleCache(redisRepository, cfg.Cache.BundleTTL, log)
		lockerService = locker.NewLockService(redisRepository, log)
	} else {
		log.Warn("Redis disabled, bundle cache is off and record locks are not enforced")
		bundleCache = redisService.NewNoopBundleCache()
		lockerService = locker.NewLocalLockService()
	}

	// Usecases
	newbornUsecase := newborns.NewNewbornUsecase(
		bundleFhirClient,
		patientFhirClient,
		resourceWriter,
		bundleCache,
		lockerService,
		cfg,
		log,
	)
	organizationUsecase := organizations.NewOrganizationUsecase(organizationFhirClient, log)

	// Controllers
	requestTimeout := cfg.App.RequestTimeout
	newbornController := controllers.NewNewbornController(log, newbornUsecase, requestTimeout)
	organizationController := controllers.NewOrganizationController(log, organizationUsecase, requestTimeout)
	healthController := controllers.NewHealthController(cfg)

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewares.NewMiddlewares(log, cfg),
		newbornController,
		organizationController,
		healthController,
	)
	return nil
}
