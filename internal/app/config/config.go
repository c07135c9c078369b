package config

import (
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", true),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeout: utils.GetEnvSeconds("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeout:  utils.GetEnvSeconds("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		FHIR: AppFHIR{
			BaseUrl:             utils.GetEnvString("FHIR_BASE_URL", "http://localhost:8081/fhir"),
			AuthMode:            utils.GetEnvString("FHIR_AUTH_MODE", constvars.FhirAuthModeNone),
			StaticToken:         utils.GetEnvString("FHIR_STATIC_TOKEN", ""),
			Scope:               utils.GetEnvString("FHIR_SCOPE", constvars.GoogleHealthcareScope),
			RequestsPerSecond:   utils.GetEnvFloat("FHIR_REQUESTS_PER_SECOND", 20),
			Burst:               utils.GetEnvInt("FHIR_BURST", 10),
			RequestTimeout:      utils.GetEnvSeconds("FHIR_REQUEST_TIMEOUT_IN_SECONDS", 30),
			WriteTimeout:        utils.GetEnvSeconds("FHIR_WRITE_TIMEOUT_IN_SECONDS", 15),
			MaxConcurrentWrites: utils.GetEnvInt("FHIR_MAX_CONCURRENT_WRITES", 8),
		},
		JWT: AppJWT{
			Enabled:    utils.GetEnvBool("AUTH_ENABLED", true),
			Secret:     utils.GetEnvString("JWT_SECRET", ""),
			SecretName: utils.GetEnvString("JWT_SECRET_NAME", ""),
			Audience:   utils.GetEnvString("JWT_AUDIENCE", ""),
			Issuer:     utils.GetEnvString("JWT_ISSUER", ""),
		},
		Cache: AppCache{
			BundleTTL: utils.GetEnvSeconds("CACHE_BUNDLE_TTL_IN_SECONDS", 300),
			LockTTL:   utils.GetEnvSeconds("CACHE_LOCK_TTL_IN_SECONDS", 60),
		},
		AWS: AppAWS{
			Region: utils.GetEnvString("AWS_REGION", "ap-southeast-1"),
		},
	}
}
