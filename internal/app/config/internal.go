package config

import "time"

type InternalConfig struct {
	App   App      `mapstructure:"app"`
	FHIR  AppFHIR  `mapstructure:"fhir"`
	JWT   AppJWT   `mapstructure:"jwt"`
	Cache AppCache `mapstructure:"cache"`
	AWS   AppAWS   `mapstructure:"aws"`
}

type App struct {
	Env             string        `mapstructure:"env"`
	Port            string        `mapstructure:"port"`
	Version         string        `mapstructure:"version"`
	EndpointPrefix  string        `mapstructure:"endpoint_prefix"`
	MaxRequests     int           `mapstructure:"max_requests"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout_in_seconds"`
}

// AppFHIR configures the remote FHIR store. AuthMode is one of google,
// static or none.
type AppFHIR struct {
	BaseUrl             string        `mapstructure:"base_url"`
	AuthMode            string        `mapstructure:"auth_mode"`
	StaticToken         string        `mapstructure:"static_token"`
	Scope               string        `mapstructure:"scope"`
	RequestsPerSecond   float64       `mapstructure:"requests_per_second"`
	Burst               int           `mapstructure:"burst"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout_in_seconds"`
	WriteTimeout        time.Duration `mapstructure:"write_timeout_in_seconds"`
	MaxConcurrentWrites int           `mapstructure:"max_concurrent_writes"`
}

type AppJWT struct {
	Enabled    bool   `mapstructure:"enabled"`
	Secret     string `mapstructure:"secret"`
	SecretName string `mapstructure:"secret_name"`
	Audience   string `mapstructure:"audience"`
	Issuer     string `mapstructure:"issuer"`
}

type AppCache struct {
	BundleTTL time.Duration `mapstructure:"bundle_ttl_in_seconds"`
	LockTTL   time.Duration `mapstructure:"lock_ttl_in_seconds"`
}

type AppAWS struct {
	Region string `mapstructure:"region"`
}
