package fhirstore

import (
	"context"
	"fmt"
	"net/http"

	"neohearts-service/internal/app/config"
	"neohearts-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

// NewHTTPClient returns the client shared by every FHIR store client. Requests
// are throttled first and then authorized according to cfg.AuthMode.
func NewHTTPClient(ctx context.Context, cfg config.AppFHIR, log *zap.Logger) (*http.Client, error) {
	var transport http.RoundTripper = http.DefaultTransport
	if cfg.RequestsPerSecond > 0 {
		transport = NewRateLimitedTransport(transport, cfg.RequestsPerSecond, cfg.Burst)
	}

	switch cfg.AuthMode {
	case constvars.FhirAuthModeGoogle:
		tokenSource, err := google.DefaultTokenSource(ctx, cfg.Scope)
		if err != nil {
			return nil, fmt.Errorf("loading google application default credentials: %w", err)
		}
		transport = &oauth2.Transport{Source: tokenSource, Base: transport}
	case constvars.FhirAuthModeStatic:
		if cfg.StaticToken == "" {
			return nil, fmt.Errorf("FHIR_AUTH_MODE=%s requires FHIR_STATIC_TOKEN", constvars.FhirAuthModeStatic)
		}
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.StaticToken, TokenType: "Bearer"})
		transport = &oauth2.Transport{Source: tokenSource, Base: transport}
	case constvars.FhirAuthModeNone, "":
	default:
		return nil, fmt.Errorf("unknown FHIR auth mode %q", cfg.AuthMode)
	}

	log.Info("FHIR store HTTP client ready",
		zap.String(constvars.LoggingFhirUrlKey, cfg.BaseUrl),
		zap.String("auth_mode", cfg.AuthMode),
		zap.Float64("requests_per_second", cfg.RequestsPerSecond),
	)

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.RequestTimeout,
	}, nil
}

type rateLimitedTransport struct {
	limiter *rate.Limiter
	next    http.RoundTripper
}

func NewRateLimitedTransport(next http.RoundTripper, requestsPerSecond float64, burst int) http.RoundTripper {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedTransport{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		next:    next,
	}
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}
