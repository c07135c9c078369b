package middlewares

import (
	"context"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// statusRecorder remembers the status and size of a response. A handler
// that writes without calling WriteHeader answers 200.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.statusCode == 0 {
		rec.statusCode = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.statusCode == 0 {
		rec.statusCode = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

func (rec *statusRecorder) status() int {
	if rec.statusCode == 0 {
		return http.StatusOK
	}
	return rec.statusCode
}

// Logging writes one line per request once it is served. Routing has run by
// then, so the chi route pattern and the {id} of a newborn or organization
// route are known. 5xx logs at error level and 4xx at warn.
func (m *Middlewares) Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := utils.GetRequestID(r.Context())

			logger.Debug("API request received",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Any("is_client_request_id", r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY)),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
				zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
			)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status()
			fields := []zap.Field{
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Int(constvars.LoggingStatusCodeKey, status),
				zap.Int(constvars.LoggingResponseBytesKey, rec.bytes),
				zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			}
			fields = append(fields, routeFields(r)...)

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("API request failed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("API request rejected", fields...)
			default:
				logger.Info("API request completed", fields...)
			}
		})
	}
}

func routeFields(r *http.Request) []zap.Field {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	pattern := rctx.RoutePattern()
	if pattern == "" {
		return nil
	}

	fields := []zap.Field{zap.String(constvars.LoggingRoutePatternKey, pattern)}
	id := rctx.URLParam("id")
	if id == "" {
		return fields
	}
	switch {
	case strings.Contains(pattern, "/newborns/"):
		fields = append(fields, zap.String(constvars.LoggingPatientIDKey, id))
	case strings.Contains(pattern, "/organizations/"):
		fields = append(fields, zap.String(constvars.LoggingOrganizationIDKey, id))
	}
	return fields
}

func (m *Middlewares) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderXRequestID)
		isClientRequestID := true

		if requestID == "" {
			requestID = utils.GenerateRequestID()
			isClientRequestID = false
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY, isClientRequestID)

		w.Header().Set(constvars.HeaderXRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
