package middlewares

import (
	"context"
	"errors"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Authenticate verifies an HS256 bearer token. The token subject is put in
// the request context. Audience and issuer are checked only when set.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := m.InternalConfig.JWT
		if !cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		requestID := utils.GetRequestID(r.Context())
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.HeaderBearerPrefix) {
			m.Log.Info("Middlewares.Authenticate token missing",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		rawToken := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.HeaderBearerPrefix))

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New(constvars.ErrDevAuthSigningMethod)
			}
			return []byte(cfg.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err == nil && !token.Valid {
			err = errors.New("token is not valid")
		}
		if err == nil && cfg.Audience != "" && !claims.VerifyAudience(cfg.Audience, true) {
			err = errors.New("token audience mismatch")
		}
		if err == nil && cfg.Issuer != "" && !claims.VerifyIssuer(cfg.Issuer, true) {
			err = errors.New("token issuer mismatch")
		}
		if err != nil {
			m.Log.Info("Middlewares.Authenticate token rejected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_JWT_SUBJECT_KEY, claims.Subject)
		m.Log.Debug("Middlewares.Authenticate succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSubjectKey, claims.Subject),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
