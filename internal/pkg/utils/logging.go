package utils

import (
	"context"
	"time"

	"neohearts-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// requestFields are the fields every usecase log line carries: the request
// id and, behind authentication, the token subject.
func requestFields(ctx context.Context) []zap.Field {
	fields := []zap.Field{zap.String(constvars.LoggingRequestIDKey, GetRequestID(ctx))}
	if subject := GetSubject(ctx); subject != "" {
		fields = append(fields, zap.String(constvars.LoggingSubjectKey, subject))
	}
	return fields
}

// LogOperation times fn and logs whether it failed.
func LogOperation(ctx context.Context, logger *zap.Logger, operation string, fn func() error, fields ...zap.Field) error {
	start := time.Now()
	err := fn()

	all := append(requestFields(ctx),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
		zap.Bool(constvars.LoggingSuccessKey, err == nil),
	)
	all = append(all, fields...)

	if err != nil {
		logger.Error("Operation failed", append(all, zap.Error(err))...)
		return err
	}
	logger.Info("Operation completed", all...)
	return nil
}

// LogRecordEvent records a change to stored screening data, such as a newborn
// created or an organization renamed.
func LogRecordEvent(ctx context.Context, logger *zap.Logger, event string, fields ...zap.Field) {
	all := append(requestFields(ctx), zap.String("record_event", event))
	logger.Info("Record changed", append(all, fields...)...)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

// GetSubject is the subject of the verified token, empty when authentication
// is off.
func GetSubject(ctx context.Context) string {
	subject, _ := ctx.Value(constvars.CONTEXT_JWT_SUBJECT_KEY).(string)
	return subject
}
