package contracts

import (
	"context"
	"neohearts-service/internal/pkg/fhir_dto"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}

// BundleCache keeps the last fetched bundle of a patient.
type BundleCache interface {
	GetBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, bool, error)
	SetBundle(ctx context.Context, patientID string, bundle *fhir_dto.Bundle) error
	DeleteBundle(ctx context.Context, patientID string) error
}
