package contracts

import (
	"context"
	"neohearts-service/internal/pkg/fhir_dto"
)

// ResourceWriter overwrites one stored resource by its type and id.
type ResourceWriter interface {
	PutResource(ctx context.Context, resource *fhir_dto.Resource) error
}
