package contracts

import (
	"context"
	"neohearts-service/internal/pkg/fhir_dto"
)

type BundleFhirClient interface {
	// PostTransactionBundle posts a transaction bundle to the store base url
	// and returns the transaction-response bundle.
	PostTransactionBundle(ctx context.Context, bundle *fhir_dto.Bundle) (*fhir_dto.Bundle, error)
}
