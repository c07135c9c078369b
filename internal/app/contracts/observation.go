package contracts

import (
	"context"
	"neohearts-service/internal/pkg/fhir_dto"
)

type ObservationFhirClient interface {
	UpdateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error)
}
