package resources

import (
	"context"
	"fmt"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
)

type resourceWriter struct {
	PatientFhirClient      contracts.PatientFhirClient
	ObservationFhirClient  contracts.ObservationFhirClient
	OrganizationFhirClient contracts.OrganizationFhirClient
}

// NewResourceWriter routes each overwrite to the client of its resource type.
func NewResourceWriter(
	patientFhirClient contracts.PatientFhirClient,
	observationFhirClient contracts.ObservationFhirClient,
	organizationFhirClient contracts.OrganizationFhirClient,
) contracts.ResourceWriter {
	return &resourceWriter{
		PatientFhirClient:      patientFhirClient,
		ObservationFhirClient:  observationFhirClient,
		OrganizationFhirClient: organizationFhirClient,
	}
}

func (w *resourceWriter) PutResource(ctx context.Context, resource *fhir_dto.Resource) error {
	switch {
	case resource == nil:
		return exceptions.ErrUpdateFHIRResource(fmt.Errorf("nothing to write"), "resource")
	case resource.Patient != nil:
		_, err := w.PatientFhirClient.UpdatePatient(ctx, resource.Patient)
		return err
	case resource.Observation != nil:
		_, err := w.ObservationFhirClient.UpdateObservation(ctx, resource.Observation)
		return err
	case resource.Organization != nil:
		_, err := w.OrganizationFhirClient.UpdateOrganization(ctx, resource.Organization)
		return err
	default:
		return exceptions.ErrUpdateFHIRResource(fmt.Errorf("unsupported resource type %q", resource.ResourceType()), resource.ResourceType())
	}
}
