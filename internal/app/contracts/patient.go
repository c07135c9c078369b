package contracts

import (
	"context"
	"neohearts-service/internal/pkg/fhir_dto"
)

type PatientFhirClient interface {
	// FindPatientBundle returns the Patient and every Observation referencing
	// it as one searchset bundle.
	FindPatientBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, error)
	FindActivePatients(ctx context.Context) ([]fhir_dto.Patient, error)
	FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error)
	UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error)
}
