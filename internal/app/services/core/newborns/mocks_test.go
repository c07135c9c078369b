package newborns

import (
	"context"
	"time"

	"neohearts-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/mock"
)

type MockBundleFhirClient struct {
	mock.Mock
}

func (m *MockBundleFhirClient) PostTransactionBundle(ctx context.Context, bundle *fhir_dto.Bundle) (*fhir_dto.Bundle, error) {
	args := m.Called(ctx, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Bundle), args.Error(1)
}

type MockPatientFhirClient struct {
	mock.Mock
}

func (m *MockPatientFhirClient) FindPatientBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Bundle), args.Error(1)
}

func (m *MockPatientFhirClient) FindActivePatients(ctx context.Context) ([]fhir_dto.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fhir_dto.Patient), args.Error(1)
}

func (m *MockPatientFhirClient) FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Patient), args.Error(1)
}

func (m *MockPatientFhirClient) UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fhir_dto.Patient), args.Error(1)
}

type MockResourceWriter struct {
	mock.Mock
}

func (m *MockResourceWriter) PutResource(ctx context.Context, resource *fhir_dto.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

type MockBundleCache struct {
	mock.Mock
}

func (m *MockBundleCache) GetBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, bool, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*fhir_dto.Bundle), args.Bool(1), args.Error(2)
}

func (m *MockBundleCache) SetBundle(ctx context.Context, patientID string, bundle *fhir_dto.Bundle) error {
	args := m.Called(ctx, patientID, bundle)
	return args.Error(0)
}

func (m *MockBundleCache) DeleteBundle(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}
