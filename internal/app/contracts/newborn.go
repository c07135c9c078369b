package contracts

import (
	"context"
	"neohearts-service/internal/pkg/dto/responses"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/screening"
)

type CreateNewbornOutput struct {
	PatientID string
	Bundle    *fhir_dto.Bundle
}

type NewbornUsecase interface {
	CreateNewborn(ctx context.Context, record *screening.Record) (*CreateNewbornOutput, error)
	GetNewborn(ctx context.Context, patientID string) (*screening.Record, error)
	UpdateNewborn(ctx context.Context, patientID string, record *screening.Record) error
	DeleteNewborn(ctx context.Context, patientID string) error
	ListNewborns(ctx context.Context) ([]responses.NewbornSummary, error)
	BuildBundle(ctx context.Context, record *screening.Record) (*fhir_dto.Bundle, error)
}
