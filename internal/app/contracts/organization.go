package contracts

import (
	"context"
	"neohearts-service/internal/pkg/dto/requests"
	"neohearts-service/internal/pkg/dto/responses"
	"neohearts-service/internal/pkg/fhir_dto"
)

type OrganizationUsecase interface {
	CreateOrganization(ctx context.Context, request *requests.CreateOrganization) (*responses.Organization, error)
	ListOrganizations(ctx context.Context) ([]responses.Organization, error)
	GetOrganization(ctx context.Context, organizationID string) (*responses.Organization, error)
	UpdateOrganizationName(ctx context.Context, organizationID string, request *requests.UpdateOrganization) (*responses.Organization, error)
	DeleteOrganization(ctx context.Context, organizationID string) error
}

type OrganizationFhirClient interface {
	CreateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error)
	FindAll(ctx context.Context) ([]fhir_dto.Organization, error)
	FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error)
	UpdateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error)
	DeleteOrganizationByID(ctx context.Context, organizationID string) error
}
