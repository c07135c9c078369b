package organizations

import (
	"context"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/dto/requests"
	"neohearts-service/internal/pkg/dto/responses"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

type organizationUsecase struct {
	OrganizationFhirClient contracts.OrganizationFhirClient
	Log                    *zap.Logger
}

func NewOrganizationUsecase(
	organizationFhirClient contracts.OrganizationFhirClient,
	logger *zap.Logger,
) contracts.OrganizationUsecase {
	return &organizationUsecase{
		OrganizationFhirClient: organizationFhirClient,
		Log:                    logger,
	}
}

func (uc *organizationUsecase) CreateOrganization(ctx context.Context, request *requests.CreateOrganization) (*responses.Organization, error) {
	requestID := utils.GetRequestID(ctx)

	organization, err := uc.OrganizationFhirClient.CreateOrganization(ctx, &fhir_dto.Organization{
		ResourceType: constvars.ResourceOrganization,
		Active:       true,
		Name:         strings.TrimSpace(request.Name),
	})
	if err != nil {
		uc.Log.Error("organizationUsecase.CreateOrganization error calling OrganizationFhirClient.CreateOrganization",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogRecordEvent(ctx, uc.Log, "organization_created",
		zap.String(constvars.LoggingOrganizationIDKey, organization.ID),
	)
	return toResponse(organization), nil
}

func (uc *organizationUsecase) ListOrganizations(ctx context.Context) ([]responses.Organization, error) {
	organizations, err := uc.OrganizationFhirClient.FindAll(ctx)
	if err != nil {
		uc.Log.Error("organizationUsecase.ListOrganizations error calling OrganizationFhirClient.FindAll",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.Organization, 0, len(organizations))
	for i := range organizations {
		result = append(result, *toResponse(&organizations[i]))
	}
	return result, nil
}

func (uc *organizationUsecase) GetOrganization(ctx context.Context, organizationID string) (*responses.Organization, error) {
	organization, err := uc.OrganizationFhirClient.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		uc.Log.Error("organizationUsecase.GetOrganization error calling OrganizationFhirClient.FindOrganizationByID",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingOrganizationIDKey, organizationID),
			zap.Error(err),
		)
		return nil, err
	}
	return toResponse(organization), nil
}

// UpdateOrganizationName reads the stored Organization first so a rename
// keeps every other field the store holds.
func (uc *organizationUsecase) UpdateOrganizationName(ctx context.Context, organizationID string, request *requests.UpdateOrganization) (*responses.Organization, error) {
	requestID := utils.GetRequestID(ctx)

	organization, err := uc.OrganizationFhirClient.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		uc.Log.Error("organizationUsecase.UpdateOrganizationName error calling OrganizationFhirClient.FindOrganizationByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	organization.ID = organizationID
	organization.Name = strings.TrimSpace(request.NewName)
	updated, err := uc.OrganizationFhirClient.UpdateOrganization(ctx, organization)
	if err != nil {
		uc.Log.Error("organizationUsecase.UpdateOrganizationName error calling OrganizationFhirClient.UpdateOrganization",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogRecordEvent(ctx, uc.Log, "organization_renamed",
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)
	return toResponse(updated), nil
}

func (uc *organizationUsecase) DeleteOrganization(ctx context.Context, organizationID string) error {
	requestID := utils.GetRequestID(ctx)

	if err := uc.OrganizationFhirClient.DeleteOrganizationByID(ctx, organizationID); err != nil {
		uc.Log.Error("organizationUsecase.DeleteOrganization error calling OrganizationFhirClient.DeleteOrganizationByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	utils.LogRecordEvent(ctx, uc.Log, "organization_deleted",
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)
	return nil
}

func toResponse(organization *fhir_dto.Organization) *responses.Organization {
	return &responses.Organization{
		ID:     organization.ID,
		Name:   organization.Name,
		Active: organization.Active,
	}
}
