package organizations

import (
	"bytes"
	"context"
	"errors"
	"io"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/utils"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type organizationFhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewOrganizationFhirClient(baseUrl string, httpClient *http.Client, logger *zap.Logger) contracts.OrganizationFhirClient {
	return &organizationFhirClient{
		BaseUrl:    utils.FhirResourceUrl(baseUrl, constvars.ResourceOrganization),
		HTTPClient: httpClient,
		Log:        logger,
	}
}

func (c *organizationFhirClient) CreateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.CreateOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request.ResourceType = constvars.ResourceOrganization
	var result fhir_dto.Organization
	if err := c.send(ctx, constvars.MethodPost, c.BaseUrl, request, &result); err != nil {
		c.Log.Error("organizationFhirClient.CreateOrganization error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("organizationFhirClient.CreateOrganization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, result.ID),
	)
	return &result, nil
}

func (c *organizationFhirClient) FindAll(ctx context.Context) ([]fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var result fhir_dto.Bundle
	if err := c.send(ctx, constvars.MethodGet, c.BaseUrl, nil, &result); err != nil {
		c.Log.Error("organizationFhirClient.FindAll error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	organizations := make([]fhir_dto.Organization, 0, len(result.Entry))
	for _, entry := range result.Entry {
		if entry.Resource != nil && entry.Resource.Organization != nil {
			organizations = append(organizations, *entry.Resource.Organization)
		}
	}

	c.Log.Info("organizationFhirClient.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingOrgCountKey, len(organizations)),
	)
	return organizations, nil
}

func (c *organizationFhirClient) FindOrganizationByID(ctx context.Context, organizationID string) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.FindOrganizationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)

	var result fhir_dto.Organization
	if err := c.send(ctx, constvars.MethodGet, utils.FhirResourceUrl(c.BaseUrl, url.PathEscape(organizationID)), nil, &result); err != nil {
		c.Log.Error("organizationFhirClient.FindOrganizationByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("organizationFhirClient.FindOrganizationByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, result.ID),
	)
	return &result, nil
}

func (c *organizationFhirClient) UpdateOrganization(ctx context.Context, request *fhir_dto.Organization) (*fhir_dto.Organization, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.UpdateOrganization called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, request.ID),
	)

	if request.ID == "" {
		return nil, exceptions.ErrUpdateFHIRResource(errors.New("organization id is required for update"), constvars.ResourceOrganization)
	}
	request.ResourceType = constvars.ResourceOrganization

	var result fhir_dto.Organization
	if err := c.send(ctx, constvars.MethodPut, utils.FhirResourceUrl(c.BaseUrl, url.PathEscape(request.ID)), request, &result); err != nil {
		c.Log.Error("organizationFhirClient.UpdateOrganization error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("organizationFhirClient.UpdateOrganization succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, result.ID),
	)
	return &result, nil
}

func (c *organizationFhirClient) DeleteOrganizationByID(ctx context.Context, organizationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("organizationFhirClient.DeleteOrganizationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)

	if err := c.send(ctx, constvars.MethodDelete, utils.FhirResourceUrl(c.BaseUrl, url.PathEscape(organizationID)), nil, nil); err != nil {
		c.Log.Error("organizationFhirClient.DeleteOrganizationByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	c.Log.Info("organizationFhirClient.DeleteOrganizationByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrganizationIDKey, organizationID),
	)
	return nil
}

// send issues one request. A nil out discards the response body, which is
// how DELETE answers are handled.
func (c *organizationFhirClient) send(ctx context.Context, method, targetUrl string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		requestJSON, err := json.Marshal(body)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		reader = bytes.NewBuffer(requestJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, targetUrl, reader)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !utils.IsFhirSuccess(resp.StatusCode) {
		return utils.ReadFhirUpstreamError(resp, constvars.ResourceOrganization)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return utils.DecodeFhirResponse(resp, constvars.ResourceOrganization, out)
}
