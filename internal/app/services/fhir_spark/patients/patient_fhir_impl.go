package patients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
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

type patientFhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewPatientFhirClient(baseUrl string, httpClient *http.Client, logger *zap.Logger) contracts.PatientFhirClient {
	return &patientFhirClient{
		BaseUrl:    utils.FhirResourceUrl(baseUrl, constvars.ResourcePatient),
		HTTPClient: httpClient,
		Log:        logger,
	}
}

func (c *patientFhirClient) FindPatientBundle(ctx context.Context, patientID string) (*fhir_dto.Bundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.FindPatientBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	searchUrl := fmt.Sprintf(constvars.FhirSearchPatientWithObservations, c.BaseUrl, url.QueryEscape(patientID))
	var result fhir_dto.Bundle
	if err := c.get(ctx, searchUrl, constvars.ResourceBundle, &result); err != nil {
		c.Log.Error("patientFhirClient.FindPatientBundle error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFhirUrlKey, searchUrl),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientFhirClient.FindPatientBundle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(result.Entry)),
	)
	return &result, nil
}

func (c *patientFhirClient) FindActivePatients(ctx context.Context) ([]fhir_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.FindActivePatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	searchUrl := fmt.Sprintf(constvars.FhirSearchActivePatients, c.BaseUrl)
	var result fhir_dto.Bundle
	if err := c.get(ctx, searchUrl, constvars.ResourceBundle, &result); err != nil {
		c.Log.Error("patientFhirClient.FindActivePatients error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	patients := make([]fhir_dto.Patient, 0, len(result.Entry))
	for _, entry := range result.Entry {
		if entry.Resource != nil && entry.Resource.Patient != nil {
			patients = append(patients, *entry.Resource.Patient)
		}
	}

	c.Log.Info("patientFhirClient.FindActivePatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPatientCountKey, len(patients)),
	)
	return patients, nil
}

func (c *patientFhirClient) FindPatientByID(ctx context.Context, patientID string) (*fhir_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.FindPatientByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	var result fhir_dto.Patient
	if err := c.get(ctx, utils.FhirResourceUrl(c.BaseUrl, url.PathEscape(patientID)), constvars.ResourcePatient, &result); err != nil {
		c.Log.Error("patientFhirClient.FindPatientByID error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientFhirClient.FindPatientByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, result.ID),
	)
	return &result, nil
}

func (c *patientFhirClient) UpdatePatient(ctx context.Context, request *fhir_dto.Patient) (*fhir_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientFhirClient.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.ID),
	)

	if request.ID == "" {
		err := errors.New("patient id is required for update")
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourcePatient)
	}
	request.ResourceType = constvars.ResourcePatient

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPut, utils.FhirResourceUrl(c.BaseUrl, url.PathEscape(request.ID)), bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !utils.IsFhirSuccess(resp.StatusCode) {
		upstreamErr := utils.ReadFhirUpstreamError(resp, constvars.ResourcePatient)
		c.Log.Error("patientFhirClient.UpdatePatient FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(upstreamErr),
		)
		return nil, upstreamErr
	}

	var result fhir_dto.Patient
	if err := utils.DecodeFhirResponse(resp, constvars.ResourcePatient, &result); err != nil {
		c.Log.Error("patientFhirClient.UpdatePatient error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("patientFhirClient.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, result.ID),
	)
	return &result, nil
}

func (c *patientFhirClient) get(ctx context.Context, targetUrl, resource string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, targetUrl, nil)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !utils.IsFhirSuccess(resp.StatusCode) {
		return utils.ReadFhirUpstreamError(resp, resource)
	}
	return utils.DecodeFhirResponse(resp, resource, out)
}
