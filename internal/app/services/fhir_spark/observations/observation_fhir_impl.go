package observations

import (
	"bytes"
	"context"
	"errors"
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

type observationFhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewObservationFhirClient(baseUrl string, httpClient *http.Client, logger *zap.Logger) contracts.ObservationFhirClient {
	return &observationFhirClient{
		BaseUrl:    utils.FhirResourceUrl(baseUrl, constvars.ResourceObservation),
		HTTPClient: httpClient,
		Log:        logger,
	}
}

func (c *observationFhirClient) UpdateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Debug("observationFhirClient.UpdateObservation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, request.ID),
	)

	if request.ID == "" {
		err := errors.New("observation id is required for update")
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourceObservation)
	}
	request.ResourceType = constvars.ResourceObservation

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("observationFhirClient.UpdateObservation error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPut, utils.FhirResourceUrl(c.BaseUrl, url.PathEscape(request.ID)), bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("observationFhirClient.UpdateObservation error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("observationFhirClient.UpdateObservation error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, request.ID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !utils.IsFhirSuccess(resp.StatusCode) {
		upstreamErr := utils.ReadFhirUpstreamError(resp, constvars.ResourceObservation)
		c.Log.Error("observationFhirClient.UpdateObservation FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceIDKey, request.ID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(upstreamErr),
		)
		return nil, upstreamErr
	}

	var result fhir_dto.Observation
	if err := utils.DecodeFhirResponse(resp, constvars.ResourceObservation, &result); err != nil {
		c.Log.Error("observationFhirClient.UpdateObservation error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Debug("observationFhirClient.UpdateObservation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceIDKey, result.ID),
	)
	return &result, nil
}
