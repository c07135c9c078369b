package bundle

import (
	"bytes"
	"context"
	"neohearts-service/internal/app/contracts"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type bundleFhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewBundleFhirClient(baseUrl string, httpClient *http.Client, logger *zap.Logger) contracts.BundleFhirClient {
	return &bundleFhirClient{
		BaseUrl:    baseUrl,
		HTTPClient: httpClient,
		Log:        logger,
	}
}

func (c *bundleFhirClient) PostTransactionBundle(ctx context.Context, bundle *fhir_dto.Bundle) (*fhir_dto.Bundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("bundleFhirClient.PostTransactionBundle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)

	requestJSON, err := json.Marshal(bundle)
	if err != nil {
		c.Log.Error("bundleFhirClient.PostTransactionBundle error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("bundleFhirClient.PostTransactionBundle error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("bundleFhirClient.PostTransactionBundle error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !utils.IsFhirSuccess(resp.StatusCode) {
		upstreamErr := utils.ReadFhirUpstreamError(resp, constvars.ResourceBundle)
		c.Log.Error("bundleFhirClient.PostTransactionBundle FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(upstreamErr),
		)
		return nil, upstreamErr
	}

	var result fhir_dto.Bundle
	if err := utils.DecodeFhirResponse(resp, constvars.ResourceBundle, &result); err != nil {
		c.Log.Error("bundleFhirClient.PostTransactionBundle error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("bundleFhirClient.PostTransactionBundle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(result.Entry)),
	)
	return &result, nil
}
