package utils

import (
	"fmt"
	"io"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// FhirResourceUrl joins the store base url with a resource path.
func FhirResourceUrl(baseUrl string, segments ...string) string {
	return strings.TrimRight(baseUrl, "/") + "/" + strings.Join(segments, "/")
}

func IsFhirSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// ReadFhirUpstreamError drains a non-success store response into an
// UpstreamError. The OperationOutcome diagnostics, when present, are kept
// for logging; the body itself is forwarded untouched.
func ReadFhirUpstreamError(resp *http.Response, resource string) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return exceptions.ErrReadHTTPResponse(err)
	}

	var outcome fhir_dto.OperationOutcome
	diagnostics := ""
	if json.Unmarshal(body, &outcome) == nil && outcome.ResourceType == constvars.ResourceOperationOutcome {
		diagnostics = outcome.FirstDiagnostics()
	}

	contentType := resp.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEApplicationFHIRJSON
	}
	return exceptions.ErrFHIRUpstream(resp.StatusCode, body, contentType, resource, diagnostics)
}

// DecodeFhirResponse decodes a success body into out.
func DecodeFhirResponse(resp *http.Response, resource string, out interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return exceptions.ErrDecodeResponse(err, resource)
	}
	return nil
}

// FhirReference returns a relative reference such as "Patient/123".
func FhirReference(resource, id string) string {
	return fmt.Sprintf(constvars.FhirResourcePathFormat, resource, id)
}
