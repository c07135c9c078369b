package exceptions

import (
	"fmt"
	"neohearts-service/internal/pkg/constvars"
	"strings"
)

// UpstreamError is a non-success answer from the FHIR store. The status and
// body are passed to the client verbatim.
type UpstreamError struct {
	StatusCode  int
	Body        []byte
	ContentType string
	Resource    string
	Diagnostics string
}

func (e *UpstreamError) Error() string {
	message := fmt.Sprintf(constvars.ErrDevFHIRUpstreamStatus, e.StatusCode, e.Resource)
	if e.Diagnostics != "" {
		message += ": " + e.Diagnostics
	}
	return message
}

func ErrFHIRUpstream(statusCode int, body []byte, contentType, resource, diagnostics string) *UpstreamError {
	return &UpstreamError{
		StatusCode:  statusCode,
		Body:        body,
		ContentType: contentType,
		Resource:    resource,
		Diagnostics: diagnostics,
	}
}

type ResourceFailure struct {
	ResourceType string `json:"resource_type"`
	ID           string `json:"id"`
	StatusCode   int    `json:"status_code,omitempty"`
	Message      string `json:"message"`
	Err          error  `json:"-"`
}

// PartialUpdateError reports every per-resource write that failed during one
// update. Attempted counts all writes, including the successful ones.
type PartialUpdateError struct {
	Attempted int
	Failures  []ResourceFailure
}

func (e *PartialUpdateError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s/%s: %s", failure.ResourceType, failure.ID, failure.Message))
	}
	return fmt.Sprintf(constvars.ErrDevFHIRUpdatePartial, len(e.Failures), e.Attempted) + ": " + strings.Join(parts, "; ")
}

func (e *PartialUpdateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, failure := range e.Failures {
		if failure.Err != nil {
			errs = append(errs, failure.Err)
		}
	}
	return errs
}

func NewResourceFailure(resourceType, id string, err error) ResourceFailure {
	failure := ResourceFailure{
		ResourceType: resourceType,
		ID:           id,
		Message:      err.Error(),
		Err:          err,
	}
	if upstreamErr, ok := err.(*UpstreamError); ok {
		failure.StatusCode = upstreamErr.StatusCode
	}
	return failure
}
