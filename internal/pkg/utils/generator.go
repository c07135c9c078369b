package utils

import (
	"neohearts-service/internal/pkg/constvars"
	"strings"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// NewUrnUUID returns a fresh transaction-local fullUrl.
func NewUrnUUID() string {
	return constvars.FhirUrnUUIDPrefix + uuid.NewString()
}

func NewNewbornIdentifierValue() string {
	return constvars.FhirNewbornIdentifierPrefix + uuid.NewString()
}

// LastPathSegment returns "123" for "Organization/123".
func LastPathSegment(reference string) string {
	reference = strings.TrimRight(reference, "/")
	if idx := strings.LastIndex(reference, "/"); idx >= 0 {
		return reference[idx+1:]
	}
	return reference
}

// ResourceIDFromLocation extracts the id from a transaction response
// location such as "Patient/123/_history/1".
func ResourceIDFromLocation(location, resourceType string) string {
	segments := strings.Split(strings.Trim(location, "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == resourceType {
			return segments[i+1]
		}
	}
	return ""
}
