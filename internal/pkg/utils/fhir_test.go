package utils

import (
	"strings"
	"testing"

	"neohearts-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestFhirHelpers(t *testing.T) {
	t.Run("FhirResourceUrl trims the base", func(t *testing.T) {
		assert.Equal(t, "http://store/fhir/Patient/1", FhirResourceUrl("http://store/fhir/", "Patient", "1"))
		assert.Equal(t, "http://store/fhir/Patient", FhirResourceUrl("http://store/fhir", "Patient"))
	})

	t.Run("FhirReference", func(t *testing.T) {
		assert.Equal(t, "Organization/org-1", FhirReference(constvars.ResourceOrganization, "org-1"))
	})

	t.Run("IsFhirSuccess", func(t *testing.T) {
		assert.True(t, IsFhirSuccess(201))
		assert.False(t, IsFhirSuccess(304))
		assert.False(t, IsFhirSuccess(412))
	})
}

func TestResourceIDFromLocation(t *testing.T) {
	testCases := []struct {
		location string
		want     string
	}{
		{"Patient/123/_history/1", "123"},
		{"http://store/fhir/Patient/abc/_history/2", "abc"},
		{"Patient/9", "9"},
		{"Observation/5/_history/1", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.location, func(t *testing.T) {
			assert.Equal(t, tc.want, ResourceIDFromLocation(tc.location, constvars.ResourcePatient))
		})
	}
}

func TestGenerators(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewUrnUUID(), constvars.FhirUrnUUIDPrefix))
	assert.True(t, strings.HasPrefix(NewNewbornIdentifierValue(), constvars.FhirNewbornIdentifierPrefix))
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
	assert.Equal(t, "77", LastPathSegment("Organization/77"))
	assert.Equal(t, "77", LastPathSegment("77"))
}
