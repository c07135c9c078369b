package patients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const searchsetBody = `{"resourceType":"Bundle","type":"searchset","entry":[
	{"fullUrl":"http://store/fhir/Patient/p1","resource":{"resourceType":"Patient","id":"p1","active":true,"name":[{"family":"Santos","given":["Ana"]}],"gender":"female","birthDate":"2024-01-01"}},
	{"fullUrl":"http://store/fhir/Observation/o1","resource":{"resourceType":"Observation","id":"o1","status":"final","code":{"coding":[{"system":"http://loinc.org","code":"40443-4"}],"text":"Heart rate"},"valueQuantity":{"value":140}}}
]}`

func TestPatientFhirClient_FindPatientBundle(t *testing.T) {
	t.Run("Searches with revinclude", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/fhir/Patient", r.URL.Path)
			assert.Equal(t, "p1", r.URL.Query().Get("_id"))
			assert.Equal(t, "Observation:patient", r.URL.Query().Get("_revinclude"))
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
			w.Write([]byte(searchsetBody))
		}))
		defer server.Close()

		client := NewPatientFhirClient(server.URL+"/fhir", server.Client(), zap.NewNop())
		bundle, err := client.FindPatientBundle(context.Background(), "p1")
		require.NoError(t, err)
		require.Len(t, bundle.Entry, 2)
		assert.Equal(t, "p1", bundle.PatientEntry().Resource.Patient.ID)
		assert.Len(t, bundle.Observations(), 1)
	})

	t.Run("Upstream error keeps status and body", func(t *testing.T) {
		outcome := `{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"not-found","diagnostics":"Patient p9 not found"}]}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(outcome))
		}))
		defer server.Close()

		client := NewPatientFhirClient(server.URL, server.Client(), zap.NewNop())
		_, err := client.FindPatientBundle(context.Background(), "p9")

		var upstreamErr *exceptions.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
		assert.JSONEq(t, outcome, string(upstreamErr.Body))
		assert.Equal(t, "Patient p9 not found", upstreamErr.Diagnostics)
	})

	t.Run("Unreachable store", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		baseUrl := server.URL
		server.Close()

		client := NewPatientFhirClient(baseUrl, http.DefaultClient, zap.NewNop())
		_, err := client.FindPatientBundle(context.Background(), "p1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})
}

func TestPatientFhirClient_FindActivePatients(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		w.Write([]byte(searchsetBody))
	}))
	defer server.Close()

	client := NewPatientFhirClient(server.URL, server.Client(), zap.NewNop())
	patients, err := client.FindActivePatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Ana", patients[0].Name[0].Given[0])
}

func TestPatientFhirClient_UpdatePatient(t *testing.T) {
	t.Run("Puts to the resource path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/Patient/p1", r.URL.Path)
			assert.Equal(t, constvars.MIMEApplicationFHIRJSON, r.Header.Get(constvars.HeaderContentType))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			var patient fhir_dto.Patient
			require.NoError(t, json.Unmarshal(body, &patient))
			assert.Equal(t, constvars.ResourcePatient, patient.ResourceType)
			assert.False(t, patient.IsActive())

			w.Write(body)
		}))
		defer server.Close()

		inactive := false
		client := NewPatientFhirClient(server.URL, server.Client(), zap.NewNop())
		updated, err := client.UpdatePatient(context.Background(), &fhir_dto.Patient{ID: "p1", Active: &inactive})
		require.NoError(t, err)
		assert.Equal(t, "p1", updated.ID)
	})

	t.Run("Missing id", func(t *testing.T) {
		client := NewPatientFhirClient("http://unused", http.DefaultClient, zap.NewNop())
		_, err := client.UpdatePatient(context.Background(), &fhir_dto.Patient{})
		assert.Error(t, err)
	})
}
