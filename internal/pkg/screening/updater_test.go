package screening

import (
	"fmt"
	"testing"

	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storedBundle simulates a bundle read back from the store: every resource
// has a server id.
func storedBundle(t *testing.T, record Record) *fhir_dto.Bundle {
	t.Helper()
	bundle, err := Build(&record)
	require.NoError(t, err)

	bundle.Type = constvars.FhirBundleTypeSearchset
	for i := range bundle.Entry {
		entry := &bundle.Entry[i]
		entry.Request = nil
		switch {
		case entry.Resource.Patient != nil:
			entry.Resource.Patient.ID = "p-1"
		case entry.Resource.Observation != nil:
			entry.Resource.Observation.ID = fmt.Sprintf("o-%d", i)
		}
	}
	return bundle
}

type entryIdentity struct {
	fullUrl string
	id      string
}

func identities(bundle *fhir_dto.Bundle) []entryIdentity {
	out := make([]entryIdentity, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		out = append(out, entryIdentity{fullUrl: entry.FullUrl, id: entry.Resource.ID()})
	}
	return out
}

func TestUpdate(t *testing.T) {
	t.Run("Preserves identity and changes values", func(t *testing.T) {
		bundle := storedBundle(t, fullRecord())
		before := identities(bundle)

		changed := fullRecord()
		changed.HR = 152
		changed.Tone = "decreased"
		changed.FemoralPulsesLeft = "absent"
		changed.RightLeg = 91
		changed.SuckingReflex = "weak"
		changed.FirstName = "Ana Maria"

		updated, err := Update(bundle, &changed)
		require.NoError(t, err)

		assert.Equal(t, before, identities(updated))

		mapped := Map(updated)
		assert.Equal(t, 152, mapped.HR)
		assert.Equal(t, "Significantly change down", mapped.Tone)
		assert.Equal(t, "absent", mapped.FemoralPulsesLeft)
		assert.Equal(t, float64(91), mapped.RightLeg)
		assert.Equal(t, "weak", mapped.SuckingReflex)
		assert.Equal(t, "present", mapped.RootingReflex)
		assert.Equal(t, "Ana Maria", mapped.FirstName)
		assert.Equal(t, "p-1", mapped.ID)
	})

	t.Run("Mapped record writes back unchanged", func(t *testing.T) {
		bundle := storedBundle(t, fullRecord())
		mapped := Map(bundle)

		updated, err := Update(bundle, &mapped)
		require.NoError(t, err)

		delivery := findObservation(t, updated, "236973005", "")
		assert.Equal(t, "89053004", delivery.ValueCodeableConcept.PrimaryCode())
		assert.Equal(t, mapped, Map(updated))
	})

	t.Run("Field without Observation is dropped", func(t *testing.T) {
		bundle := storedBundle(t, fullRecord())
		kept := bundle.Entry[:0]
		for _, entry := range bundle.Entry {
			if observation := entry.Resource.Observation; observation != nil && observation.Code.PrimaryCode() == "40443-4" {
				continue
			}
			kept = append(kept, entry)
		}
		bundle.Entry = kept
		count := len(bundle.Entry)

		changed := fullRecord()
		changed.HR = 99
		changed.RR = 60

		updated, err := Update(bundle, &changed)
		require.NoError(t, err)
		assert.Len(t, updated.Entry, count)

		mapped := Map(updated)
		assert.Zero(t, mapped.HR)
		assert.Equal(t, 60, mapped.RR)
	})

	t.Run("Keeps patient fields the record does not carry", func(t *testing.T) {
		bundle := storedBundle(t, fullRecord())
		patient := bundle.PatientEntry().Resource.Patient
		inactive := false
		patient.Active = &inactive
		identifier := patient.Identifier[0].Value

		changed := fullRecord()
		changed.OrganizationID = ""

		_, err := Update(bundle, &changed)
		require.NoError(t, err)

		assert.False(t, patient.IsActive())
		assert.Equal(t, identifier, patient.Identifier[0].Value)
		assert.Equal(t, "Organization/org-1", patient.ManagingOrganization.Reference)
	})

	t.Run("Keeps members the model does not carry", func(t *testing.T) {
		stored := []byte(`{
			"resourceType":"Bundle","type":"searchset",
			"entry":[
				{"fullUrl":"http://store/Patient/p-9","resource":{
					"resourceType":"Patient","id":"p-9",
					"name":[{"family":"Reyes","given":["Mika"]}],
					"gender":"male","birthDate":"2024-03-01",
					"telecom":[{"system":"phone","value":"+63 555 0101"}],
					"extension":[
						{"url":"http://x/flag","valueBoolean":true},
						{"url":"http://hl7.org/fhir/StructureDefinition/patient-age","valueQuantity":{"value":12,"unit":"hours"}}
					],
					"managingOrganization":{"reference":"Organization/org-1","display":"NICU East"}
				}},
				{"fullUrl":"http://store/Observation/o-9","resource":{
					"resourceType":"Observation","id":"o-9","status":"final",
					"code":{"coding":[{"system":"http://loinc.org","code":"40443-4","display":"Heart rate"}],"text":"Heart rate"},
					"subject":{"reference":"Patient/p-9"},
					"valueQuantity":{"value":140,"unit":"beats/min","system":"http://unitsofmeasure.org","code":"/min"},
					"note":[{"text":"measured while asleep"}],
					"interpretation":[{"coding":[{"code":"N"}]}]
				}}
			]
		}`)
		bundle, err := fhir_dto.ParseBundle(stored)
		require.NoError(t, err)

		record := Map(bundle)
		require.Equal(t, 140, record.HR)
		record.HR = 150
		record.OrganizationID = "org-1"

		updated, err := Update(bundle, &record)
		require.NoError(t, err)

		patientJSON, err := json.Marshal(updated.PatientEntry().Resource)
		require.NoError(t, err)
		var patient map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(patientJSON, &patient))
		assert.JSONEq(t, `[{"system":"phone","value":"+63 555 0101"}]`, string(patient["telecom"]))
		assert.Contains(t, string(patient["extension"]), `"valueBoolean":true`)
		assert.JSONEq(t, `{"reference":"Organization/org-1","display":"NICU East"}`, string(patient["managingOrganization"]))

		observationJSON, err := json.Marshal(updated.Entry[1].Resource)
		require.NoError(t, err)
		var observation map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(observationJSON, &observation))
		assert.JSONEq(t, `[{"text":"measured while asleep"}]`, string(observation["note"]))
		assert.JSONEq(t, `[{"coding":[{"code":"N"}]}]`, string(observation["interpretation"]))

		var quantity fhir_dto.Quantity
		require.NoError(t, json.Unmarshal(observation["valueQuantity"], &quantity))
		assert.Equal(t, float64(150), quantity.Value)

		assert.Equal(t, 150, Map(updated).HR)
	})

	t.Run("Bundle without Patient", func(t *testing.T) {
		bundle := storedBundle(t, fullRecord())
		bundle.Entry = bundle.Entry[1:]

		record := fullRecord()
		_, err := Update(bundle, &record)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
