package screening

import (
	"testing"

	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Roundtrip(t *testing.T) {
	record := fullRecord()

	t.Run("In memory", func(t *testing.T) {
		bundle, err := Build(&record)
		require.NoError(t, err)
		assert.Equal(t, record, Map(bundle))
	})

	t.Run("Through JSON", func(t *testing.T) {
		bundle, err := Build(&record)
		require.NoError(t, err)

		raw, err := json.Marshal(bundle)
		require.NoError(t, err)

		mapped, err := MapJSON(raw)
		require.NoError(t, err)
		assert.Equal(t, record, mapped)
	})

	t.Run("Enum input comes back as display", func(t *testing.T) {
		input := fullRecord()
		input.ModeOfDelivery = "LSCS"
		input.Tone = "decreased"

		bundle, err := Build(&input)
		require.NoError(t, err)

		mapped := Map(bundle)
		assert.Equal(t, "Caesarean section", mapped.ModeOfDelivery)
		assert.Equal(t, "Significantly change down", mapped.Tone)
	})
}

func TestMap_Disambiguation(t *testing.T) {
	record := fullRecord()
	record.RootingReflex = "present"
	record.SuckingReflex = "absent"

	bundle, err := Build(&record)
	require.NoError(t, err)

	t.Run("Shared code routes by label", func(t *testing.T) {
		mapped := Map(bundle)
		assert.Equal(t, "present", mapped.RootingReflex)
		assert.Equal(t, "absent", mapped.SuckingReflex)
	})

	t.Run("Entry order does not matter", func(t *testing.T) {
		var rooting, sucking int
		for i, entry := range bundle.Entry {
			if observation := entry.Resource.Observation; observation != nil {
				switch observation.Code.Text {
				case "Rooting Reflex":
					rooting = i
				case "Sucking Reflex":
					sucking = i
				}
			}
		}
		bundle.Entry[rooting], bundle.Entry[sucking] = bundle.Entry[sucking], bundle.Entry[rooting]

		mapped := Map(bundle)
		assert.Equal(t, "present", mapped.RootingReflex)
		assert.Equal(t, "absent", mapped.SuckingReflex)
	})

	t.Run("Shared code without a matching label is skipped", func(t *testing.T) {
		value := "brisk"
		ambiguous := &fhir_dto.Bundle{
			ResourceType: constvars.ResourceBundle,
			Entry: []fhir_dto.BundleEntry{{
				Resource: fhir_dto.NewObservationResource(&fhir_dto.Observation{
					Code:             fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{loinc("56876-6", "Rooting reflex")}},
					ObservationValue: fhir_dto.ObservationValue{ValueString: &value},
				}),
			}},
		}
		mapped := Map(ambiguous)
		assert.Empty(t, mapped.RootingReflex)
		assert.Empty(t, mapped.SuckingReflex)
	})
}

func TestMap_Tolerance(t *testing.T) {
	t.Run("Unknown code is skipped", func(t *testing.T) {
		record := fullRecord()
		bundle, err := Build(&record)
		require.NoError(t, err)

		value := "O+"
		bundle.Entry = append(bundle.Entry, fhir_dto.BundleEntry{
			FullUrl: "urn:uuid:extra",
			Resource: fhir_dto.NewObservationResource(&fhir_dto.Observation{
				Status:           constvars.FhirObservationStatusFinal,
				Code:             fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{loinc("882-1", "ABO and Rh group")}},
				ObservationValue: fhir_dto.ObservationValue{ValueString: &value},
			}),
		})

		assert.Equal(t, record, Map(bundle))
	})

	t.Run("Missing Patient leaves identity empty", func(t *testing.T) {
		record := fullRecord()
		bundle, err := Build(&record)
		require.NoError(t, err)
		bundle.Entry = bundle.Entry[1:]

		mapped := Map(bundle)
		assert.Empty(t, mapped.FirstName)
		assert.Empty(t, mapped.DOB)
		assert.Equal(t, 140, mapped.HR)
	})

	t.Run("Unknown resource types survive decoding", func(t *testing.T) {
		raw := []byte(`{"resourceType":"Bundle","type":"searchset","entry":[
			{"resource":{"resourceType":"Encounter","id":"e1"}},
			{"resource":{"resourceType":"Patient","id":"p1","name":[{"family":"Cruz","given":["Lia"]}],"gender":"female","birthDate":"2024-02-02","managingOrganization":{"reference":"Organization/77"}}},
			{"resource":{"resourceType":"Observation","id":"o1","status":"final","code":{"coding":[{"system":"http://loinc.org","code":"9303-9"}],"text":"Respiratory rate"},"valueQuantity":{"value":52}}}
		]}`)

		mapped, err := MapJSON(raw)
		require.NoError(t, err)
		assert.Equal(t, "p1", mapped.ID)
		assert.Equal(t, "Lia", mapped.FirstName)
		assert.Equal(t, "Cruz", mapped.LastName)
		assert.Equal(t, "77", mapped.OrganizationID)
		assert.True(t, mapped.Active)
		assert.Equal(t, 52, mapped.RR)
	})

	t.Run("Code-less Observation matches on label", func(t *testing.T) {
		value := "bag and mask"
		bundle := &fhir_dto.Bundle{
			ResourceType: constvars.ResourceBundle,
			Entry: []fhir_dto.BundleEntry{{
				Resource: fhir_dto.NewObservationResource(&fhir_dto.Observation{
					Code:             fhir_dto.CodeableConcept{Text: "Resuscitation Procedure"},
					ObservationValue: fhir_dto.ObservationValue{ValueString: &value},
				}),
			}},
		}
		assert.Equal(t, "bag and mask", Map(bundle).Resuscitation)
	})

	t.Run("Component falls back to a unique code", func(t *testing.T) {
		score := 7
		bundle := &fhir_dto.Bundle{
			ResourceType: constvars.ResourceBundle,
			Entry: []fhir_dto.BundleEntry{{
				Resource: fhir_dto.NewObservationResource(&fhir_dto.Observation{
					Code: fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{loinc("9272-6", "1 minute Apgar score")}, Text: "Apgar scores"},
					Component: []fhir_dto.ObservationComponent{{
						Code:             fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{loinc("9274-2", "")}, Text: "Apgar 5'"},
						ObservationValue: fhir_dto.ObservationValue{ValueInteger: &score},
					}},
				}),
			}},
		}
		assert.Equal(t, 7, Map(bundle).ApgarScores5Min)
	})

	t.Run("Nil bundle", func(t *testing.T) {
		assert.Equal(t, Record{}, Map(nil))
	})
}

func TestMapJSON_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"Not JSON", `{"resourceType":`},
		{"Not a Bundle", `{"resourceType":"Patient","id":"p1"}`},
		{"Entry without resourceType", `{"resourceType":"Bundle","entry":[{"resource":{"id":"x"}}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MapJSON([]byte(tc.raw))

			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr)
			assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
		})
	}
}
