package screening

import (
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/fhir_dto"
	"strings"
)

// Concept is one allowed answer of a coded field.
type Concept struct {
	Key    string
	Coding fhir_dto.Coding
	Text   string
}

// ConceptSet is a small finite lookup from a record value to a coding. The
// fallback is used for any value that matches no concept.
type ConceptSet struct {
	Name     string
	Concepts []Concept
	Fallback Concept
}

// Resolve matches value case-insensitively against each concept's key,
// display and text. A record that went through the mapper carries displays,
// so both forms must resolve to the same coding.
func (s *ConceptSet) Resolve(value string) Concept {
	concept, _ := s.resolve(value)
	return concept
}

func (s *ConceptSet) resolve(value string) (Concept, bool) {
	needle := strings.TrimSpace(value)
	for _, concept := range s.Concepts {
		if concept.matches(needle) {
			return concept, true
		}
	}
	return s.Fallback, s.Fallback.matches(needle)
}

// CodeableConcept returns the FHIR value for a record value. A value that
// matches no concept is kept as the text next to the fallback coding.
func (s *ConceptSet) CodeableConcept(value string) fhir_dto.CodeableConcept {
	concept, matched := s.resolve(value)
	text := concept.Text
	if needle := strings.TrimSpace(value); !matched && needle != "" {
		text = needle
	}
	return fhir_dto.CodeableConcept{
		Coding: []fhir_dto.Coding{concept.Coding},
		Text:   text,
	}
}

// Display reads a stored value back. The coding display wins over the text,
// except under the fallback coding, where the text holds what was entered.
func (s *ConceptSet) Display(value fhir_dto.CodeableConcept) string {
	if value.Text != "" && value.Text != s.Fallback.Text && value.PrimaryCode() == s.Fallback.Coding.Code {
		return value.Text
	}
	if display := value.PrimaryDisplay(); display != "" {
		return display
	}
	return value.Text
}

func (c Concept) matches(needle string) bool {
	return strings.EqualFold(c.Key, needle) ||
		strings.EqualFold(c.Coding.Display, needle) ||
		(c.Text != "" && strings.EqualFold(c.Text, needle))
}

var DeliveryModes = &ConceptSet{
	Name: "mode_of_delivery",
	Concepts: []Concept{
		{Key: "SVD", Coding: fhir_dto.Coding{System: constvars.FhirSystemSNOMED, Code: "48782003", Display: "Spontaneous vaginal delivery"}},
		{Key: "VAD", Coding: fhir_dto.Coding{System: constvars.FhirSystemSNOMED, Code: "61586001", Display: "Delivery by vacuum extraction"}},
		{Key: "LSCS", Coding: fhir_dto.Coding{System: constvars.FhirSystemSNOMED, Code: "89053004", Display: "Caesarean section"}},
	},
	Fallback: Concept{Key: "other", Coding: fhir_dto.Coding{System: constvars.FhirSystemSNOMED, Code: "00000000", Display: "Other delivery type"}},
}

var NormalOrDecreased = &ConceptSet{
	Name: "normal_or_decreased",
	Concepts: []Concept{
		{Key: "normal", Coding: fhir_dto.Coding{System: constvars.FhirSystemObservationInterpreter, Code: "N", Display: "Normal"}, Text: "Normal tone"},
		{Key: "decreased", Coding: fhir_dto.Coding{System: constvars.FhirSystemObservationInterpreter, Code: "D", Display: "Significantly change down"}, Text: "Decreased tone"},
	},
	Fallback: Concept{Key: "unknown", Coding: fhir_dto.Coding{System: constvars.FhirSystemObservationInterpreter, Code: "U", Display: "Unknown"}, Text: "Unknown tone"},
}
