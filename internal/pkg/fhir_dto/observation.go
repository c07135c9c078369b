package fhir_dto

type Observation struct {
	ResourceType      string            `json:"resourceType"`
	ID                string            `json:"id,omitempty"`
	Meta              *Meta             `json:"meta,omitempty"`
	Identifier        []Identifier      `json:"identifier,omitempty"`
	Status            string            `json:"status"`
	Category          []CodeableConcept `json:"category,omitempty"`
	Code              CodeableConcept   `json:"code"`
	Subject           *Reference        `json:"subject,omitempty"`
	EffectiveDateTime string            `json:"effectiveDateTime,omitempty"`
	Issued            string            `json:"issued,omitempty"`
	ObservationValue
	Component []ObservationComponent `json:"component,omitempty"`

	extra unknownFields
}

type ObservationComponent struct {
	Code CodeableConcept `json:"code"`
	ObservationValue

	extra unknownFields
}

// ObservationValue is FHIR's value[x]: at most one of the fields is set.
type ObservationValue struct {
	ValueQuantity        *Quantity        `json:"valueQuantity,omitempty"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty"`
	ValueString          *string          `json:"valueString,omitempty"`
	ValueBoolean         *bool            `json:"valueBoolean,omitempty"`
	ValueInteger         *int             `json:"valueInteger,omitempty"`
}

type ValueKind int

const (
	ValueKindNone ValueKind = iota
	ValueKindQuantity
	ValueKindCodeableConcept
	ValueKindString
	ValueKindBoolean
	ValueKindInteger
)

func (v ObservationValue) Kind() ValueKind {
	switch {
	case v.ValueQuantity != nil:
		return ValueKindQuantity
	case v.ValueCodeableConcept != nil:
		return ValueKindCodeableConcept
	case v.ValueString != nil:
		return ValueKindString
	case v.ValueBoolean != nil:
		return ValueKindBoolean
	case v.ValueInteger != nil:
		return ValueKindInteger
	default:
		return ValueKindNone
	}
}

func QuantityValue(q Quantity) ObservationValue {
	return ObservationValue{ValueQuantity: &q}
}

func CodeableConceptValue(c CodeableConcept) ObservationValue {
	return ObservationValue{ValueCodeableConcept: &c}
}

func StringValue(s string) ObservationValue {
	return ObservationValue{ValueString: &s}
}

func BooleanValue(b bool) ObservationValue {
	return ObservationValue{ValueBoolean: &b}
}

func IntegerValue(i int) ObservationValue {
	return ObservationValue{ValueInteger: &i}
}
