package screening

import (
	"math"
	"neohearts-service/internal/pkg/fhir_dto"
)

// The constructors below bind a record field to a value shape. Each one
// produces the matching getter and setter so the three traversals can never
// disagree on how a field is encoded.

func quantityField(key string, coding fhir_dto.Coding, label string, unit Unit, ref func(*Record) *float64) *CodingEntry {
	return &CodingEntry{
		Key:    key,
		Coding: coding,
		Label:  label,
		Shape:  ShapeQuantity,
		Unit:   unit,
		get: func(r *Record) fhir_dto.ObservationValue {
			return fhir_dto.QuantityValue(fhir_dto.Quantity{
				Value:  *ref(r),
				Unit:   unit.Unit,
				System: unit.System,
				Code:   unit.Code,
			})
		},
		set: func(r *Record, v fhir_dto.ObservationValue) {
			if v.ValueQuantity != nil {
				*ref(r) = v.ValueQuantity.Value
			}
		},
	}
}

// wholeQuantityField stores an integer record field as a Quantity.
func wholeQuantityField(key string, coding fhir_dto.Coding, label string, unit Unit, ref func(*Record) *int) *CodingEntry {
	return &CodingEntry{
		Key:    key,
		Coding: coding,
		Label:  label,
		Shape:  ShapeQuantity,
		Unit:   unit,
		get: func(r *Record) fhir_dto.ObservationValue {
			return fhir_dto.QuantityValue(fhir_dto.Quantity{
				Value:  float64(*ref(r)),
				Unit:   unit.Unit,
				System: unit.System,
				Code:   unit.Code,
			})
		},
		set: func(r *Record, v fhir_dto.ObservationValue) {
			switch {
			case v.ValueQuantity != nil:
				*ref(r) = int(math.Round(v.ValueQuantity.Value))
			case v.ValueInteger != nil:
				*ref(r) = *v.ValueInteger
			}
		},
	}
}

func integerField(key string, coding fhir_dto.Coding, label string, ref func(*Record) *int) *CodingEntry {
	return &CodingEntry{
		Key:    key,
		Coding: coding,
		Label:  label,
		Shape:  ShapeInteger,
		get: func(r *Record) fhir_dto.ObservationValue {
			return fhir_dto.IntegerValue(*ref(r))
		},
		set: func(r *Record, v fhir_dto.ObservationValue) {
			switch {
			case v.ValueInteger != nil:
				*ref(r) = *v.ValueInteger
			case v.ValueQuantity != nil:
				*ref(r) = int(math.Round(v.ValueQuantity.Value))
			}
		},
	}
}

func stringField(key string, coding fhir_dto.Coding, label string, ref func(*Record) *string) *CodingEntry {
	return &CodingEntry{
		Key:    key,
		Coding: coding,
		Label:  label,
		Shape:  ShapeString,
		get: func(r *Record) fhir_dto.ObservationValue {
			if *ref(r) == "" {
				return fhir_dto.ObservationValue{}
			}
			return fhir_dto.StringValue(*ref(r))
		},
		set: func(r *Record, v fhir_dto.ObservationValue) {
			if v.ValueString != nil {
				*ref(r) = *v.ValueString
			}
		},
	}
}

func booleanField(key string, coding fhir_dto.Coding, label string, ref func(*Record) *bool) *CodingEntry {
	return &CodingEntry{
		Key:    key,
		Coding: coding,
		Label:  label,
		Shape:  ShapeBoolean,
		get: func(r *Record) fhir_dto.ObservationValue {
			return fhir_dto.BooleanValue(*ref(r))
		},
		set: func(r *Record, v fhir_dto.ObservationValue) {
			if v.ValueBoolean != nil {
				*ref(r) = *v.ValueBoolean
			}
		},
	}
}

// conceptField stores a string record field as a coded answer from set. The
// record gets the coding display back, not the original key.
func conceptField(key string, coding fhir_dto.Coding, label string, set *ConceptSet, ref func(*Record) *string) *CodingEntry {
	return &CodingEntry{
		Key:      key,
		Coding:   coding,
		Label:    label,
		Shape:    ShapeCodeableConcept,
		Concepts: set,
		get: func(r *Record) fhir_dto.ObservationValue {
			if *ref(r) == "" {
				return fhir_dto.ObservationValue{}
			}
			return fhir_dto.CodeableConceptValue(set.CodeableConcept(*ref(r)))
		},
		set: func(r *Record, v fhir_dto.ObservationValue) {
			if v.ValueCodeableConcept != nil {
				*ref(r) = set.Display(*v.ValueCodeableConcept)
			}
		},
	}
}

func group(key string, coding fhir_dto.Coding, label string, components ...*CodingEntry) *CodingEntry {
	return &CodingEntry{
		Key:        key,
		Coding:     coding,
		Label:      label,
		Shape:      ShapeComponents,
		Components: components,
	}
}

func (e *CodingEntry) physicalExam() *CodingEntry {
	e.Category = CategoryPhysicalExam
	return e
}
