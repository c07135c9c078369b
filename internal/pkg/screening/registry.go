package screening

import (
	"fmt"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/fhir_dto"
	"strings"
)

type ValueShape int

const (
	ShapeQuantity ValueShape = iota + 1
	ShapeCodeableConcept
	ShapeString
	ShapeBoolean
	ShapeInteger
	ShapeComponents
)

func (s ValueShape) String() string {
	switch s {
	case ShapeQuantity:
		return "Quantity"
	case ShapeCodeableConcept:
		return "CodeableConcept"
	case ShapeString:
		return "String"
	case ShapeBoolean:
		return "Boolean"
	case ShapeInteger:
		return "Integer"
	case ShapeComponents:
		return "Components"
	default:
		return "Unknown"
	}
}

type Category int

const (
	CategoryVitalSigns Category = iota
	CategoryPhysicalExam
)

func (c Category) CodeableConcept() fhir_dto.CodeableConcept {
	coding := fhir_dto.Coding{
		System:  constvars.FhirSystemObservationCategory,
		Code:    constvars.FhirCategoryVitalSigns,
		Display: constvars.FhirCategoryVitalSignsDisplay,
	}
	if c == CategoryPhysicalExam {
		coding.Code = constvars.FhirCategoryPhysicalExam
		coding.Display = constvars.FhirCategoryPhysicalExamDisplay
	}
	return fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{coding}}
}

type Unit struct {
	Unit   string
	System string
	Code   string
}

// CodingEntry ties one record field, or one grouped Observation, to its
// terminology coding and value shape. Components are set only on groups and
// Parent only on components.
type CodingEntry struct {
	Key        string
	Coding     fhir_dto.Coding
	Label      string
	Category   Category
	Shape      ValueShape
	Unit       Unit
	Concepts   *ConceptSet
	Components []*CodingEntry
	Parent     *CodingEntry

	get func(*Record) fhir_dto.ObservationValue
	set func(*Record, fhir_dto.ObservationValue)
}

func (e *CodingEntry) IsGroup() bool {
	return e.Shape == ShapeComponents
}

// Code is the CodeableConcept written to code (or component.code).
func (e *CodingEntry) Code() fhir_dto.CodeableConcept {
	concept := fhir_dto.CodeableConcept{Text: e.Label}
	if e.Coding.Code != "" {
		concept.Coding = []fhir_dto.Coding{e.Coding}
	}
	return concept
}

// Value reads the entry's field from the record as a FHIR value. The zero
// ObservationValue means nothing is recorded.
func (e *CodingEntry) Value(r *Record) fhir_dto.ObservationValue {
	if e.get == nil {
		return fhir_dto.ObservationValue{}
	}
	return e.get(r)
}

// Assign writes a FHIR value into the entry's record field. Values of the
// wrong shape are ignored.
func (e *CodingEntry) Assign(r *Record, value fhir_dto.ObservationValue) {
	if e.set == nil {
		return
	}
	e.set(r, value)
}

// CodingTable is the ordered registry shared by the builder, mapper and
// updater.
type CodingTable struct {
	entries []*CodingEntry
	byKey   map[string]*CodingEntry
	byCode  map[string][]*CodingEntry
}

func NewCodingTable(entries ...*CodingEntry) (*CodingTable, error) {
	table := &CodingTable{
		entries: entries,
		byKey:   make(map[string]*CodingEntry),
		byCode:  make(map[string][]*CodingEntry),
	}
	for _, entry := range entries {
		table.index(entry)
		for _, component := range entry.Components {
			component.Parent = entry
			table.index(component)
		}
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

func MustCodingTable(entries ...*CodingEntry) *CodingTable {
	table, err := NewCodingTable(entries...)
	if err != nil {
		panic(err)
	}
	return table
}

func (t *CodingTable) index(entry *CodingEntry) {
	t.byKey[entry.Key] = entry
	if entry.Coding.Code != "" {
		t.byCode[entry.Coding.Code] = append(t.byCode[entry.Coding.Code], entry)
	}
}

// Validate rejects duplicate keys, duplicate (code, label) pairs and any
// reused code that is not disambiguated by a label on every use.
func (t *CodingTable) Validate() error {
	var problems []string

	seenKeys := make(map[string]int)
	for _, entry := range t.entries {
		seenKeys[entry.Key]++
		if entry.IsGroup() && len(entry.Components) == 0 {
			problems = append(problems, fmt.Sprintf("group %q has no components", entry.Key))
		}
		if !entry.IsGroup() && entry.get == nil {
			problems = append(problems, fmt.Sprintf("field %q has no accessor", entry.Key))
		}
		if entry.Coding.Code == "" && entry.Label == "" {
			problems = append(problems, fmt.Sprintf("entry %q has neither code nor label", entry.Key))
		}
		labels := make(map[string]bool)
		for _, component := range entry.Components {
			seenKeys[component.Key]++
			if component.Label == "" {
				problems = append(problems, fmt.Sprintf("component %q of %q has no label", component.Key, entry.Key))
			}
			if labels[component.Label] {
				problems = append(problems, fmt.Sprintf("label %q repeated inside %q", component.Label, entry.Key))
			}
			labels[component.Label] = true
		}
	}
	for key, count := range seenKeys {
		if count > 1 {
			problems = append(problems, fmt.Sprintf("key %q registered %d times", key, count))
		}
	}

	for code, entries := range t.byCode {
		if len(entries) < 2 {
			continue
		}
		pairs := make(map[string]string)
		for _, entry := range entries {
			if entry.Label == "" {
				problems = append(problems, fmt.Sprintf("code %s is shared but %q has no label", code, entry.Key))
				continue
			}
			if other, ok := pairs[entry.Label]; ok {
				problems = append(problems, fmt.Sprintf("code %s with label %q is used by both %q and %q", code, entry.Label, other, entry.Key))
				continue
			}
			pairs[entry.Label] = entry.Key
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s: %s", constvars.ErrDevCodingTableCollision, strings.Join(problems, "; "))
	}
	return nil
}

// Entries returns the top-level entries in bundle order.
func (t *CodingTable) Entries() []*CodingEntry {
	return t.entries
}

func (t *CodingTable) Lookup(fieldKey string) (*CodingEntry, bool) {
	entry, ok := t.byKey[fieldKey]
	return entry, ok
}

// LookupByCode returns every entry sharing the code, top-level entries and
// components alike.
func (t *CodingTable) LookupByCode(code string) []*CodingEntry {
	return t.byCode[code]
}

func (t *CodingTable) LookupByCodeAndLabel(code, label string) (*CodingEntry, bool) {
	for _, entry := range t.byCode[code] {
		if entry.Label == label {
			return entry, true
		}
	}
	return nil, false
}

// resolveObservation finds the top-level entry for a stored Observation. The
// label decides whenever the code is shared. A code-less Observation is
// matched on its label alone.
func (t *CodingTable) resolveObservation(code fhir_dto.CodeableConcept) (*CodingEntry, bool) {
	primary := code.PrimaryCode()
	if primary == "" {
		return findByLabel(t.entries, code.Text)
	}

	var candidates []*CodingEntry
	for _, entry := range t.byCode[primary] {
		if entry.Parent != nil {
			continue
		}
		if entry.Label == code.Text {
			return entry, true
		}
		candidates = append(candidates, entry)
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	return nil, false
}

// resolveComponent finds the component entry of a group for a stored
// component, preferring an exact label match and falling back to a code that
// is unique inside the group.
func resolveComponent(group *CodingEntry, code fhir_dto.CodeableConcept) (*CodingEntry, bool) {
	if entry, ok := findByLabel(group.Components, code.Text); ok {
		return entry, true
	}

	primary := code.PrimaryCode()
	if primary == "" {
		return nil, false
	}
	var match *CodingEntry
	for _, component := range group.Components {
		if component.Coding.Code != primary {
			continue
		}
		if match != nil {
			return nil, false
		}
		match = component
	}
	return match, match != nil
}

func findByLabel(entries []*CodingEntry, label string) (*CodingEntry, bool) {
	if label == "" {
		return nil, false
	}
	for _, entry := range entries {
		if entry.Label == label {
			return entry, true
		}
	}
	return nil, false
}
