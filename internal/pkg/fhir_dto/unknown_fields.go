package fhir_dto

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// unknownFields holds the members of a decoded FHIR element that the typed
// model has no field for. They are written back unchanged on marshal, so a
// full-resource PUT never truncates what the store already holds.
type unknownFields map[string]json.RawMessage

var ownedKeysCache sync.Map

// ownedKeys lists the json member names a struct type models, including the
// members of embedded structs.
func ownedKeys(t reflect.Type) map[string]bool {
	if cached, ok := ownedKeysCache.Load(t); ok {
		return cached.(map[string]bool)
	}
	owned := map[string]bool{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct {
			for key := range ownedKeys(field.Type) {
				owned[key] = true
			}
			continue
		}
		if !field.IsExported() || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		owned[name] = true
	}
	ownedKeysCache.Store(t, owned)
	return owned
}

func unmarshalKeepingUnknown[A any](data []byte, alias *A, extra *unknownFields) error {
	if err := json.Unmarshal(data, alias); err != nil {
		return err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	owned := ownedKeys(reflect.TypeOf(alias).Elem())
	*extra = nil
	for key, raw := range members {
		if owned[key] {
			continue
		}
		if *extra == nil {
			*extra = unknownFields{}
		}
		(*extra)[key] = append(json.RawMessage(nil), raw...)
	}
	return nil
}

// marshalKeepingUnknown encodes alias and appends the unknown members after
// the modeled ones. Members for which replaced reports true are dropped.
func marshalKeepingUnknown[A any](alias A, extra unknownFields, replaced func(key string) bool) ([]byte, error) {
	modeled, err := json.Marshal(alias)
	if err != nil || len(extra) == 0 {
		return modeled, err
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		if replaced != nil && replaced(key) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return modeled, nil
	}
	sort.Strings(keys)

	modeled = bytes.TrimSpace(modeled)
	if len(modeled) < 2 || modeled[len(modeled)-1] != '}' {
		return nil, fmt.Errorf("cannot append members to %s", modeled)
	}

	var buf bytes.Buffer
	buf.Write(modeled[:len(modeled)-1])
	needComma := len(bytes.TrimSpace(modeled[1:len(modeled)-1])) > 0
	for _, key := range keys {
		if needComma {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[key])
		needComma = true
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// isValueMember matches FHIR value[x] members such as valueRange or
// valuePeriod.
func isValueMember(key string) bool {
	return strings.HasPrefix(key, "value") && len(key) > len("value")
}

type (
	patientAlias              Patient
	observationAlias          Observation
	observationComponentAlias ObservationComponent
	organizationAlias         Organization
	extensionAlias            Extension
	metaAlias                 Meta
	identifierAlias           Identifier
	humanNameAlias            HumanName
	referenceAlias            Reference
	codeableConceptAlias      CodeableConcept
	codingAlias               Coding
)

func (p *Patient) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*patientAlias)(p), &p.extra)
}

func (p Patient) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(patientAlias(p), p.extra, nil)
}

func (o *Observation) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*observationAlias)(o), &o.extra)
}

// MarshalJSON drops a stored value[x] the model cannot read, and any
// dataAbsentReason, once a modeled value is set. At most one value[x] is
// ever written.
func (o Observation) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(observationAlias(o), o.extra, valueReplaced(o.ObservationValue))
}

func (c *ObservationComponent) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*observationComponentAlias)(c), &c.extra)
}

func (c ObservationComponent) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(observationComponentAlias(c), c.extra, valueReplaced(c.ObservationValue))
}

func valueReplaced(value ObservationValue) func(string) bool {
	if value.Kind() == ValueKindNone {
		return nil
	}
	return func(key string) bool {
		return isValueMember(key) || key == "dataAbsentReason"
	}
}

func (o *Organization) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*organizationAlias)(o), &o.extra)
}

func (o Organization) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(organizationAlias(o), o.extra, nil)
}

func (e *Extension) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*extensionAlias)(e), &e.extra)
}

func (e Extension) MarshalJSON() ([]byte, error) {
	var replaced func(string) bool
	if e.ValueQuantity != nil || e.ValueString != "" || e.ValueCode != "" {
		replaced = isValueMember
	}
	return marshalKeepingUnknown(extensionAlias(e), e.extra, replaced)
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*metaAlias)(m), &m.extra)
}

func (m Meta) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(metaAlias(m), m.extra, nil)
}

func (i *Identifier) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*identifierAlias)(i), &i.extra)
}

func (i Identifier) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(identifierAlias(i), i.extra, nil)
}

func (n *HumanName) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*humanNameAlias)(n), &n.extra)
}

func (n HumanName) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(humanNameAlias(n), n.extra, nil)
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*referenceAlias)(r), &r.extra)
}

func (r Reference) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(referenceAlias(r), r.extra, nil)
}

func (c *CodeableConcept) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*codeableConceptAlias)(c), &c.extra)
}

func (c CodeableConcept) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(codeableConceptAlias(c), c.extra, nil)
}

func (c *Coding) UnmarshalJSON(data []byte) error {
	return unmarshalKeepingUnknown(data, (*codingAlias)(c), &c.extra)
}

func (c Coding) MarshalJSON() ([]byte, error) {
	return marshalKeepingUnknown(codingAlias(c), c.extra, nil)
}
