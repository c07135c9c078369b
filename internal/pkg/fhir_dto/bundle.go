package fhir_dto

import (
	"fmt"
	"neohearts-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
	Type         string        `json:"type"`
	Total        *int          `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	Url      string `json:"url"`
}

type BundleEntry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource *Resource       `json:"resource,omitempty"`
	Request  *BundleRequest  `json:"request,omitempty"`
	Response *BundleResponse `json:"response,omitempty"`
}

type BundleRequest struct {
	Method string `json:"method"`
	Url    string `json:"url"`
}

type BundleResponse struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
	Etag     string `json:"etag,omitempty"`
}

// Resource is one of Patient, Observation or Organization. Any other
// resource type is kept as raw JSON so it survives a decode/encode cycle.
type Resource struct {
	Patient      *Patient
	Observation  *Observation
	Organization *Organization

	resourceType string
	raw          json.RawMessage
}

func NewPatientResource(p *Patient) *Resource {
	p.ResourceType = constvars.ResourcePatient
	return &Resource{Patient: p, resourceType: constvars.ResourcePatient}
}

func NewObservationResource(o *Observation) *Resource {
	o.ResourceType = constvars.ResourceObservation
	return &Resource{Observation: o, resourceType: constvars.ResourceObservation}
}

func NewOrganizationResource(o *Organization) *Resource {
	o.ResourceType = constvars.ResourceOrganization
	return &Resource{Organization: o, resourceType: constvars.ResourceOrganization}
}

func (r *Resource) ResourceType() string {
	switch {
	case r.Patient != nil:
		return constvars.ResourcePatient
	case r.Observation != nil:
		return constvars.ResourceObservation
	case r.Organization != nil:
		return constvars.ResourceOrganization
	default:
		return r.resourceType
	}
}

func (r *Resource) ID() string {
	switch {
	case r.Patient != nil:
		return r.Patient.ID
	case r.Observation != nil:
		return r.Observation.ID
	case r.Organization != nil:
		return r.Organization.ID
	default:
		var probe struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(r.raw, &probe)
		return probe.ID
	}
}

func (r Resource) MarshalJSON() ([]byte, error) {
	switch {
	case r.Patient != nil:
		r.Patient.ResourceType = constvars.ResourcePatient
		return json.Marshal(r.Patient)
	case r.Observation != nil:
		r.Observation.ResourceType = constvars.ResourceObservation
		return json.Marshal(r.Observation)
	case r.Organization != nil:
		r.Organization.ResourceType = constvars.ResourceOrganization
		return json.Marshal(r.Organization)
	case len(r.raw) > 0:
		return r.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	var probe struct {
		ResourceType string `json:"resourceType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	*r = Resource{resourceType: probe.ResourceType}
	switch probe.ResourceType {
	case constvars.ResourcePatient:
		r.Patient = new(Patient)
		return json.Unmarshal(data, r.Patient)
	case constvars.ResourceObservation:
		r.Observation = new(Observation)
		return json.Unmarshal(data, r.Observation)
	case constvars.ResourceOrganization:
		r.Organization = new(Organization)
		return json.Unmarshal(data, r.Organization)
	case "":
		return fmt.Errorf("resource has no resourceType")
	default:
		r.raw = append(json.RawMessage(nil), data...)
		return nil
	}
}

// PatientEntry returns the first Patient entry, or nil.
func (b *Bundle) PatientEntry() *BundleEntry {
	for i := range b.Entry {
		if b.Entry[i].Resource != nil && b.Entry[i].Resource.Patient != nil {
			return &b.Entry[i]
		}
	}
	return nil
}

// Observations returns every Observation in entry order.
func (b *Bundle) Observations() []*Observation {
	observations := make([]*Observation, 0, len(b.Entry))
	for _, entry := range b.Entry {
		if entry.Resource != nil && entry.Resource.Observation != nil {
			observations = append(observations, entry.Resource.Observation)
		}
	}
	return observations
}

func ParseBundle(data []byte) (*Bundle, error) {
	bundle := new(Bundle)
	if err := json.Unmarshal(data, bundle); err != nil {
		return nil, err
	}
	if bundle.ResourceType != constvars.ResourceBundle {
		return nil, fmt.Errorf("expected resourceType %s, got %q", constvars.ResourceBundle, bundle.ResourceType)
	}
	return bundle, nil
}
