package fhir_dto

type Patient struct {
	ResourceType         string       `json:"resourceType"`
	ID                   string       `json:"id,omitempty"`
	Meta                 *Meta        `json:"meta,omitempty"`
	Identifier           []Identifier `json:"identifier,omitempty"`
	Active               *bool        `json:"active,omitempty"`
	Name                 []HumanName  `json:"name,omitempty"`
	Gender               string       `json:"gender,omitempty"`
	BirthDate            string       `json:"birthDate,omitempty"`
	Extension            []Extension  `json:"extension,omitempty"`
	ManagingOrganization *Reference   `json:"managingOrganization,omitempty"`

	extra unknownFields
}

// FindExtension returns the first extension with the given url, or nil.
func (p *Patient) FindExtension(url string) *Extension {
	for i := range p.Extension {
		if p.Extension[i].Url == url {
			return &p.Extension[i]
		}
	}
	return nil
}

func (p *Patient) IsActive() bool {
	return p.Active == nil || *p.Active
}
