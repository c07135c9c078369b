package fhir_dto

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`

	extra unknownFields
}

type Identifier struct {
	Use    string `json:"use,omitempty"`
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`

	extra unknownFields
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`

	extra unknownFields
}

// PrimaryCode is the code of the first coding, which is the one the coding
// table dispatches on.
func (c CodeableConcept) PrimaryCode() string {
	if len(c.Coding) == 0 {
		return ""
	}
	return c.Coding[0].Code
}

func (c CodeableConcept) PrimaryDisplay() string {
	if len(c.Coding) == 0 {
		return ""
	}
	return c.Coding[0].Display
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Version string `json:"version,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`

	extra unknownFields
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Text   string   `json:"text,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty"`

	extra unknownFields
}

type Meta struct {
	VersionId   string   `json:"versionId,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Source      string   `json:"source,omitempty"`
	Profile     []string `json:"profile,omitempty"`

	extra unknownFields
}

type Quantity struct {
	Value      float64 `json:"value"`
	Comparator string  `json:"comparator,omitempty"`
	Unit       string  `json:"unit,omitempty"`
	System     string  `json:"system,omitempty"`
	Code       string  `json:"code,omitempty"`
}

type Extension struct {
	Url           string    `json:"url,omitempty"`
	ValueQuantity *Quantity `json:"valueQuantity,omitempty"`
	ValueString   string    `json:"valueString,omitempty"`
	ValueCode     string    `json:"valueCode,omitempty"`

	extra unknownFields
}
