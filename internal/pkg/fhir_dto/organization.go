package fhir_dto

type Organization struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id,omitempty"`
	Meta         *Meta        `json:"meta,omitempty"`
	Identifier   []Identifier `json:"identifier,omitempty"`
	Active       bool         `json:"active"`
	Name         string       `json:"name,omitempty"`
	Alias        []string     `json:"alias,omitempty"`
	PartOf       *Reference   `json:"partOf,omitempty"`

	extra unknownFields
}

type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string           `json:"severity"`
	Code        string           `json:"code"`
	Diagnostics string           `json:"diagnostics,omitempty"`
	Details     *CodeableConcept `json:"details,omitempty"`
}

// FirstDiagnostics returns the most useful human-readable message.
func (o OperationOutcome) FirstDiagnostics() string {
	for _, issue := range o.Issue {
		if issue.Diagnostics != "" {
			return issue.Diagnostics
		}
		if issue.Details != nil && issue.Details.Text != "" {
			return issue.Details.Text
		}
	}
	return ""
}
