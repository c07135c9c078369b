package responses

type CreateNewborn struct {
	PatientID string `json:"patient_id"`
}

type NewbornSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BirthDate      string `json:"birth_date"`
	Gender         string `json:"gender"`
	OrganizationID string `json:"organization_id,omitempty"`
}
