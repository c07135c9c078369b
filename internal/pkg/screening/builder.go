package screening

import (
	"fmt"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/utils"
	"strings"
	"time"
)

// Builder turns a Record into a transaction Bundle ready to POST.
type Builder struct {
	table *CodingTable
	now   func() time.Time
	newID func() string
}

func NewBuilder(table *CodingTable) *Builder {
	return &Builder{
		table: table,
		now:   time.Now,
		newID: utils.NewUrnUUID,
	}
}

// Build builds a Bundle from record using DefaultTable.
func Build(record *Record) (*fhir_dto.Bundle, error) {
	return NewBuilder(DefaultTable).Build(record)
}

// ValidateRecord checks the identity fields and value ranges of a record.
func ValidateRecord(record *Record) error {
	if record == nil {
		return exceptions.ErrInputValidation(fmt.Errorf("record is empty"))
	}
	if err := utils.ValidateStruct(record); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func (b *Builder) Build(record *Record) (*fhir_dto.Bundle, error) {
	if err := ValidateRecord(record); err != nil {
		return nil, err
	}

	patientUrl := b.newID()
	effective := b.now().UTC().Format(time.RFC3339)

	bundle := &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		ID:           "bundle-transaction",
		Type:         constvars.FhirBundleTypeTransaction,
		Entry:        make([]fhir_dto.BundleEntry, 0, len(b.table.Entries())+1),
	}
	bundle.Entry = append(bundle.Entry, fhir_dto.BundleEntry{
		FullUrl:  patientUrl,
		Resource: fhir_dto.NewPatientResource(buildPatient(record)),
		Request:  postRequest(constvars.ResourcePatient),
	})

	subject := &fhir_dto.Reference{Reference: patientUrl}
	for _, entry := range b.table.Entries() {
		observation := &fhir_dto.Observation{
			Status:            constvars.FhirObservationStatusFinal,
			Category:          []fhir_dto.CodeableConcept{entry.Category.CodeableConcept()},
			Code:              entry.Code(),
			Subject:           subject,
			EffectiveDateTime: effective,
		}
		if entry.IsGroup() {
			observation.Component = make([]fhir_dto.ObservationComponent, 0, len(entry.Components))
			for _, component := range entry.Components {
				observation.Component = append(observation.Component, fhir_dto.ObservationComponent{
					Code:             component.Code(),
					ObservationValue: component.Value(record),
				})
			}
		} else {
			observation.ObservationValue = entry.Value(record)
		}

		bundle.Entry = append(bundle.Entry, fhir_dto.BundleEntry{
			FullUrl:  b.newID(),
			Resource: fhir_dto.NewObservationResource(observation),
			Request:  postRequest(constvars.ResourceObservation),
		})
	}

	return bundle, nil
}

func buildPatient(record *Record) *fhir_dto.Patient {
	active := true
	patient := &fhir_dto.Patient{
		Identifier: []fhir_dto.Identifier{{
			Use:    constvars.FhirIdentifierUseOfficial,
			System: constvars.FhirNewbornIdentifierSystem,
			Value:  utils.NewNewbornIdentifierValue(),
		}},
		Active: &active,
	}
	writePatientIdentity(patient, record)
	return patient
}

// writePatientIdentity copies the record's identity onto patient, keeping
// whatever the record has no field for.
func writePatientIdentity(patient *fhir_dto.Patient, record *Record) {
	if len(patient.Name) == 0 {
		patient.Name = []fhir_dto.HumanName{{}}
	}
	name := &patient.Name[0]
	name.Family = record.LastName
	if len(name.Given) == 0 {
		name.Given = []string{record.FirstName}
	} else {
		name.Given[0] = record.FirstName
	}

	patient.Gender = strings.ToLower(strings.TrimSpace(record.Sex))
	patient.BirthDate = record.DOB

	age := fhir_dto.Quantity{
		Value:  float64(record.Age),
		Unit:   constvars.FhirPatientAgeUnit,
		System: constvars.FhirSystemUCUM,
		Code:   "h",
	}
	if extension := patient.FindExtension(constvars.FhirPatientAgeExtensionUrl); extension != nil {
		extension.ValueQuantity = &age
	} else {
		patient.Extension = append(patient.Extension, fhir_dto.Extension{
			Url:           constvars.FhirPatientAgeExtensionUrl,
			ValueQuantity: &age,
		})
	}

	if record.OrganizationID != "" {
		reference := fmt.Sprintf(constvars.FhirResourcePathFormat, constvars.ResourceOrganization, record.OrganizationID)
		if patient.ManagingOrganization == nil || patient.ManagingOrganization.Reference != reference {
			patient.ManagingOrganization = &fhir_dto.Reference{Reference: reference}
		}
	}
}

func postRequest(resourceType string) *fhir_dto.BundleRequest {
	return &fhir_dto.BundleRequest{Method: constvars.MethodPost, Url: resourceType}
}
