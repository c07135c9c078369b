package screening

import (
	"math"
	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
	"neohearts-service/internal/pkg/utils"
)

// Mapper reads a Record back out of a stored Bundle. It is best effort:
// Observations it does not know are skipped, and a bundle without a Patient
// yields empty identity fields.
type Mapper struct {
	table *CodingTable
}

func NewMapper(table *CodingTable) *Mapper {
	return &Mapper{table: table}
}

// Map maps a Bundle using DefaultTable.
func Map(bundle *fhir_dto.Bundle) Record {
	return NewMapper(DefaultTable).Map(bundle)
}

// MapJSON parses raw Bundle JSON and maps it using DefaultTable.
func MapJSON(data []byte) (Record, error) {
	bundle, err := fhir_dto.ParseBundle(data)
	if err != nil {
		return Record{}, exceptions.ErrMapFHIRBundle(err)
	}
	return Map(bundle), nil
}

func (m *Mapper) Map(bundle *fhir_dto.Bundle) Record {
	var record Record
	if bundle == nil {
		return record
	}

	if entry := bundle.PatientEntry(); entry != nil {
		readPatient(entry.Resource.Patient, &record)
	}

	for _, observation := range bundle.Observations() {
		entry, ok := m.table.resolveObservation(observation.Code)
		if !ok {
			continue
		}
		if !entry.IsGroup() {
			entry.Assign(&record, observation.ObservationValue)
			continue
		}
		for _, stored := range observation.Component {
			component, ok := resolveComponent(entry, stored.Code)
			if !ok {
				continue
			}
			component.Assign(&record, stored.ObservationValue)
		}
	}

	return record
}

func readPatient(patient *fhir_dto.Patient, record *Record) {
	record.ID = patient.ID
	if len(patient.Name) > 0 {
		name := patient.Name[0]
		record.LastName = name.Family
		if len(name.Given) > 0 {
			record.FirstName = name.Given[0]
		}
	}
	record.Sex = patient.Gender
	record.DOB = patient.BirthDate
	record.Active = patient.IsActive()

	if extension := patient.FindExtension(constvars.FhirPatientAgeExtensionUrl); extension != nil && extension.ValueQuantity != nil {
		record.Age = int(math.Round(extension.ValueQuantity.Value))
	}
	if patient.ManagingOrganization != nil && patient.ManagingOrganization.Reference != "" {
		record.OrganizationID = utils.LastPathSegment(patient.ManagingOrganization.Reference)
	}
}
