package screening

import (
	"neohearts-service/internal/pkg/exceptions"
	"neohearts-service/internal/pkg/fhir_dto"
)

// Updater writes a Record into the resources of an existing Bundle. Entries
// are never added or removed, so ids and fullUrls are kept. A record field
// with no matching Observation in the bundle is dropped.
type Updater struct {
	table *CodingTable
}

func NewUpdater(table *CodingTable) *Updater {
	return &Updater{table: table}
}

// Update updates bundle in place using DefaultTable.
func Update(bundle *fhir_dto.Bundle, record *Record) (*fhir_dto.Bundle, error) {
	return NewUpdater(DefaultTable).Update(bundle, record)
}

func (u *Updater) Update(bundle *fhir_dto.Bundle, record *Record) (*fhir_dto.Bundle, error) {
	if bundle == nil {
		return nil, exceptions.ErrPatientEntryMissing(nil)
	}
	entry := bundle.PatientEntry()
	if entry == nil {
		return nil, exceptions.ErrPatientEntryMissing(nil)
	}
	if record == nil {
		return bundle, nil
	}

	writePatientIdentity(entry.Resource.Patient, record)

	for _, observation := range bundle.Observations() {
		registered, ok := u.table.resolveObservation(observation.Code)
		if !ok {
			continue
		}
		if !registered.IsGroup() {
			observation.ObservationValue = registered.Value(record)
			continue
		}
		for i := range observation.Component {
			component, ok := resolveComponent(registered, observation.Component[i].Code)
			if !ok {
				continue
			}
			observation.Component[i].ObservationValue = component.Value(record)
		}
	}

	return bundle, nil
}
