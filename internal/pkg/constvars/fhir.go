package constvars

const (
	ResourceBundle           = "Bundle"
	ResourcePatient          = "Patient"
	ResourceObservation      = "Observation"
	ResourceOrganization     = "Organization"
	ResourceOperationOutcome = "OperationOutcome"
)

const (
	FhirBundleTypeTransaction         = "transaction"
	FhirBundleTypeTransactionResponse = "transaction-response"
	FhirBundleTypeSearchset           = "searchset"
)

const (
	FhirObservationStatusFinal = "final"
)

const (
	FhirIdentifierUseOfficial = "official"
)

const (
	FhirUrnUUIDPrefix = "urn:uuid:"
)

const (
	FhirNewbornIdentifierSystem = "http://example.com/newborn-id-system"
	FhirNewbornIdentifierPrefix = "NB-"
	FhirPatientAgeExtensionUrl  = "http://hl7.org/fhir/StructureDefinition/patient-age"
	FhirPatientAgeUnit          = "hours"
)

const (
	FhirSystemLOINC                  = "http://loinc.org"
	FhirSystemSNOMED                 = "http://snomed.info/sct"
	FhirSystemUCUM                   = "http://unitsofmeasure.org"
	FhirSystemObservationCategory    = "http://terminology.hl7.org/CodeSystem/observation-category"
	FhirSystemObservationInterpreter = "http://terminology.hl7.org/CodeSystem/v3-ObservationInterpretation"
)

const (
	FhirCategoryVitalSigns          = "vital-signs"
	FhirCategoryVitalSignsDisplay   = "Vital Signs"
	FhirCategoryPhysicalExam        = "physical-exam"
	FhirCategoryPhysicalExamDisplay = "Physical Examination"
)

const (
	FhirSearchPatientWithObservations = "%s?_id=%s&_revinclude=Observation:patient"
	FhirSearchActivePatients          = "%s?active=true"
	FhirResourcePathFormat            = "%s/%s"
)

const (
	GoogleHealthcareScope = "https://www.googleapis.com/auth/cloud-healthcare"
)

const (
	FhirAuthModeGoogle = "google"
	FhirAuthModeStatic = "static"
	FhirAuthModeNone   = "none"
)
