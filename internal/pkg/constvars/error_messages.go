package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"oneof":       "must be one of [%s]",
	"gte":         "must be greater than or equal to %s",
	"lte":         "must be less than or equal to %s",
	"datetime":    "must be a date in %s format",
	"fhir_gender": "must be one of [male female other unknown]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"gte":      true,
	"lte":      true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientStoredRecordUnreadable        = "the stored record could not be read"
	ErrClientRecordNotFound                = "the requested record was not found"
	ErrClientPartialUpdate                 = "some parts of the record could not be saved"
	ErrClientUpstreamUnavailable           = "the clinical data store is unavailable"
	ErrClientRecordBusy                    = "the record is being changed by another request, please retry"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "url param %s is invalid"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevReadHTTPResponse           = "failed to read HTTP response body"
	ErrDevServerDeadlineExceeded     = "deadline exceeded"
	ErrDevServerProcess              = "failed to process the request"

	// FHIR store messages
	ErrDevCreateFHIRResource = "failed to create FHIR %s"
	ErrDevGetFHIRResource    = "failed to get FHIR %s"
	ErrDevUpdateFHIRResource = "failed to update FHIR %s"
	ErrDevDeleteFHIRResource = "failed to delete FHIR %s"
	ErrDevDecodeFHIRResponse = "failed to decode FHIR %s response"
	ErrDevFHIRUpstreamStatus = "FHIR store responded %d for %s"
	ErrDevFHIRUpdatePartial  = "%d of %d FHIR resources failed to update"

	// Mapping messages
	ErrDevMapFHIRBundle        = "failed to map FHIR bundle into newborn record"
	ErrDevPatientEntryMissing  = "bundle has no Patient entry"
	ErrDevCodingTableCollision = "coding table collision"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"

	// Redis messages
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data into redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"
	ErrDevRecordLocked    = "record %s is locked by another request"

	// Secrets messages
	ErrDevSecretFetch = "failed to fetch secret %s"
)

const (
	ResponseUnknown = "unknown"
)
