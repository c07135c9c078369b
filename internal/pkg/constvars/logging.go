package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingOperationKey      = "operation"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingFhirUrlKey        = "fhir_url"
	LoggingResourceTypeKey   = "resource_type"
	LoggingResourceIDKey     = "resource_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingOrganizationIDKey = "organization_id"
	LoggingEntryCountKey     = "entry_count"
	LoggingPatientCountKey   = "patient_count"
	LoggingOrgCountKey       = "organization_count"
	LoggingFailureCountKey   = "failure_count"
	LoggingCacheKey          = "cache_key"
	LoggingCacheHitKey       = "cache_hit"
	LoggingSubjectKey        = "subject"
	LoggingAttemptedCountKey = "attempted_count"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingRoutePatternKey   = "route_pattern"
	LoggingResponseBytesKey  = "response_bytes"
)
