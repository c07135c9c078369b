package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_JWT_SUBJECT_KEY          ContextKey = "jwt_subject"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	URLParamID = "id"
)

const (
	CacheKeyNewbornBundleFormat = "newborn:bundle:%s"
	LockKeyNewbornFormat        = "newborn:lock:%s"
)
