package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"numeric":  "must be a number",
	"timezone": "must be a valid IANA timezone identifier",
	"date_key": "must be a date formatted as YYYY-MM-DD",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientSelectionNotFound             = "selection not found"
	ErrClientGroupNotFound                 = "group not found"
	ErrClientGroupCodeNotFound             = "no group found with the given code"
	ErrClientSelectionInUseFormat          = "This selection is still in use by %s"
	ErrClientAlreadyInGroup                = "this selection already joined the group"
	ErrClientNotGroupMember                = "this selection is not part of the group"
	ErrClientTooManyCodeRequests           = "too many groups created, please try again shortly"
	ErrClientInvalidTimezone               = "unknown timezone"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "request validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseDate          = "cannot parse the requested date"
	ErrDevURLParamIDValidation     = "missing or malformed %s url parameter"
	ErrDevServerDeadlineExceeded   = "context deadline exceeded while processing"
	ErrDevServerProcess            = "unexpected error while processing request"
	ErrDevAuthTokenMissing         = "authorization token missing from request"
	ErrDevAuthTokenInvalid         = "authorization token invalid or expired"
	ErrDevAuthInvalidSession       = "session not found or expired in session store"
	ErrDevSelectionNotFound        = "selection document does not exist"
	ErrDevGroupNotFound            = "group document does not exist"
	ErrDevGroupCodeExhausted       = "could not generate an unused referral code"
	ErrDevTimezoneLoad             = "cannot load timezone location data"
	ErrDevDBFailedToFindDocument   = "failed to find document(s) to database"
	ErrDevDBFailedToInsertDocument = "failed to insert document to database"
	ErrDevDBFailedToUpdateDocument = "failed to update document to database"
	ErrDevDBFailedToDeleteDocument = "failed to delete document to database"
	ErrDevDBFailedToIterateCursor  = "failed to iterate database cursor"
	ErrDevDBStringNotObjectID      = "given string cannot be converted to mongo ObjectID"
	ErrDevRedisGetNoData           = "failed to get data with key %s from redis"
	ErrDevRedisGetData             = "failed to get data from redis"
	ErrDevRedisSetData             = "failed to set data to redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevRabbitMQPublish          = "failed to publish message to queue %s"
	ErrDevRabbitMQConsume          = "failed to consume message from queue %s"
	ErrDevMinioCreateObject        = "failed to create object in bucket %s"
	ErrDevMinioPresignObject       = "failed to presign object url in bucket %s"
)
