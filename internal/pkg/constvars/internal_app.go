package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_USER_ID_KEY              ContextKey = "user_id"
	CONTEXT_USER_NAME_KEY            ContextKey = "user_name"
)

const (
	REQUEST_ID_PREFIX = "MTCUE_SVC_"
)

const (
	MongoCollectionSelections = "Selections"
	MongoCollectionGroups     = "Groups"
)

// Referral codes deliberately omit lookalike characters (I, O, 0, 1).
const (
	ReferralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVXYZ23456789"
	ReferralCodeLength   = 5
)

const (
	RedisSessionKeyFormat    = "session:%s"
	RedisCompactionKeyFormat = "compaction:fingerprint:%s"
	RedisCompactionLockKey   = "compaction:leader"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
