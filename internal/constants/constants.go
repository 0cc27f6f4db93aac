package constants

// Context keys
const (
	ContextKeyUserID       = "user_id"
	ContextKeyUser         = "current_user"
	ContextKeyResourceType = "resource_type"
	ContextKeyID           = "id"
	ContextKeyRequestID    = "request_id"
)

// Session
const (
	SessionCookieName   = "academic_hub_session"
	SessionKeyChatID    = "chat_session_id"
	BearerTokenType     = "bearer"
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// Validation
const (
	MinPasswordLength = 6
	MaxTitleLength    = 255
	MaxGoalProgress   = 100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Uploads
const (
	MaxDocumentSize = 20 << 20 // 20MB
	MaxPhotoSize    = 5 << 20  // 5MB

	RecentDownloadsLimit = 5
)
