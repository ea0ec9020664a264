package constants

// Session and context keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyGig     = "gig"
	SessionCookieName = "gig_session"
)

// Auth
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Notifications
const (
	// UserRoomPrefix is prepended to a user ID to form its notification room key.
	UserRoomPrefix = "user_"
	// SubscriberBuffer is the number of undelivered events a single live
	// connection may hold before further events are dropped.
	SubscriberBuffer = 16
)
