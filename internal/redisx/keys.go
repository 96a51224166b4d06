package redisx

import "time"

const (
	// Shopper session: session:{token} -> JSON shop.Session
	KeySession = "session:%s"

	// Customer notification feed: notifications:{user_id} -> list, newest first
	KeyNotifications = "notifications:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLDedup         = 48 * time.Hour
	TTLNotifications = 30 * 24 * time.Hour
)

// MaxNotifications caps each user's feed.
const MaxNotifications = 50
