package constants

import "time"

const (
	CollectionCacheKey = "user_collection" // Full listing, newest first

	// A read that loaded from the store before a write can Set its listing
	// after that write's Invalidate. The expiry bounds how long such a stale
	// listing is served.
	CollectionCacheExpiry = 2 * time.Minute
)
