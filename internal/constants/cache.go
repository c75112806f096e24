package constants

import "time"

const (
	UserCachePrefix = "user" // CacheBuilder adds the colon
	UserCacheExpiry = 7 * 24 * time.Hour
)
