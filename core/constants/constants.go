package constants

import "time"

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyUserStats      = "user:stats:"
)

// Cache TTLs
const (
	UserStatsCacheTTL = 60 * time.Second
)

// Pagination defaults
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Upload limits
const (
	MaxImageUploadBytes = 5 << 20 // 5 MiB
)

// Asynq task types
const (
	TaskEmailRegistrationConfirmed = "email:registration_confirmed"
	TaskEventsCloseExpired         = "events:close_expired"
)

// Asynq queue names
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)
