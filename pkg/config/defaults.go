package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "atelier"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Slot stride is fixed at 30 minutes across the product; the env knob
	// exists for test rigs only.
	DefaultSlotStrideMin     = 30
	DefaultBookingWindowDays = 60
	DefaultSessionTTL        = 30 * time.Minute
	DefaultDefaultOpensAt    = "10:00"
	DefaultDefaultClosesAt   = "18:00"

	DefaultAvailabilityServiceURL = "http://localhost:8081"
	DefaultCatalogServiceURL      = "http://localhost:8082"
	DefaultRequestsServiceURL     = "http://localhost:8083"

	DefaultPaginationLimit = 100
)

var (
	// Studios in the US corpus are typically closed Sunday and Monday.
	DefaultOpenWeekdaysUS = []int{2, 3, 4, 5, 6}
	// Israeli studios run Sunday through Thursday.
	DefaultOpenWeekdaysIL = []int{7, 1, 2, 3, 4}
)
