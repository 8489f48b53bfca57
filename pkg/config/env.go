package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotStrideMin     = "SLOT_STRIDE_MIN"
	EnvBookingWindowDays = "BOOKING_WINDOW_DAYS"
	EnvSessionTTL        = "SESSION_TTL"
	EnvDefaultOpensAt    = "DEFAULT_OPENS_AT"
	EnvDefaultClosesAt   = "DEFAULT_CLOSES_AT"

	EnvAvailabilityServiceURL = "AVAILABILITY_SERVICE_URL"
	EnvCatalogServiceURL      = "CATALOG_SERVICE_URL"
	EnvRequestsServiceURL     = "REQUESTS_SERVICE_URL"
)
