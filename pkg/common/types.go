package common

// CacheConfig holds the Redis connection settings.
type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}
