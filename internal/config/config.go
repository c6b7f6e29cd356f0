package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"      validate:"required"`
	Search     SearchConfig     `mapstructure:"search"     validate:"required"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	// TokenSecret is the process-wide key used to sign session tokens.
	TokenSecret string `mapstructure:"token_secret" validate:"required,min=32"`
	// ExpirySeconds is how long an issued token stays valid.
	ExpirySeconds int `mapstructure:"expiry_seconds" validate:"required,gt=0"`
	BcryptCost    int `mapstructure:"bcrypt_cost"    validate:"required,gte=4,lte=31"`
}

// CacheConfig controls the memoization layer in front of task listings.
type CacheConfig struct {
	Backend    string `mapstructure:"backend"     validate:"required,oneof=memory redis none"`
	RedisAddr  string `mapstructure:"redis_addr"  validate:"required_if=Backend redis"`
	Prefix     string `mapstructure:"prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"required,gt=0"`
}

// SearchConfig tunes the fuzzy title matcher.
type SearchConfig struct {
	DistanceThreshold int `mapstructure:"distance_threshold" validate:"required,gt=0"`
	MinQueryLength    int `mapstructure:"min_query_length"   validate:"required,gt=0"`
}

// PaginationConfig holds listing defaults.
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size" validate:"required,gt=0"`
}
