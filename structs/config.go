package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Auth      *AuthConfig
	Stripe    *StripeConfig
	Store     *StoreConfig
	Email     *EmailConfig
}

type ServerConfig struct {
	AppName        string        // SarayliDoener
	Environment    string        // development, production
	Port           string        // :8082
	PublicBaseURL  string        // origin used for Stripe redirect URLs
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	Insecure     bool
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxRetries   int
}

type RateLimitConfig struct {
	Enabled bool

	GeneralLimit  int
	GeneralWindow time.Duration

	// Login attempts get the strictest bucket
	LoginLimit  int
	LoginWindow time.Duration

	AdminLimit  int
	AdminWindow time.Duration

	// Tracking ingest is chatty but cheap
	EventsLimit  int
	EventsWindow time.Duration
}

type AuthConfig struct {
	// Argon2id hash of the admin password; login is refused when empty.
	AdminPasswordHash string
	SessionTTL        time.Duration
	SessionStore      string // "memory" or "redis"
}

type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	WebhookSecret  string
}

// Configured reports whether every credential checkout depends on is present.
// Absence of any key force-disables the shop.
func (c *StripeConfig) Configured() bool {
	return c.SecretKey != "" && c.PublishableKey != "" && c.WebhookSecret != ""
}

type StoreConfig struct {
	Timezone  string // IANA name for the schedule's civil timezone
	OpenHour  int    // inclusive
	CloseHour int    // exclusive: the store closes exactly at this hour
}

type EmailConfig struct {
	ResendKey string
	From      string
	// Recipient of new-order notifications (the restaurant's inbox)
	OrderNotifyTo string
}
