package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App       AppSettings       `mapstructure:"app"`
	Postgres  PostgresSettings  `mapstructure:"postgres"`
	Redis     RedisSettings     `mapstructure:"redis"`
	Kafka     KafkaSettings     `mapstructure:"kafka"`
	Mail      MailSettings      `mapstructure:"mail"`
	Session   SessionSettings   `mapstructure:"session"`
	Token     TokenSettings     `mapstructure:"token"`
	Argon2    Argon2Settings    `mapstructure:"argon2"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// BaseURL is the externally reachable origin used to build
	// confirmation links embedded in outbound mail.
	BaseURL string `mapstructure:"base_url"`
	// Templates is the glob the page renderer parses at startup.
	Templates string `mapstructure:"templates"`
}

type PostgresSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	SSLMode           string        `mapstructure:"ssl_mode"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// RedisSettings configures the Redis connection backing sessions and rate limits.
type RedisSettings struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	DB              int    `mapstructure:"db"`
	Password        string `mapstructure:"password"`
	TLSEnabled      bool   `mapstructure:"tls_enabled"`
	SessionPrefix   string `mapstructure:"session_prefix"`
	RateLimitPrefix string `mapstructure:"rate_limit_prefix"`
}

// KafkaSettings configures the domain event producer. An empty broker
// list switches the application to the logging stub publisher.
type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
}

// MailSettings configures the outbound SMTP relay for confirmation mail.
type MailSettings struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	TLSEnabled bool   `mapstructure:"tls_enabled"`
	From       string `mapstructure:"from"`
}

// SessionSettings configures server-side login sessions. Lifetime is
// the inactivity window; the secret signs the session cookie and must
// differ from the confirmation token secret.
type SessionSettings struct {
	Secret     string        `mapstructure:"secret"`
	Lifetime   time.Duration `mapstructure:"lifetime"`
	CookieName string        `mapstructure:"cookie_name"`
}

// TokenSettings configures email confirmation token signing.
type TokenSettings struct {
	Secret string        `mapstructure:"secret"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

// Argon2Settings configures Argon2id password hashing parameters.
type Argon2Settings struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
	SaltLength  uint32 `mapstructure:"salt_length"`
	KeyLength   uint32 `mapstructure:"key_length"`
}

// RateLimitSettings configures sliding-window limits for credential endpoints.
type RateLimitSettings struct {
	WindowDuration      time.Duration `mapstructure:"window_duration"`
	LoginMaxAttempts    int           `mapstructure:"login_max_attempts"`
	RegisterMaxAttempts int           `mapstructure:"register_max_attempts"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("REVIEWS")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"app.base_url",
		"app.templates",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.database",
		"postgres.ssl_mode",
		"postgres.max_conns",
		"postgres.min_conns",
		"postgres.max_conn_lifetime",
		"postgres.max_conn_idle_time",
		"postgres.health_check_period",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"redis.tls_enabled",
		"redis.session_prefix",
		"redis.rate_limit_prefix",
		"kafka.brokers",
		"kafka.topic_prefix",
		"mail.host",
		"mail.port",
		"mail.username",
		"mail.password",
		"mail.tls_enabled",
		"mail.from",
		"session.secret",
		"session.lifetime",
		"session.cookie_name",
		"token.secret",
		"token.max_age",
		"argon2.memory",
		"argon2.iterations",
		"argon2.parallelism",
		"argon2.salt_length",
		"argon2.key_length",
		"rate_limit.window_duration",
		"rate_limit.login_max_attempts",
		"rate_limit.register_max_attempts",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validateSecrets(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateSecrets rejects signing-key configurations that would let a
// forged cookie or confirmation token verify. Development may run with
// empty secrets; production may not.
func validateSecrets(cfg *AppConfig) error {
	if cfg.App.Env == "production" {
		if cfg.Session.Secret == "" {
			return fmt.Errorf("session.secret is required in production")
		}
		if cfg.Token.Secret == "" {
			return fmt.Errorf("token.secret is required in production")
		}
	}
	if cfg.Session.Secret != "" && cfg.Session.Secret == cfg.Token.Secret {
		return fmt.Errorf("session.secret and token.secret must differ")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "reviews-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.templates", "templates/*.html")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "reviews")
	v.SetDefault("postgres.password", "reviews_password")
	v.SetDefault("postgres.database", "reviews")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", "60m")
	v.SetDefault("postgres.max_conn_idle_time", "15m")
	v.SetDefault("postgres.health_check_period", "30s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)
	v.SetDefault("redis.session_prefix", "reviews:session")
	v.SetDefault("redis.rate_limit_prefix", "reviews:rate-limit")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic_prefix", "reviews")

	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.tls_enabled", true)
	v.SetDefault("mail.from", "")

	v.SetDefault("session.secret", "")
	v.SetDefault("session.lifetime", "3600s")
	v.SetDefault("session.cookie_name", "reviews_session")

	v.SetDefault("token.secret", "")
	v.SetDefault("token.max_age", "3600s")

	v.SetDefault("argon2.memory", 65536)
	v.SetDefault("argon2.iterations", 3)
	v.SetDefault("argon2.parallelism", 4)
	v.SetDefault("argon2.salt_length", 16)
	v.SetDefault("argon2.key_length", 32)

	v.SetDefault("rate_limit.window_duration", "1m")
	v.SetDefault("rate_limit.login_max_attempts", 5)
	v.SetDefault("rate_limit.register_max_attempts", 3)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "REVIEWS_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
