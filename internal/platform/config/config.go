// Package config loads server configuration from defaults, an optional YAML
// file and MEDHOPE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Payment  PaymentConfig  `mapstructure:"payment"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig configures the PostgreSQL pool. An empty URL selects the
// in-memory stores.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	TxTimeout       time.Duration `mapstructure:"tx_timeout"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig configures the case-number sequence allocator. An empty URL
// leaves sequencing to the primary store.
type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig configures the audit event sink. No brokers disables it.
type KafkaConfig struct {
	Brokers           []string `mapstructure:"brokers"`
	AuditTopic        string   `mapstructure:"audit_topic"`
	Partitions        int32    `mapstructure:"partitions"`
	ReplicationFactor int16    `mapstructure:"replication_factor"`
	BufferSize        int      `mapstructure:"buffer_size"`
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	JWTSigningKey string        `mapstructure:"jwt_signing_key"`
	Issuer        string        `mapstructure:"issuer"`
	Audience      string        `mapstructure:"audience"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PaymentConfig selects the payment processor adapter.
type PaymentConfig struct {
	Mode string `mapstructure:"mode"`
}

const devSigningKey = "dev-secret-key-change-in-production"

// Load reads configuration. configPath may be empty, in which case
// ./config.yaml is used when present.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MEDHOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Auth.JWTSigningKey == "" {
		return errors.New("config: auth.jwt_signing_key is required")
	}
	switch c.Payment.Mode {
	case "sandbox", "decline":
	default:
		return fmt.Errorf("config: unknown payment.mode %q", c.Payment.Mode)
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.AuditTopic == "" {
		return errors.New("config: kafka.audit_topic is required when brokers are set")
	}
	return nil
}

// UsesDevSigningKey reports whether the built-in development key is active.
func (c *Config) UsesDevSigningKey() bool {
	return c.Auth.JWTSigningKey == devSigningKey
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)
	v.SetDefault("database.tx_timeout", 5*time.Second)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.key_prefix", "medhope:")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.audit_topic", "medhope.audit")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.replication_factor", 1)
	v.SetDefault("kafka.buffer_size", 1024)

	v.SetDefault("auth.jwt_signing_key", devSigningKey)
	v.SetDefault("auth.issuer", "medhope")
	v.SetDefault("auth.audience", "medhope-api")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("payment.mode", "sandbox")
}
