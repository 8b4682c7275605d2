// Package config loads service settings from defaults, an optional
// config.yaml and SHOP_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "SHOP"

type Config struct {
	Service       string
	Log           LogConfig
	HTTP          HTTPConfig
	Session       SessionConfig
	JWT           JWTConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Mongo         MongoConfig
	S3            S3Config
	Tracing       TracingConfig
	Notifications NotificationConfig
	DemoPassword  string
}

type LogConfig struct {
	Level string
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type SessionConfig struct {
	TTL             time.Duration
	JanitorInterval time.Duration
}

type JWTConfig struct {
	SigningKey string
	Issuer     string
	TTL        time.Duration
}

// PostgresConfig is disabled when URL is empty.
type PostgresConfig struct {
	URL         string
	MaxConns    int32
	AutoMigrate bool
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	IdempotencyTTL time.Duration
}

type KafkaConfig struct {
	Brokers         []string
	Topic           string
	Group           string
	Partitions      int
	RelayInterval   time.Duration
	RelayBatchSize  int
	RelayMaxRetries int
}

type MongoConfig struct {
	URI      string
	Database string
}

type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PresignTTL   time.Duration
}

type TracingConfig struct {
	Endpoint string
}

type NotificationConfig struct {
	InboxSize int
	InboxTTL  time.Duration
}

func (c PostgresConfig) Enabled() bool { return c.URL != "" }
func (c RedisConfig) Enabled() bool    { return c.Addr != "" }
func (c KafkaConfig) Enabled() bool    { return len(c.Brokers) > 0 }
func (c MongoConfig) Enabled() bool    { return c.URI != "" }
func (c S3Config) Enabled() bool       { return c.Bucket != "" }

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("service", service)
	v.SetDefault("log.level", "info")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.janitor_interval", time.Minute)

	v.SetDefault("jwt.signing_key", "")
	v.SetDefault("jwt.issuer", "honey-marketplace")
	v.SetDefault("jwt.ttl", 12*time.Hour)

	v.SetDefault("postgres.url", "")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.idempotency_ttl", 10*time.Minute)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "shop.events")
	v.SetDefault("kafka.group", "notification-worker")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.relay_interval", 500*time.Millisecond)
	v.SetDefault("kafka.relay_batch_size", 100)
	v.SetDefault("kafka.relay_max_retries", 5)

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "honey")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.use_path_style", true)
	v.SetDefault("s3.presign_ttl", 15*time.Minute)

	v.SetDefault("tracing.endpoint", "")

	v.SetDefault("notifications.inbox_size", 50)
	v.SetDefault("notifications.inbox_ttl", 30*24*time.Hour)

	v.SetDefault("demo_password", "password")
}

// Load reads configuration for service. paths are searched for config.yaml;
// a missing file is not an error.
func Load(service string, paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v, service)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Service:      v.GetString("service"),
		Log:          LogConfig{Level: v.GetString("log.level")},
		DemoPassword: v.GetString("demo_password"),
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Session: SessionConfig{
			TTL:             v.GetDuration("session.ttl"),
			JanitorInterval: v.GetDuration("session.janitor_interval"),
		},
		JWT: JWTConfig{
			SigningKey: v.GetString("jwt.signing_key"),
			Issuer:     v.GetString("jwt.issuer"),
			TTL:        v.GetDuration("jwt.ttl"),
		},
		Postgres: PostgresConfig{
			URL:         v.GetString("postgres.url"),
			MaxConns:    v.GetInt32("postgres.max_conns"),
			AutoMigrate: v.GetBool("postgres.auto_migrate"),
		},
		Redis: RedisConfig{
			Addr:           v.GetString("redis.addr"),
			Password:       v.GetString("redis.password"),
			DB:             v.GetInt("redis.db"),
			IdempotencyTTL: v.GetDuration("redis.idempotency_ttl"),
		},
		Kafka: KafkaConfig{
			Brokers:         splitList(v.GetStringSlice("kafka.brokers")),
			Topic:           v.GetString("kafka.topic"),
			Group:           v.GetString("kafka.group"),
			Partitions:      v.GetInt("kafka.partitions"),
			RelayInterval:   v.GetDuration("kafka.relay_interval"),
			RelayBatchSize:  v.GetInt("kafka.relay_batch_size"),
			RelayMaxRetries: v.GetInt("kafka.relay_max_retries"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		S3: S3Config{
			Endpoint:     v.GetString("s3.endpoint"),
			Region:       v.GetString("s3.region"),
			Bucket:       v.GetString("s3.bucket"),
			AccessKey:    v.GetString("s3.access_key"),
			SecretKey:    v.GetString("s3.secret_key"),
			UsePathStyle: v.GetBool("s3.use_path_style"),
			PresignTTL:   v.GetDuration("s3.presign_ttl"),
		},
		Tracing: TracingConfig{Endpoint: v.GetString("tracing.endpoint")},
		Notifications: NotificationConfig{
			InboxSize: v.GetInt("notifications.inbox_size"),
			InboxTTL:  v.GetDuration("notifications.inbox_ttl"),
		},
	}
	return cfg, cfg.Validate()
}

// splitList accepts both YAML lists and a comma separated env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks settings every binary relies on.
func (c Config) Validate() error {
	var errs []error
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Session.JanitorInterval <= 0 {
		errs = append(errs, errors.New("session.janitor_interval must be positive"))
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}
	if c.S3.Enabled() && (c.S3.AccessKey == "" || c.S3.SecretKey == "") {
		errs = append(errs, errors.New("s3 credentials are required when a bucket is set"))
	}
	return errors.Join(errs...)
}

// Validate is called only by binaries that issue tokens.
func (c JWTConfig) Validate() error {
	switch {
	case c.SigningKey == "":
		return errors.New("jwt.signing_key is required")
	case len(c.SigningKey) < 32:
		return errors.New("jwt.signing_key must be at least 32 bytes")
	case c.TTL <= 0:
		return errors.New("jwt.ttl must be positive")
	}
	return nil
}
