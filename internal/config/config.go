package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingKey = errors.New("config key not found")

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
		Name string `mapstructure:"name"`
	} `mapstructure:"app"`
	DB struct {
		DSN            string `mapstructure:"dsn"`
		MigrateOnStart bool   `mapstructure:"migrate_on_start"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
		AdminRole     string        `mapstructure:"admin_role"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
		SampleRatio  float64 `mapstructure:"sample_ratio"`
	} `mapstructure:"jaeger"`
	Paging struct {
		MaxPageSize int `mapstructure:"max_page_size"`
	} `mapstructure:"paging"`
	Profile struct {
		// DecodeJobHistory switches the decoded job history of a profile
		// from the legacy always-empty result to decoding the stored value.
		DecodeJobHistory bool `mapstructure:"decode_job_history"`
	} `mapstructure:"profile"`
	RateLimit struct {
		BatchCreatePerMinute int `mapstructure:"batch_create_per_minute"`
	} `mapstructure:"rate_limit"`

	flat map[string]any
}

// LoadConfig reads config.yaml from path, then lets the environment override it.
func LoadConfig(path string) (cfg Config, err error) {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("app.port", "8000")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.name", "space-api")
	v.SetDefault("auth.token_lifespan", time.Hour)
	v.SetDefault("auth.admin_role", "")
	v.SetDefault("db.migrate_on_start", false)
	v.SetDefault("jaeger.sample_ratio", 1.0)
	v.SetDefault("paging.max_page_size", 100)
	v.SetDefault("profile.decode_job_history", false)
	v.SetDefault("rate_limit.batch_create_per_minute", 10)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config.yaml: %w", err)
		}
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.migrate_on_start", "DB_MIGRATE_ON_START")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.admin_role", "AUTH_ADMIN_ROLE")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")
	v.BindEnv("jaeger.sample_ratio", "OTLP_SAMPLE_RATIO")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.flat = flatten(v.AllSettings())
	return cfg, nil
}

// flatten maps every second-level key both by its bare name and by its
// dotted "section.key" name. A bare name present in more than one section
// is left out and only reachable through its dotted name.
func flatten(settings map[string]any) map[string]any {
	flat := make(map[string]any)
	ambiguous := make(map[string]bool)
	for section, raw := range settings {
		sub, ok := raw.(map[string]any)
		if !ok {
			flat[section] = raw
			continue
		}
		for key, value := range sub {
			flat[section+"."+key] = value
			if _, seen := flat[key]; seen || ambiguous[key] {
				ambiguous[key] = true
				continue
			}
			flat[key] = value
		}
	}
	for key := range ambiguous {
		delete(flat, key)
	}
	return flat
}

// Lookup returns a raw setting by bare or dotted key.
func (c Config) Lookup(key string) (any, error) {
	value, ok := c.flat[strings.ToLower(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return value, nil
}
