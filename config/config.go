package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"clementus360/mood-tracker/engine"
)

type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Store    StoreConfig   `yaml:"store"`
	Engine   engine.Config `yaml:"engine"`
	Alerts   AlertsConfig  `yaml:"alerts"`
	SMTP     SMTPConfig    `yaml:"smtp"`
	Kafka    KafkaConfig   `yaml:"kafka"`
	Webhook  WebhookConfig `yaml:"webhook"`
	Detect   DetectConfig  `yaml:"detect"`
	LogLevel string        `yaml:"log_level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StoreConfig struct {
	Driver      string `yaml:"driver"` // sqlite | postgres | supabase
	DSN         string `yaml:"dsn"`
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
	SeedCatalog bool   `yaml:"seed_catalog"`
}

type AlertsConfig struct {
	HREmail          string        `yaml:"hr_email"`
	ManagerEmail     string        `yaml:"manager_email"`
	Timeout          time.Duration `yaml:"timeout"`
	EvaluateOnRecord bool          `yaml:"evaluate_on_record"`
	SweepInterval    time.Duration `yaml:"sweep_interval"`
	SweepWorkers     int           `yaml:"sweep_workers"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Sender   string `yaml:"sender"`
	Password string `yaml:"password"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	AlertTopic string   `yaml:"alert_topic"`
}

type WebhookConfig struct {
	URL    string `yaml:"url"`
	Secret string `yaml:"secret"`
}

type DetectConfig struct {
	TextURL   string        `yaml:"text_url"`
	TextToken string        `yaml:"text_token"`
	Timeout   time.Duration `yaml:"timeout"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Driver:      "sqlite",
			DSN:         "mood_tracker.db",
			SeedCatalog: true,
		},
		Engine: engine.DefaultConfig(),
		Alerts: AlertsConfig{
			Timeout:          10 * time.Second,
			EvaluateOnRecord: true,
			SweepWorkers:     4,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Kafka: KafkaConfig{
			AlertTopic: "wellbeing-alerts",
		},
		Detect: DetectConfig{
			TextURL: "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english",
			Timeout: 30 * time.Second,
		},
		LogLevel: "info",
	}
}

// Load layers built-in defaults, then the YAML file at path (if present),
// then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("SERVER_ADDR", &c.Server.Addr)
	setString("STORE_DRIVER", &c.Store.Driver)
	setString("DATABASE_URL", &c.Store.DSN)
	setString("SUPABASE_URL", &c.Store.SupabaseURL)
	setString("SUPABASE_KEY", &c.Store.SupabaseKey)
	setString("HR_EMAIL", &c.Alerts.HREmail)
	setString("MANAGER_EMAIL", &c.Alerts.ManagerEmail)
	setString("SMTP_SERVER", &c.SMTP.Host)
	setString("SENDER_EMAIL", &c.SMTP.Sender)
	setString("SENDER_PASSWORD", &c.SMTP.Password)
	setString("KAFKA_ALERT_TOPIC", &c.Kafka.AlertTopic)
	setString("ALERT_WEBHOOK_URL", &c.Webhook.URL)
	setString("ALERT_WEBHOOK_SECRET", &c.Webhook.Secret)
	setString("TEXT_CLASSIFIER_URL", &c.Detect.TextURL)
	setString("TEXT_CLASSIFIER_TOKEN", &c.Detect.TextToken)
	setString("LOG_LEVEL", &c.LogLevel)

	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		c.SMTP.Port = port
	}
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SWEEP_INTERVAL %q: %w", v, err)
		}
		c.Alerts.SweepInterval = d
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = nil
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.Kafka.Brokers = append(c.Kafka.Brokers, b)
			}
		}
	}
	return nil
}
