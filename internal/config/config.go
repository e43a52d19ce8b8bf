package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	LLM       LLMConfig       `yaml:"llm"`
	Enrich    EnrichConfig    `yaml:"enrich"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	CMS       CMSConfig       `yaml:"cms"`
	Credits   CreditsConfig   `yaml:"credits"`
	Strategy  StrategyConfig  `yaml:"strategy"`
	Stream    StreamConfig    `yaml:"stream"`
	Server    ServerConfig    `yaml:"server"`
	Cycle     CycleConfig     `yaml:"cycle"`
	LogLevel  string          `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type LLMConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

type EnrichConfig struct {
	VideoSearchURL string        `yaml:"video_search_url"`
	VideoAPIKey    string        `yaml:"video_api_key"`
	ImageGenURL    string        `yaml:"image_gen_url"`
	ImageAPIKey    string        `yaml:"image_api_key"`
	Timeout        time.Duration `yaml:"timeout"`
}

type TelemetryConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	WindowDays int           `yaml:"window_days"`
	MaxRows    int           `yaml:"max_rows"`
	Timeout    time.Duration `yaml:"timeout"`
	Retry      RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type CMSConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

// CreditsConfig is the deployment's cost table.
type CreditsConfig struct {
	ArticleCost      int64 `yaml:"article_cost"`
	EnrichmentCost   int64 `yaml:"enrichment_cost"`
	OptimizationCost int64 `yaml:"optimization_cost"`
}

// StrategyConfig holds the fallback policy and its randomized thresholds.
// The threshold values are a product decision carried as configuration.
type StrategyConfig struct {
	Policy                string  `yaml:"policy"`
	AggressiveThreshold   float64 `yaml:"aggressive_threshold"`
	ConservativeThreshold float64 `yaml:"conservative_threshold"`
	BalancedThreshold     float64 `yaml:"balanced_threshold"`
}

type StreamConfig struct {
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	APIToken string `yaml:"api_token"`
}

type CycleConfig struct {
	Interval       time.Duration `yaml:"interval"`
	Timeout        time.Duration `yaml:"timeout"`
	ProjectID      int64         `yaml:"project_id"`
	AccountID      int64         `yaml:"account_id"`
	TargetWords    int           `yaml:"target_words"`
	Language       string        `yaml:"language"`
	DefaultTopic   string        `yaml:"default_topic"`
	ScheduleCycles bool          `yaml:"schedule_cycles"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "contentops"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "cycles"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "cycle_events"
	}
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://api.openai.com/v1/chat/completions"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 120 * time.Second
	}
	if c.Enrich.Timeout == 0 {
		c.Enrich.Timeout = 30 * time.Second
	}
	if c.Telemetry.WindowDays == 0 {
		c.Telemetry.WindowDays = 30
	}
	if c.Telemetry.MaxRows == 0 {
		c.Telemetry.MaxRows = 20
	}
	if c.Telemetry.Timeout == 0 {
		c.Telemetry.Timeout = 30 * time.Second
	}
	if c.Telemetry.Retry.MaxAttempts == 0 {
		c.Telemetry.Retry.MaxAttempts = 3
	}
	if c.Telemetry.Retry.InitialBackoff == 0 {
		c.Telemetry.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Telemetry.Retry.MaxBackoff == 0 {
		c.Telemetry.Retry.MaxBackoff = 30 * time.Second
	}
	if c.CMS.Timeout == 0 {
		c.CMS.Timeout = 30 * time.Second
	}
	if c.Credits.ArticleCost == 0 {
		c.Credits.ArticleCost = 60
	}
	if c.Credits.EnrichmentCost == 0 {
		c.Credits.EnrichmentCost = 10
	}
	if c.Credits.OptimizationCost == 0 {
		c.Credits.OptimizationCost = 15
	}
	if c.Strategy.Policy == "" {
		c.Strategy.Policy = "balanced"
	}
	if c.Strategy.AggressiveThreshold == 0 {
		c.Strategy.AggressiveThreshold = 0.6
	}
	if c.Strategy.ConservativeThreshold == 0 {
		c.Strategy.ConservativeThreshold = 0.3
	}
	if c.Strategy.BalancedThreshold == 0 {
		c.Strategy.BalancedThreshold = 0.4
	}
	if c.Stream.HeartbeatInterval == 0 {
		c.Stream.HeartbeatInterval = 15 * time.Second
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Cycle.Interval == 0 {
		c.Cycle.Interval = 6 * time.Hour
	}
	if c.Cycle.Timeout == 0 {
		c.Cycle.Timeout = 10 * time.Minute
	}
	if c.Cycle.TargetWords == 0 {
		c.Cycle.TargetWords = 1200
	}
	if c.Cycle.Language == "" {
		c.Cycle.Language = "en"
	}
	if c.Cycle.DefaultTopic == "" {
		c.Cycle.DefaultTopic = "industry trends and practical guides"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
