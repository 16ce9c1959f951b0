package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Host       string           `yaml:"host"`
	BasePath   string           `yaml:"basePath"`
	DocsPath   string           `yaml:"docsPath"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Events     EventsConfig     `yaml:"events"`
	AWS        AWSConfig        `yaml:"aws"`
	Pagination PaginationConfig `yaml:"pagination"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// AuthConfig defines how login tokens are signed
type AuthConfig struct {
	JWTSecret    string `yaml:"jwtSecret"`
	JWTSecretArn string `yaml:"jwtSecretArn"`
	TokenTTL     string `yaml:"tokenTTL"`
}

// TTL parses the token lifetime, defaulting to a day.
func (a AuthConfig) TTL() time.Duration {
	d, err := time.ParseDuration(a.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// EventsConfig selects and configures the broker asset events go to
type EventsConfig struct {
	Broker string       `yaml:"broker"`
	Pulsar PulsarConfig `yaml:"pulsar"`
	Kafka  KafkaConfig  `yaml:"kafka"`
}

// PulsarConfig defines the messaging system connection details
type PulsarConfig struct {
	URL           string `yaml:"url"`
	TopicProducer string `yaml:"topicProducer"`
	TopicConsumer string `yaml:"topicConsumer"`
	Subscription  string `yaml:"subscription"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"groupID"`
}

type S3Config struct {
	Bucket     string `yaml:"bucket"`
	Prefix     string `yaml:"prefix"`
	PresignTTL string `yaml:"presignTTL"`
}

// TTL parses the lifetime of presigned invoice links, defaulting to 15 minutes.
func (s S3Config) TTL() time.Duration {
	d, err := time.ParseDuration(s.PresignTTL)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

type SESConfig struct {
	FromAddress string `yaml:"fromAddress"`
}

type AWSConfig struct {
	Region string    `yaml:"region"`
	S3     S3Config  `yaml:"s3"`
	SES    SESConfig `yaml:"ses"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"defaultLimit"`
	MaxLimit     int `yaml:"maxLimit"`
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// A missing .env file is fine; real environment variables always win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	// Parse the template file; unset variables render as empty strings
	tmpl, err := template.New(filepath.Base(path)).Option("missingkey=zero").ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, envVars)
	if err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, err
	}

	// Load and unmarshal the YAML
	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.DocsPath == "" {
		c.DocsPath = "/docs"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Events.Broker == "" {
		c.Events.Broker = "none"
	}
	if c.Pagination.DefaultLimit <= 0 {
		c.Pagination.DefaultLimit = 20
	}
	if c.Pagination.MaxLimit <= 0 {
		c.Pagination.MaxLimit = 100
	}
	if c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		c.Pagination.DefaultLimit = c.Pagination.MaxLimit
	}
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
