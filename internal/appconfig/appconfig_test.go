package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
host: localhost:3487
database:
  source: "{{.TEST_DATABASE_URL}}"
auth:
  jwtSecret: "{{.TEST_JWT_SECRET}}"
  tokenTTL: 2h
events:
  broker: kafka
  kafka:
    brokers: ["kafka:9092"]
    topic: asset-events
aws:
  region: eu-west-2
  s3:
    bucket: invoices
pagination:
  defaultLimit: 500
  maxLimit: 50
`

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_RendersEnvironment(t *testing.T) {
	t.Setenv("TEST_DATABASE_URL", "postgres://assets@db/assets")
	t.Setenv("TEST_JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres://assets@db/assets", cfg.Database.Source)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TTL())
	assert.Equal(t, "kafka", cfg.Events.Broker)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Events.Kafka.Brokers)
	assert.Equal(t, 15*time.Minute, cfg.AWS.S3.TTL())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.BasePath)
	assert.Equal(t, "/docs", cfg.DocsPath)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Pagination.MaxLimit)
	assert.Equal(t, 50, cfg.Pagination.DefaultLimit)
}

func TestLoadConfig_MissingPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestAuthConfigTTL_Fallback(t *testing.T) {
	assert.Equal(t, 24*time.Hour, AuthConfig{TokenTTL: "soon"}.TTL())
}

func TestLoadConfig_UnsetVariablesAreEmpty(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
auth:
  jwtSecretArn: "{{.ASSETS_TEST_UNSET_ARN}}"
events:
  broker: '{{or .ASSETS_TEST_UNSET_BROKER "pulsar"}}'
`))
	require.NoError(t, err)

	assert.Empty(t, cfg.Auth.JWTSecretArn)
	assert.Equal(t, "pulsar", cfg.Events.Broker)
}
