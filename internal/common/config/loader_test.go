// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: "uniautomarket"
seed:
  super_admin:
    email: "admin@uniautomarket.cl"
    password: "secret"
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "catalog:tree", cfg.Storage.Redis.Key)
	assert.Equal(t, "catalog_updates", cfg.Storage.Postgres.Channel)
	assert.Equal(t, "superadmin-1", cfg.Seed.SuperAdmin.ID)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":9102", cfg.Metrics.Address)
}

func TestLoadFromFile_DriverValidation(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expectError string
	}{
		{
			name: "redis requires address",
			yaml: `
storage:
  driver: "redis"
seed:
  super_admin:
    email: "admin@uniautomarket.cl"
`,
			expectError: "storage.redis.address is required",
		},
		{
			name: "postgres requires host",
			yaml: `
storage:
  driver: "postgres"
  postgres:
    database: "uniautomarket"
    user: "app"
seed:
  super_admin:
    email: "admin@uniautomarket.cl"
`,
			expectError: "storage.postgres.host is required",
		},
		{
			name: "github requires coordinates",
			yaml: `
storage:
  driver: "github"
  github:
    owner: "uniautomarket"
seed:
  super_admin:
    email: "admin@uniautomarket.cl"
`,
			expectError: "storage.github.owner, repo and path are required",
		},
		{
			name: "unknown driver",
			yaml: `
storage:
  driver: "dynamo"
seed:
  super_admin:
    email: "admin@uniautomarket.cl"
`,
			expectError: "unknown storage driver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)

			_, err := LoadFromFile(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestLoadFromFile_EnvOverridesForSecrets(t *testing.T) {
	t.Setenv("SUPERADMIN_PASSWORD", "from-env")
	path := writeConfigFile(t, `
seed:
  super_admin:
    email: "admin@uniautomarket.cl"
`)

	cfg, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Seed.SuperAdmin.Password)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "localhost", Port: 5432, Database: "uniautomarket",
		User: "app", Password: "pw", SSLMode: "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=app password=pw dbname=uniautomarket sslmode=disable",
		cfg.GetDSN())
}
