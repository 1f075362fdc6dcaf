package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                     "8080",
		DBHost:                   "localhost",
		DBPort:                   "5432",
		DBUser:                   "appuser",
		DBPassword:               "secure-password",
		DBName:                   "appdb",
		DBSSLMode:                "require",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 5,
		TracingSampleRatio:       1,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Port = "" }},
		{"missing db host", func(c *Config) { c.DBHost = "" }},
		{"negative open conns", func(c *Config) { c.DBMaxOpenConns = -1 }},
		{"idle above open", func(c *Config) { c.DBMaxIdleConns = 20 }},
		{"zero lifetime", func(c *Config) { c.DBConnMaxLifetimeMinutes = 0 }},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }},
		{"default password in production", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "devpassword"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "5432", c.DBPort)
	assert.Equal(t, "appdb", c.DBName)
	assert.Equal(t, "appuser", c.DBUser)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.False(t, c.TracingEnabled)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "posts")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("PORT", "9090")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", c.DBHost)
	assert.Equal(t, "posts", c.DBName)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "9090", c.Port)
}

func TestLoadConfig_MissingProfileFile(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "staging")

	// No config.staging.yml exists next to the test binary.
	_, err := os.Stat("config.staging.yml")
	require.True(t, os.IsNotExist(err))

	_, err = LoadConfig()
	assert.Error(t, err)
}
