// Package config loads partforge configuration from the environment and
// API credentials from the environment or a credentials file.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	pkgerrors "partforge/pkg/errors"
)

var validate = validator.New()

// Config holds all client configuration
type Config struct {
	// Onshape API configuration
	BaseURL     string `validate:"required,url"`
	DocumentID  string `validate:"required"`
	WorkspaceID string `validate:"required"`
	ElementID   string `validate:"required"`

	// Units user-facing geometry is expressed in: "inch" or "metric"
	UnitSystem string `validate:"oneof=inch metric"`

	// HTTP behavior
	TimeoutSeconds int `validate:"min=1"`

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		BaseURL:        getEnv("PARTFORGE_BASE_URL", "https://cad.onshape.com/api/v6"),
		DocumentID:     getEnv("PARTFORGE_DOCUMENT_ID", ""),
		WorkspaceID:    getEnv("PARTFORGE_WORKSPACE_ID", ""),
		ElementID:      getEnv("PARTFORGE_ELEMENT_ID", ""),
		UnitSystem:     getEnv("PARTFORGE_UNITS", "inch"),
		TimeoutSeconds: getEnvInt("PARTFORGE_TIMEOUT_SECONDS", 30),
		LogLevel:       getEnv("PARTFORGE_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return pkgerrors.NewParameterError("invalid configuration").WithCause(err)
	}
	return nil
}

// Credentials are the Onshape API key pair used for HTTP basic auth.
type Credentials struct {
	AccessKey string `yaml:"access_key" validate:"required"`
	SecretKey string `yaml:"secret_key" validate:"required"`
}

// credentialsFile is the fallback location when the environment carries
// no key pair.
func credentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".partforge", "credentials.yaml")
}

// LoadCredentials reads the API key pair from PARTFORGE_ACCESS_KEY and
// PARTFORGE_SECRET_KEY, falling back to ~/.partforge/credentials.yaml.
func LoadCredentials() (*Credentials, error) {
	creds := &Credentials{
		AccessKey: os.Getenv("PARTFORGE_ACCESS_KEY"),
		SecretKey: os.Getenv("PARTFORGE_SECRET_KEY"),
	}
	if creds.AccessKey != "" && creds.SecretKey != "" {
		return creds, validateCredentials(creds)
	}

	path := credentialsFile()
	if path == "" {
		return nil, pkgerrors.NewAuthError("no API credentials in environment and no home directory to search")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.NewAuthError("no API credentials found; set PARTFORGE_ACCESS_KEY and PARTFORGE_SECRET_KEY or create " + path).WithCause(err)
	}
	if err := yaml.Unmarshal(data, creds); err != nil {
		return nil, pkgerrors.NewAuthError("malformed credentials file "+path).WithCause(err)
	}
	return creds, validateCredentials(creds)
}

func validateCredentials(creds *Credentials) error {
	if err := validate.Struct(creds); err != nil {
		return pkgerrors.NewAuthError("incomplete API credentials").WithCause(err)
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
