package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "partforge/pkg/errors"
)

func setStudioEnv(t *testing.T) {
	t.Setenv("PARTFORGE_DOCUMENT_ID", "doc123")
	t.Setenv("PARTFORGE_WORKSPACE_ID", "ws456")
	t.Setenv("PARTFORGE_ELEMENT_ID", "el789")
}

func TestLoadConfigDefaults(t *testing.T) {
	setStudioEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://cad.onshape.com/api/v6", cfg.BaseURL)
	assert.Equal(t, "inch", cfg.UnitSystem)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigRequiresStudioIDs(t *testing.T) {
	t.Setenv("PARTFORGE_DOCUMENT_ID", "")
	t.Setenv("PARTFORGE_WORKSPACE_ID", "")
	t.Setenv("PARTFORGE_ELEMENT_ID", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeParameter))
}

func TestLoadConfigRejectsUnknownUnits(t *testing.T) {
	setStudioEnv(t)
	t.Setenv("PARTFORGE_UNITS", "furlong")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("PARTFORGE_ACCESS_KEY", "ak")
	t.Setenv("PARTFORGE_SECRET_KEY", "sk")

	creds, err := LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "ak", creds.AccessKey)
	assert.Equal(t, "sk", creds.SecretKey)
}

func TestLoadCredentialsIncompleteEnvFallsThrough(t *testing.T) {
	t.Setenv("PARTFORGE_ACCESS_KEY", "ak")
	t.Setenv("PARTFORGE_SECRET_KEY", "")
	t.Setenv("HOME", t.TempDir())

	_, err := LoadCredentials()
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeAuth))
}
