package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	origBucket := os.Getenv("STORAGE_BUCKET_NAME")
	defer os.Setenv("STORAGE_BUCKET_NAME", origBucket)

	os.Setenv("STORAGE_BUCKET_NAME", "buckbuck")
	os.Setenv("STORAGE_PATH_PATTERN", "{md5_hex}{extension}")
	os.Setenv("SIGNED_URL_EXPIRY_SEC", "3600")
	os.Setenv("AUTH_ALLOW_TEST_TOKEN", "true")
	defer func() {
		os.Unsetenv("STORAGE_PATH_PATTERN")
		os.Unsetenv("SIGNED_URL_EXPIRY_SEC")
		os.Unsetenv("AUTH_ALLOW_TEST_TOKEN")
	}()

	cfg := Load()

	assert.Equal(t, "buckbuck", cfg.Storage.Bucket)
	assert.Equal(t, "{md5_hex}{extension}", cfg.Storage.PathPattern)
	assert.Equal(t, 3600, cfg.Storage.SignedURLExpirySec)
	assert.True(t, cfg.Auth.AllowTestToken)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORAGE_PATH_PATTERN", "STORAGE_HOST_DOMAIN", "SIGNED_URL_EXPIRY_SEC", "AUTH_SERVICE_NAME", "AUTH_ALLOW_TEST_TOKEN"} {
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "{owner}/{dataset}/{path}", cfg.Storage.PathPattern)
	assert.Equal(t, "s3.amazonaws.com", cfg.Storage.HostDomain)
	assert.Equal(t, 86400, cfg.Storage.SignedURLExpirySec)
	assert.Equal(t, "rawstore", cfg.Auth.ServiceName)
	assert.False(t, cfg.Auth.AllowTestToken)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
