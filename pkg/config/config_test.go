package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	// Packages
	config "github.com/mutablelogic/go-weatherdeck/pkg/config"
	assert "github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// Test the defaults are valid
func Test_config_001(t *testing.T) {
	assert := assert.New(t)
	c := config.Default()
	assert.NoError(c.Validate())
	assert.Equal(":4000", c.Server.Addr)
	assert.Equal("/api", c.Server.Prefix)
	assert.Equal("*", c.Server.Origin)
	assert.Equal("memory", c.Store.Type)
	assert.Equal("gemini-2.5-flash", c.Gemini.Model)
	assert.Equal("gemini-2.5-flash-lite", c.Gemini.FallbackModel)
	assert.Equal(30*time.Second, c.Gemini.Timeout)
	assert.Equal(10, c.Gemini.History)
}

// Test a file overrides the defaults
func Test_config_002(t *testing.T) {
	assert := assert.New(t)
	path := writeFile(t, `
server:
  addr: localhost:8080
  prefix: v1/
store:
  type: File
  dir: /var/lib/weatherdeck
gemini:
  model: gemini-2.5-pro
  timeout: 45s
  temperature: 0.2
  max_tokens: 512
openweather:
  key: " abc "
  geocode_ttl: 1m
`)
	c, err := config.Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("localhost:8080", c.Server.Addr)
	assert.Equal("/v1", c.Server.Prefix)
	assert.Equal("file", c.Store.Type)
	assert.Equal("gemini-2.5-pro", c.Gemini.Model)
	assert.Equal("gemini-2.5-flash-lite", c.Gemini.FallbackModel)
	assert.Equal(45*time.Second, c.Gemini.Timeout)
	assert.Equal("abc", c.OpenWeather.Key)
	assert.Equal(time.Minute, c.OpenWeather.GeocodeTTL)

	a := c.Assistant()
	assert.Equal("gemini-2.5-pro", a.Model)
	if assert.NotNil(a.Temperature) {
		assert.Equal(0.2, *a.Temperature)
	}
	assert.Equal(uint(512), a.MaxTokens)
	assert.Equal(uint(0), config.Default().Assistant().MaxTokens)
}

// Test invalid configurations
func Test_config_003(t *testing.T) {
	assert := assert.New(t)

	c := config.Default()
	c.Store.Type = "mongodb"
	assert.Error(c.Validate())

	c = config.Default()
	c.Store.Type = "postgres"
	assert.Error(c.Validate())
	c.Store.DatabaseURL = "postgres://localhost/weatherdeck"
	assert.NoError(c.Validate())

	c = config.Default()
	c.Store.Type = "file"
	assert.Error(c.Validate())

	c = config.Default()
	c.Server.TLSCert = "cert.pem"
	assert.Error(c.Validate())

	c = config.Default()
	c.Gemini.History = 0
	assert.Error(c.Validate())
}

// Test file errors
func Test_config_004(t *testing.T) {
	assert := assert.New(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(err)

	_, err = config.Load(writeFile(t, "server: [unclosed"))
	assert.Error(err)
}
