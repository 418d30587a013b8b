package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "CITIES_FILE", "STORE_BACKEND", "WEATHER_TIMEOUT", "OPENWEATHER_BASE_URL", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}
	c := Load()

	assert.Equal(t, "5001", c.AppPort)
	assert.Equal(t, ":5001", c.Addr())
	assert.Equal(t, "cities.xml", c.Store.CitiesFile)
	assert.Equal(t, BackendXML, c.Store.Backend)
	assert.Equal(t, 8*time.Second, c.Weather.Timeout)
	assert.Equal(t, "https://api.openweathermap.org", c.Weather.BaseURL)
	assert.Equal(t, int64(1<<20), c.MaxBodyBytes)
	require.NoError(t, c.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("WEATHER_TIMEOUT", "2s")
	t.Setenv("STORE_BACKEND", "MySQL")
	t.Setenv("DB_DSN", "u:p@tcp(db:3306)/cities")
	t.Setenv("OPENWEATHER_API_KEY", "abc")

	c := Load()
	assert.Equal(t, ":9000", c.Addr())
	assert.Equal(t, 2*time.Second, c.Weather.Timeout)
	assert.Equal(t, BackendMySQL, c.Store.Backend)
	assert.Equal(t, "abc", c.Weather.APIKey)
	require.NoError(t, c.Validate())
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("WEATHER_TIMEOUT", "soon")
	assert.Equal(t, 8*time.Second, Load().Weather.Timeout)
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mysql")
	t.Setenv("DB_DSN", "")
	assert.Error(t, Load().Validate())

	t.Setenv("STORE_BACKEND", "sqlite")
	assert.Error(t, Load().Validate())
}
