package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, CSV(" kafka:9092, ,kafka2:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("CFG_INT", "42")
	t.Setenv("CFG_BAD_INT", "x")
	t.Setenv("CFG_BOOL", "false")
	t.Setenv("CFG_DUR", "250ms")
	t.Setenv("CFG_FLOAT", "0.5")

	assert.Equal(t, 42, EnvIntDefault("CFG_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("CFG_BAD_INT", 1))
	assert.False(t, EnvBoolDefault("CFG_BOOL", true))
	assert.True(t, EnvBoolDefault("CFG_MISSING", true))
	assert.Equal(t, 250*time.Millisecond, EnvDurationDefault("CFG_DUR", time.Second))
	assert.InDelta(t, 0.5, EnvFloatDefault("CFG_FLOAT", 1), 1e-9)
	assert.Equal(t, "def", EnvDefault("CFG_MISSING", "def"))
}

func TestLoadCommon(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SERVICE_NAME", "")

	c := LoadCommon("catalog")
	assert.Equal(t, "catalog", c.ServiceName)
	assert.Equal(t, ":9090", c.Addr())
	assert.Equal(t, "file:catalog.db", c.DatabaseURL)
}
