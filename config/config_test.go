package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/penfold-app/backend/config"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":                "9090",
		"COMMENTS_ADMIN_ONLY": "true",
		"BROKEN_INT":          "not-a-number",
		"EMPTY":               "",
	}

	assert.Equal(t, "9090", config.GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", config.GetString(c, "MISSING", "8080"))
	assert.Equal(t, "", config.GetString(c, "EMPTY", "fallback"))

	assert.Equal(t, 9090, config.GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, config.GetInt(c, "MISSING", 8080))
	assert.Equal(t, 8080, config.GetInt(c, "BROKEN_INT", 8080))

	assert.True(t, config.GetBool(c, "COMMENTS_ADMIN_ONLY", false))
	assert.False(t, config.GetBool(c, "MISSING", false))
	assert.True(t, config.GetBool(c, "MISSING", true))
	assert.False(t, config.GetBool(c, "BROKEN_INT", false))
}

func TestGetters_NilConfig(t *testing.T) {
	assert.Equal(t, "x", config.GetString(nil, "ANY", "x"))
	assert.Equal(t, 7, config.GetInt(nil, "ANY", 7))
	assert.True(t, config.GetBool(nil, "ANY", true))
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "value")

	c := config.New()
	assert.Equal(t, "value", config.GetString(c, "CONFIG_TEST_KEY", ""))
}
