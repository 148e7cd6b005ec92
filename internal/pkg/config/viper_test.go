package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: gomotor
  debug: true
  cors: "https://a.test, https://b.test,,"
  limits: "jpeg:5,png:3"
  secret: "c2VjcmV0"
  broken: "%%%"
  ttl: 15
`

func TestViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "gomotor", cfg.GetString("app.name"))
	assert.True(t, cfg.GetBool("app.debug"))
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.GetArray("app.cors"))
	assert.Equal(t, map[string]string{"jpeg": "5", "png": "3"}, cfg.GetMap("app.limits"))
	assert.Equal(t, []byte("secret"), cfg.GetBinary("app.secret"))
	assert.Nil(t, cfg.GetBinary("app.broken"))
	assert.Equal(t, 15*time.Minute, cfg.GetMinute("app.ttl"))
	assert.Equal(t, 15*time.Second, cfg.GetSecond("app.ttl"))
	assert.Empty(t, cfg.GetArray("app.missing"))
	assert.NoError(t, cfg.Close())
}

func TestViperFromBytesRequiresType(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sample))
	assert.Error(t, err)
}

func TestViperEnvOverride(t *testing.T) {
	t.Setenv("GOMOTOR_APP_NAME", "from-env")

	cfg, err := NewViperFromBytes("yaml", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GetString("app.name"))
}
