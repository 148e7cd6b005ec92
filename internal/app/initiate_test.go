package app

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, yaml string) *App {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	return &App{ctx: t.Context(), config: cfg}
}

func TestApp_MFAKeyRing(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))

	t.Run("Rotation", func(t *testing.T) {
		a := newTestApp(t, "mfa:\n  current_key: 2\n  keys: \"1:"+key+",2:"+key+"\"\n")

		ring, err := a.mfaKeyRing()

		require.NoError(t, err)
		assert.Equal(t, byte(2), ring.Current)
		assert.Len(t, ring.Keys, 2)
		assert.Len(t, ring.Keys[1], 32)
	})

	t.Run("BadVersion", func(t *testing.T) {
		a := newTestApp(t, "mfa:\n  current_key: 1\n  keys: \"x:"+key+"\"\n")

		_, err := a.mfaKeyRing()

		assert.Error(t, err)
	})
}

func TestApp_NSQConfig(t *testing.T) {
	a := newTestApp(t, `
messaging:
  nsq:
    consumer_config:
      max_in_flight: 8
      max_attempts: 5
      read_timeout_seconds: 30
`)

	cfg := a.nsqConfig("messaging.nsq.consumer_config")
	def := a.nsqConfig("messaging.nsq.producer_config")

	assert.Equal(t, 8, cfg.MaxInFlight)
	assert.Equal(t, uint16(5), cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, def.DialTimeout, cfg.DialTimeout)
}

func TestApp_GoogleCredentials(t *testing.T) {
	t.Run("FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))
		a := newTestApp(t, "storage:\n  gcs:\n    credentials_file: "+path+"\n")

		assert.JSONEq(t, `{"type":"service_account"}`, string(a.googleCredentials("storage.gcs")))
	})

	t.Run("Unset", func(t *testing.T) {
		a := newTestApp(t, "storage:\n  gcs:\n    endpoint: \"\"\n")

		assert.Nil(t, a.googleCredentials("storage.gcs"))
	})
}

func TestApp_InitStorageAndMessaging_Memory(t *testing.T) {
	a := newTestApp(t, "storage:\n  driver: memory\nmessaging:\n  driver: memory\n")

	a.initStorage()
	a.initMessaging()

	assert.IsType(t, &storage.Memory{}, a.storage)
	assert.IsType(t, &messaging.Memory{}, a.messaging)
	require.Len(t, a.closers, 2)
	for i := len(a.closers) - 1; i >= 0; i-- {
		assert.NoError(t, a.closers[i].fn(context.Background()))
	}
}
