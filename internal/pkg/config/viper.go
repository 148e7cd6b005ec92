package config

import (
	"bytes"
	"encoding/base64"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. GOMOTOR_DATABASE_URL
// overrides database.url.
const EnvPrefix = "GOMOTOR"

// Viper is the Config backed by spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper reads the file at pathFile and reloads it whenever it changes.
func NewViper(pathFile string) (*Viper, error) {
	v := newViper()

	ext := filepath.Ext(pathFile)
	v.AddConfigPath(filepath.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(filepath.Base(pathFile), ext))
	if ext != "" {
		v.SetConfigType(strings.TrimPrefix(ext, "."))
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config file changed", "path", e.Name, "op", e.Op.String())
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes reads configuration from memory. It is used by tests
// and by the CLI when a config is piped in.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config: type is required")
	}

	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Viper) GetBool(key string) bool { return c.v.GetBool(key) }
func (c *Viper) GetString(key string) string { return c.v.GetString(key) }
func (c *Viper) GetInt(key string) int { return c.v.GetInt(key) }
func (c *Viper) GetInt32(key string) int32 { return c.v.GetInt32(key) }
func (c *Viper) GetInt64(key string) int64 { return c.v.GetInt64(key) }
func (c *Viper) GetUint(key string) uint { return c.v.GetUint(key) }
func (c *Viper) GetUint16(key string) uint16 { return uint16(c.v.GetUint(key)) }
func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

func (c *Viper) GetSecond(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Second
}

func (c *Viper) GetMinute(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Minute
}

func (c *Viper) GetBinary(key string) []byte {
	raw := strings.TrimSpace(c.v.GetString(key))
	if raw == "" {
		return nil
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	return data
}

func (c *Viper) GetArray(key string) []string {
	parts := strings.Split(c.v.GetString(key), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Viper) GetMap(key string) map[string]string {
	out := make(map[string]string)
	for _, pair := range c.GetArray(key) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// Close exists to satisfy io.Closer; viper holds nothing to release.
func (c *Viper) Close() error {
	return nil
}
