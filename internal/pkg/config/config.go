// Package config exposes typed, read-only access to application settings.
package config

import (
	"io"
	"time"
)

// Config returns settings by dotted key. Missing keys yield the zero value,
// so callers that need a default apply it themselves.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetSecond and GetMinute read an integer and scale it into a duration.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration

	// GetBinary decodes a base64 value. Invalid input yields nil.
	GetBinary(key string) []byte

	// GetArray splits a "a,b,c" value, trimming blanks and dropping empties.
	GetArray(key string) []string

	// GetMap parses a "k1:v1,k2:v2" value.
	GetMap(key string) map[string]string
}
