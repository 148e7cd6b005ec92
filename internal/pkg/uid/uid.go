// Package uid generates identifiers: Snowflake numbers for rows and
// UUIDv7 strings for correlation ids, token ids and object keys.
package uid

// NumberID produces sortable numeric ids.
type NumberID interface {
	Generate() int64
}

// StringID produces unique string ids.
type StringID interface {
	Generate() string
}
