// Package config abstracts runtime configuration access.
package config

import (
	"io"
	"time"
)

// Config defines typed accessors for configuration values.
//
// Implementations return the zero value when a key is absent or cannot be
// converted, so callers can rely on sane defaults instead of error handling
// at every read site.
type Config interface {
	io.Closer

	// GetString retrieves the value for key as a string.
	GetString(key string) string

	// GetBool retrieves the value for key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value for key as an int.
	GetInt(key string) int

	// GetInt64 retrieves the value for key as an int64.
	GetInt64(key string) int64

	// GetInt32 retrieves the value for key as an int32.
	GetInt32(key string) int32

	// GetFloat64 retrieves the value for key as a float64.
	GetFloat64(key string) float64

	// GetUint16 retrieves the value for key as a uint16.
	GetUint16(key string) uint16

	// GetSecond retrieves the value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value for key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetHour retrieves the value for key as a duration in hours.
	GetHour(key string) time.Duration

	// GetBinary retrieves the value for key decoded from base64.
	GetBinary(key string) []byte

	// GetArray retrieves the value for key as a comma-separated string slice.
	GetArray(key string) []string

	// GetMap retrieves the value for key parsed from "<k>:<v>,<k>:<v>" pairs.
	GetMap(key string) map[string]string
}
