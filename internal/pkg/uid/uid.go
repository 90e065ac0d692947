// Package uid provides ID generation used across modules.
package uid

// NumberID generates int64 identifiers.
//
// Implementations must produce IDs that are unique per node and strictly
// increasing over time, so newest-first ordering by ID is meaningful.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
