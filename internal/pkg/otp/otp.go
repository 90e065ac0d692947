package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generator defines the contract for producing one-time codes.
type Generator interface {
	// Generate returns a fresh single-use code.
	Generate() (string, error)
}

// Numeric produces uniformly distributed decimal codes of a fixed length.
//
// A code never starts with zero: for 6 digits the value is drawn from
// [100000, 999999], so the string form always has exactly the configured
// number of digits without padding.
type Numeric struct {
	low  *big.Int
	span *big.Int
}

// NewNumeric returns a generator for codes of the given digit length.
//
// Lengths outside [4, 10] fall back to the common 6 digits.
func NewNumeric(digits int) *Numeric {
	if digits < 4 || digits > 10 {
		digits = 6
	}

	low := int64(1)
	for range digits - 1 {
		low *= 10
	}

	return &Numeric{
		low:  big.NewInt(low),
		span: big.NewInt(9 * low),
	}
}

// Generate draws a code from crypto/rand.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.span)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(v.Add(v, n.low).Int64(), 10), nil
}
