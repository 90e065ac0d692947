// Package otp generates short numeric one-time codes.
//
// Codes are drawn from crypto/rand and meant to be delivered out of band
// (email), stored only in hashed form, and consumed exactly once.
package otp
