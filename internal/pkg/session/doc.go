// Package session issues opaque bearer tokens backed by a database table.
//
// A token has the wire form "<id>|<secret>". Only a keyed hash of the secret
// is stored, so a database leak does not expose usable tokens, and deleting
// the row revokes the token immediately.
package session
