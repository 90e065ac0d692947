package hash

// Hash is the contract for one-way hashing of secrets.
//
// Verify must not leak timing information about the stored hash; all
// implementations in this package compare in constant time.
type Hash interface {
	// Hash returns the stored representation of plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the stored representation.
	Verify(hashed, plaintext string) bool
}
