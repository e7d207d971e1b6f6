// Package storage defines the file-system abstraction for the target document.
package storage

// Provider reads and replaces whole files relative to a root directory.
type Provider interface {
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path with content.
	Write(path string, content []byte) error
}
