package record

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	// DefaultIDLength is the length of generated record IDs.
	DefaultIDLength = 12
)

// NewID generates a random lowercase alphanumeric record ID.
func NewID(length int) string {
	if length <= 0 {
		length = DefaultIDLength
	}
	return gonanoid.MustGenerate(idAlphabet, length)
}
