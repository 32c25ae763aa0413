// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Matching constants
const (
	// DefaultMatchThreshold is the default maximum L2 distance below which a
	// candidate embedding is considered the same person (raw Facenet scale)
	DefaultMatchThreshold = 10.0

	// DefaultEmbeddingDim is the default face embedding dimensionality (Facenet)
	DefaultEmbeddingDim = 128
)

// Image constants
const (
	// MaxImageSize is the maximum dimension (width or height) sent to the extractor
	MaxImageSize = 1920

	// MaxUploadBytes is the maximum accepted request body for image uploads
	MaxUploadBytes = 16 << 20
)
