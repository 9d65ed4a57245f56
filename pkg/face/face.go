// Package face models the face-signal capability: an uploaded photo
// becomes an embedding vector that can be compared against candidate
// profile images. The embedding extraction itself is an external
// service; this package owns the interface, the vector math, and the
// image preprocessing in front of it.
package face

import (
	"context"
	"errors"
	"math"
)

// ErrNoFace indicates no detectable face in the supplied image.
var ErrNoFace = errors.New("no face detected in image")

// Embedding is a face feature vector.
type Embedding []float64

// Extractor turns an image into a face embedding.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (Embedding, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, image []byte) (Embedding, error)

// Extract implements Extractor.
func (f ExtractorFunc) Extract(ctx context.Context, image []byte) (Embedding, error) {
	return f(ctx, image)
}

// CosineSimilarity returns the cosine of the angle between two
// embeddings, in [-1, 1]. Mismatched lengths or a zero vector return an
// error rather than a garbage score.
func CosineSimilarity(a, b Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.New("embedding length mismatch")
	}
	if len(a) == 0 {
		return 0, errors.New("empty embedding")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-magnitude embedding")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
