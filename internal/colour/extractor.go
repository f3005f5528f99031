package colour

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"
)

// Extractor defines the interface for palette extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	// The count parameter specifies the maximum number of colours to extract.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the palette extraction algorithm type.
type Algorithm string

const (
	// AlgorithmMedianCut uses the median cut algorithm.
	AlgorithmMedianCut Algorithm = "mediancut"
)

// MaxColourCount is the largest palette an extractor will build.
const MaxColourCount = 256

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMedianCut,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm, logger hclog.Logger) (Extractor, error) {
	switch alg {
	case AlgorithmMedianCut:
		return NewMedianCutQuantizer(logger), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm   Algorithm
	ColourCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:   AlgorithmMedianCut,
		ColourCount: DefaultTargetSize,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: invalid algorithm: %s", ErrInvalidArgument, c.Algorithm)
	}
	if c.ColourCount < 1 {
		return fmt.Errorf("%w: colour count must be at least 1, got %d", ErrInvalidArgument, c.ColourCount)
	}
	if c.ColourCount > MaxColourCount {
		return fmt.Errorf("%w: colour count too large: %d (maximum: %d)", ErrInvalidArgument, c.ColourCount, MaxColourCount)
	}
	return nil
}
