// Package config provides generation settings with defaults and environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jmylchreest/tessera/internal/colour"
	"github.com/jmylchreest/tessera/internal/compression"
	"github.com/jmylchreest/tessera/internal/layout"
	"github.com/jmylchreest/tessera/internal/output"
)

// Environment variables read by WithEnv.
const (
	EnvTileSize     = "TESSERA_TILE_SIZE"
	EnvColours      = "TESSERA_COLOURS"
	EnvQuantize     = "TESSERA_QUANTIZE"
	EnvOutputDir    = "TESSERA_OUTPUT_DIR"
	EnvPreviewScale = "TESSERA_PREVIEW_SCALE"
	EnvFormats      = "TESSERA_FORMATS"
	EnvCompress     = "TESSERA_COMPRESS"
)

// DefaultOutputDir is where generated files are written.
const DefaultOutputDir = "output"

// DefaultInputDir is scanned for an image when no path is given.
const DefaultInputDir = "input"

// Config holds the settings for one generate run.
type Config struct {
	// TileSize is the tile edge length in centimetres.
	TileSize float64

	// Colours is the palette size used when Quantize is set.
	Colours int

	// Quantize reduces the matrix to at most Colours colours.
	Quantize bool

	// PreserveAspect shrinks the requested size to keep the image's aspect ratio.
	PreserveAspect bool

	// Blur is a Gaussian sigma applied before sampling. Zero disables it.
	Blur float32

	OutputDir    string
	Formats      []string
	Compression  string
	PreviewScale int

	// Workers is the number of goroutines used to annotate rows.
	Workers int
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		TileSize:       layout.DefaultTileSize,
		Colours:        colour.DefaultTargetSize,
		PreserveAspect: true,
		OutputDir:      DefaultOutputDir,
		Formats:        []string{string(output.FormatText), string(output.FormatJSON), string(output.FormatPNG)},
		Compression:    string(compression.None),
		PreviewScale:   output.DefaultPreviewScale,
		Workers:        1,
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %g", c.TileSize)
	}
	if c.Quantize {
		ec := colour.ExtractorConfig{Algorithm: colour.AlgorithmMedianCut, ColourCount: c.Colours}
		if err := ec.Validate(); err != nil {
			return err
		}
	}
	if c.Blur < 0 {
		return fmt.Errorf("blur must not be negative, got %g", c.Blur)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if _, err := output.ParseFormats(c.Formats); err != nil {
		return err
	}
	if _, err := compression.ParseCodec(c.Compression); err != nil {
		return err
	}
	if c.PreviewScale < 1 {
		return fmt.Errorf("preview scale must be at least 1, got %d", c.PreviewScale)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Builder provides a fluent interface for constructing a Config.
type Builder struct {
	config Config
	useEnv bool
	lookup func(string) (string, bool)
}

// NewBuilder creates a new Config builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
		lookup: os.LookupEnv,
	}
}

// WithConfig replaces the base configuration.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnv applies the TESSERA_* environment variables on top of the base configuration.
func (b *Builder) WithEnv() *Builder {
	b.useEnv = true
	return b
}

// withLookup replaces the environment lookup, for tests.
func (b *Builder) withLookup(fn func(string) (string, bool)) *Builder {
	b.lookup = fn
	return b
}

// Build constructs the Config. It fails when an environment variable cannot be parsed.
func (b *Builder) Build() (Config, error) {
	config := b.config
	config.Formats = append([]string(nil), b.config.Formats...)

	if !b.useEnv {
		return config, nil
	}

	if v, ok := b.lookup(EnvTileSize); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvTileSize, err)
		}
		config.TileSize = f
	}
	if v, ok := b.lookup(EnvColours); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvColours, err)
		}
		config.Colours = n
	}
	if v, ok := b.lookup(EnvQuantize); ok {
		q, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvQuantize, err)
		}
		config.Quantize = q
	}
	if v, ok := b.lookup(EnvOutputDir); ok && v != "" {
		config.OutputDir = v
	}
	if v, ok := b.lookup(EnvPreviewScale); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvPreviewScale, err)
		}
		config.PreviewScale = n
	}
	if v, ok := b.lookup(EnvFormats); ok && v != "" {
		config.Formats = parseList(v)
	}
	if v, ok := b.lookup(EnvCompress); ok {
		config.Compression = strings.TrimSpace(v)
	}

	return config, nil
}

func parseList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
