package cli

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/tessera/internal/config"
)

// matrixFlags are the flags that decide how an image becomes a tile matrix.
type matrixFlags struct {
	width    float64
	height   float64
	tileSize float64
	noAspect bool
	quantize bool
	colours  int
	blur     float32
	workers  int
}

func (f *matrixFlags) register(fs *pflag.FlagSet) {
	defaults := config.Default()
	fs.Float64Var(&f.width, "width", 0, "output width in centimetres")
	fs.Float64Var(&f.height, "height", 0, "output height in centimetres")
	fs.Float64Var(&f.tileSize, "tile-size", defaults.TileSize, "tile edge length in centimetres")
	fs.BoolVar(&f.noAspect, "no-aspect", false, "use the exact width and height even if the image is distorted")
	fs.BoolVar(&f.quantize, "quantize", false, "reduce the tiles to a limited palette with median cut")
	fs.IntVarP(&f.colours, "colours", "c", defaults.Colours, "palette size when --quantize is set (1-256)")
	fs.Float32Var(&f.blur, "blur", 0, "Gaussian blur sigma applied before sampling")
	fs.IntVar(&f.workers, "workers", defaults.Workers, "goroutines used to annotate rows")
}

// apply copies every flag the user set onto cfg. Unset flags leave the
// environment or default value in place.
func (f *matrixFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("tile-size") {
		cfg.TileSize = f.tileSize
	}
	if fs.Changed("no-aspect") {
		cfg.PreserveAspect = !f.noAspect
	}
	if fs.Changed("quantize") {
		cfg.Quantize = f.quantize
	}
	if fs.Changed("colours") {
		cfg.Colours = f.colours
		// Asking for a palette size implies quantization.
		if !fs.Changed("quantize") {
			cfg.Quantize = true
		}
	}
	if fs.Changed("blur") {
		cfg.Blur = f.blur
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
}

// outputFlags select what generate writes and where.
type outputFlags struct {
	outputDir    string
	formats      []string
	compress     string
	previewScale int
}

func (f *outputFlags) register(fs *pflag.FlagSet) {
	defaults := config.Default()
	fs.StringVarP(&f.outputDir, "output-dir", "o", defaults.OutputDir, "directory for generated files")
	fs.StringSliceVar(&f.formats, "format", defaults.Formats, "output formats (txt, json, png)")
	fs.StringVar(&f.compress, "compress", defaults.Compression, "compress text and JSON output (none, xz, gzip)")
	fs.IntVar(&f.previewScale, "preview-scale", defaults.PreviewScale, "pixels per tile in the PNG preview")
}

func (f *outputFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if fs.Changed("format") {
		cfg.Formats = f.formats
	}
	if fs.Changed("compress") {
		cfg.Compression = f.compress
	}
	if fs.Changed("preview-scale") {
		cfg.PreviewScale = f.previewScale
	}
}
