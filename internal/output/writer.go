package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tessera/internal/colour"
	"github.com/jmylchreest/tessera/internal/compression"
	"github.com/jmylchreest/tessera/internal/layout"
	"github.com/jmylchreest/tessera/internal/security"
)

// Format is an output file type.
type Format string

const (
	// FormatText is the annotated text matrix.
	FormatText Format = "txt"
	// FormatJSON is the JSON document.
	FormatJSON Format = "json"
	// FormatPNG is the upscaled preview image.
	FormatPNG Format = "png"
)

// TimestampLayout is the layout of the timestamp embedded in output file names.
const TimestampLayout = "20060102_150405"

// ValidFormats returns all output formats in write order.
func ValidFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatPNG}
}

// ParseFormats parses and de-duplicates format names, keeping write order.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool)
	for _, n := range names {
		f := Format(strings.ToLower(strings.TrimSpace(n)))
		if !slices.Contains(ValidFormats(), f) {
			return nil, fmt.Errorf("unknown output format %q (valid formats: %v)", n, ValidFormats())
		}
		seen[f] = true
	}

	var out []Format
	for _, f := range ValidFormats() {
		if seen[f] {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one output format is required")
	}
	return out, nil
}

// Writer writes the output files for one processed image.
type Writer struct {
	Dir          string
	Formats      []Format
	Codec        compression.Codec
	PreviewScale int
	Logger       hclog.Logger

	// Now is the clock used for file name timestamps.
	Now func() time.Time
}

// Job is the data written for one image.
type Job struct {
	Source string
	Result *colour.Result
	Plan   *layout.Plan
}

// FileNames returns the file name for each format given the source stem and time.
// Text and JSON names carry the codec extension. Previews are never compressed.
func FileNames(stem string, ts time.Time, codec compression.Codec) map[Format]string {
	prefix := fmt.Sprintf("%s-%s", stem, ts.Format(TimestampLayout))
	return map[Format]string{
		FormatText: prefix + "_matrix.txt" + codec.Extension(),
		FormatJSON: prefix + "_matrix.json" + codec.Extension(),
		FormatPNG:  prefix + ".png",
	}
}

// Stem returns the base name of source without its extension.
func Stem(source string) string {
	base := filepath.Base(source)
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		return "image"
	}
	return stem
}

// Write creates the output directory if needed and writes every configured
// format. It returns the paths written in format order.
func (w *Writer) Write(job Job) ([]string, error) {
	if job.Result == nil || job.Result.Matrix == nil {
		return nil, fmt.Errorf("%w: nothing to write", colour.ErrInvalidArgument)
	}

	logger := w.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	scale := w.PreviewScale
	if scale == 0 {
		scale = DefaultPreviewScale
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil { // #nosec G301 - output directory is user-visible
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	names := FileNames(Stem(job.Source), now(), w.Codec)
	var written []string
	for _, f := range w.Formats {
		name := names[f]
		if err := security.ValidateFileName(name); err != nil {
			return written, fmt.Errorf("invalid output file name: %w", err)
		}
		path := filepath.Join(w.Dir, name)

		var err error
		switch f {
		case FormatText:
			err = w.writeFile(path, w.Codec, func(out io.Writer) error {
				return WriteText(out, job.Result.Matrix, colour.Pigments())
			})
		case FormatJSON:
			err = w.writeFile(path, w.Codec, func(out io.Writer) error {
				doc, err := NewDocument(job.Source, job.Result, job.Plan)
				if err != nil {
					return err
				}
				return WriteJSON(out, doc)
			})
		case FormatPNG:
			err = w.writeFile(path, compression.None, func(out io.Writer) error {
				return WritePreview(out, job.Result.Matrix.Colours(), scale)
			})
		default:
			err = fmt.Errorf("unknown output format %q", f)
		}
		if err != nil {
			return written, err
		}

		logger.Debug("wrote output file", "format", f, "path", path)
		written = append(written, path)
	}
	return written, nil
}

// writeFile creates path, streams through the codec and removes the file on failure.
func (w *Writer) writeFile(path string, codec compression.Codec, fn func(io.Writer) error) (err error) {
	file, err := os.Create(path) // #nosec G304 - path built from a validated file name
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	cw, err := compression.NewWriter(file, codec)
	if err != nil {
		return err
	}
	if err := fn(cw); err != nil {
		return errors.Join(fmt.Errorf("failed to write %s: %w", path, err), cw.Close())
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
