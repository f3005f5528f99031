// Package compression wraps output streams in an optional compression codec
// and reads them back based on the file extension.
package compression

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/tessera/internal/security"
)

// Codec names a compression format.
type Codec string

const (
	// None writes data unchanged.
	None Codec = "none"
	// XZ compresses with xz.
	XZ Codec = "xz"
	// Gzip compresses with gzip.
	Gzip Codec = "gzip"
)

// MaxDecompressedSize bounds how much NewReader will inflate.
const MaxDecompressedSize = 256 << 20

// ValidCodecs returns the supported codecs.
func ValidCodecs() []Codec {
	return []Codec{None, XZ, Gzip}
}

// ParseCodec parses a codec name. The empty string means None.
func ParseCodec(s string) (Codec, error) {
	switch Codec(strings.ToLower(s)) {
	case "", None:
		return None, nil
	case XZ:
		return XZ, nil
	case Gzip, "gz":
		return Gzip, nil
	default:
		return "", fmt.Errorf("unknown compression %q (valid: %v)", s, ValidCodecs())
	}
}

// Extension returns the filename suffix for the codec, including the dot.
func (c Codec) Extension() string {
	switch c {
	case XZ:
		return ".xz"
	case Gzip:
		return ".gz"
	default:
		return ""
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewWriter wraps w with the codec. Closing the result flushes the codec but
// does not close w.
func NewWriter(w io.Writer, c Codec) (io.WriteCloser, error) {
	switch c {
	case None, "":
		return nopCloser{w}, nil
	case XZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xw, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

// DetectCodec infers the codec from a file name.
func DetectCodec(name string) Codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xz":
		return XZ
	case ".gz":
		return Gzip
	default:
		return None
	}
}

// NewReader returns a reader that decompresses r according to the codec,
// limited to MaxDecompressedSize bytes of output.
func NewReader(r io.Reader, c Codec) (io.Reader, error) {
	var inner io.Reader
	switch c {
	case None, "":
		inner = r
	case XZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		inner = xr
	case Gzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		inner = gr
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
	return security.NewLimitedReader(inner, MaxDecompressedSize), nil
}
