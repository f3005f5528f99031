package compression

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	payload := strings.Repeat("10,20,30[C:66.7%,M:33.3%,Y:0.0%,K:88.2%] #0A141E\n", 200)

	for _, codec := range ValidCodecs() {
		t.Run(string(codec), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, codec)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if _, err := io.WriteString(w, payload); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if codec != None && buf.Len() >= len(payload) {
				t.Errorf("compressed size %d not smaller than input %d", buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, codec)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != payload {
				t.Error("round trip changed the payload")
			}
		})
	}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    Codec
		wantErr bool
	}{
		{in: "", want: None},
		{in: "none", want: None},
		{in: "XZ", want: XZ},
		{in: "gz", want: Gzip},
		{in: "gzip", want: Gzip},
		{in: "zstd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCodec(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCodec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCodec(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectCodec(t *testing.T) {
	tests := []struct {
		name string
		want Codec
	}{
		{name: "a_matrix.json.xz", want: XZ},
		{name: "a_matrix.txt.GZ", want: Gzip},
		{name: "a_matrix.json", want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCodec(tt.name); got != tt.want {
				t.Errorf("DetectCodec(%q) = %q, want %q", tt.name, got, tt.want)
			}
			if got := DetectCodec("x" + tt.want.Extension()); got != tt.want {
				t.Errorf("DetectCodec(Extension()) = %q, want %q", got, tt.want)
			}
		})
	}
}
