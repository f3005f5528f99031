package colour

import (
	"strings"
	"testing"
)

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 1, G: 2, B: 3}, 4)
	want := "\033[48;2;1;2;3m    \033[0m"
	if got != want {
		t.Errorf("ColourPreview() = %q, want %q", got, want)
	}

	if got := ColourPreview(RGB{}, 0); !strings.Contains(got, strings.Repeat(" ", defaultWidth)) {
		t.Errorf("ColourPreview() with zero width = %q, want default width", got)
	}
}

func TestColourPreviewWithText(t *testing.T) {
	tests := []struct {
		name     string
		colour   RGB
		text     string
		width    int
		wantFg   string
		wantText string
	}{
		{name: "centred on dark", colour: RGB{}, text: "ab", width: 6, wantFg: "38;2;255;255;255m", wantText: "  ab  "},
		{name: "truncated on light", colour: RGB{R: 255, G: 255, B: 255}, text: "abcdef", width: 3, wantFg: "38;2;0;0;0m", wantText: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColourPreviewWithText(tt.colour, tt.text, tt.width)
			if !strings.Contains(got, tt.wantFg) {
				t.Errorf("ColourPreviewWithText() = %q, missing foreground %q", got, tt.wantFg)
			}
			if !strings.Contains(got, tt.wantText+ansiReset) {
				t.Errorf("ColourPreviewWithText() = %q, missing text %q", got, tt.wantText)
			}
		})
	}
}

func TestFormatColourWithPreview(t *testing.T) {
	if got := FormatColourWithPreview(RGB{R: 255}, 2); !strings.HasSuffix(got, " #FF0000") {
		t.Errorf("FormatColourWithPreview() = %q, want hex suffix", got)
	}
}

func TestSupportsANSIColoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if SupportsANSIColours(nil) {
		t.Error("SupportsANSIColours(nil) = true, want false")
	}
}
