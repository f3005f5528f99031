// Package colour provides colour conversion, palette reduction and pigment mixing
// for turning an image into a mosaic tile matrix.
package colour

import (
	"fmt"
	"image/color"
	"math"
)

// RGB represents a colour in 8-bit RGB format.
// It is comparable and used directly as a map key for frequency counting.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// Triplet returns the channels as a three element array, the form used in JSON output.
func (rgb RGB) Triplet() [3]uint8 {
	return [3]uint8{rgb.R, rgb.G, rgb.B}
}

// channel returns the value of channel 0 (R), 1 (G) or 2 (B).
func (rgb RGB) channel(axis int) uint8 {
	switch axis {
	case 0:
		return rgb.R
	case 1:
		return rgb.G
	default:
		return rgb.B
	}
}

// ToRGB converts a color.Color to RGB, dropping alpha without darkening
// semi-transparent colours.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// RGBA returns the colour as an opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// CMYK holds cyan, magenta, yellow and key (black) as percentages in [0, 100].
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// String formats the value as "C:c%,M:m%,Y:y%,K:k%".
func (c CMYK) String() string {
	return fmt.Sprintf("C:%.1f%%,M:%.1f%%,Y:%.1f%%,K:%.1f%%", c.C, c.M, c.Y, c.K)
}

// Max returns the largest of the four components.
func (c CMYK) Max() float64 {
	return math.Max(math.Max(c.C, c.M), math.Max(c.Y, c.K))
}

// HSL holds hue in degrees [0, 360) and saturation and lightness as percentages in [0, 100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// RGBToCMYK converts an RGB colour to CMYK percentages.
// Pure black short-circuits to (0, 0, 0, 100) so the (1-k) divisor is never zero.
func RGBToCMYK(rgb RGB) CMYK {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	k := 1.0 - math.Max(r, math.Max(g, b))
	if k == 1.0 {
		return CMYK{K: 100}
	}

	c := clamp01((1.0 - r - k) / (1.0 - k))
	m := clamp01((1.0 - g - k) / (1.0 - k))
	y := clamp01((1.0 - b - k) / (1.0 - k))

	return CMYK{
		C: percent(c),
		M: percent(m),
		Y: percent(y),
		K: percent(k),
	}
}

// CMYKToRGB converts CMYK percentages back to RGB using the additive key model.
func CMYKToRGB(c CMYK) RGB {
	k := c.K / 100.0
	conv := func(v float64) uint8 {
		return uint8(clamp01(1-math.Min(1, v/100.0+k)) * 255)
	}
	return RGB{R: conv(c.C), G: conv(c.M), B: conv(c.Y)}
}

// RGBToHSL converts an RGB colour to HSL.
// Achromatic colours (max == min) report hue and saturation of exactly zero.
func RGBToHSL(rgb RGB) HSL {
	h, s, l := rgbToHSL(rgb)

	hue := round1(h)
	if hue >= 360 {
		hue = 0
	}
	return HSL{H: hue, S: percent(s), L: percent(l)}
}

// rgbToHSL converts RGB to HSL colour space.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	if delta == 0 {
		return 0, 0, l
	}

	// Saturation.
	s = math.Min(1, delta/(1.0-math.Abs(2.0*l-1.0)))

	// Hue.
	switch maxVal {
	case r:
		h = math.Mod((g-b)/delta, 6)
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return h * 60, s, l
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// percent scales a unit value to a percentage rounded to one decimal.
func percent(v float64) float64 {
	return math.Max(0, math.Min(100, round1(v*100)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
