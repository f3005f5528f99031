package colour

import "math"

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	r := gammaCorrect(float64(c.R) / 255)
	g := gammaCorrect(float64(c.G) / 255)
	b := gammaCorrect(float64(c.B) / 255)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21.
func ContrastRatio(c1, c2 RGB) float64 {
	l1, l2 := Luminance(c1), Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// ReadableOn returns black or white, whichever contrasts more with bg.
func ReadableOn(bg RGB) RGB {
	black, white := RGB{}, RGB{R: 255, G: 255, B: 255}
	if ContrastRatio(bg, black) >= ContrastRatio(bg, white) {
		return black
	}
	return white
}
