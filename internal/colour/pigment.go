package colour

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Pigment is one of the fixed base paints every mix is expressed in.
type Pigment int

// Base pigments in basis order.
const (
	Cyan Pigment = iota
	Magenta
	Yellow
	Black
	White

	pigmentCount
)

var pigmentNames = [pigmentCount]string{"cyan", "magenta", "yellow", "black", "white"}

// pigmentCMYK is the CMYK definition of each base pigment.
var pigmentCMYK = [pigmentCount]CMYK{
	{C: 100},
	{M: 100},
	{Y: 100},
	{K: 100},
	{},
}

// String returns the lower-case pigment name.
func (p Pigment) String() string {
	if p < 0 || p >= pigmentCount {
		return fmt.Sprintf("pigment(%d)", int(p))
	}
	return pigmentNames[p]
}

// PigmentSwatch describes a base pigment that has to be purchased.
type PigmentSwatch struct {
	Pigment Pigment `json:"-"`
	Name    string  `json:"name"`
	RGB     RGB     `json:"rgb"`
	Hex     string  `json:"hex"`
	CMYK    CMYK    `json:"cmyk"`
}

// Pigments returns the base pigment set in basis order.
func Pigments() []PigmentSwatch {
	out := make([]PigmentSwatch, pigmentCount)
	for p := range pigmentCount {
		rgb := CMYKToRGB(pigmentCMYK[p])
		out[p] = PigmentSwatch{
			Pigment: p,
			Name:    p.String(),
			RGB:     rgb,
			Hex:     rgb.Hex(),
			CMYK:    pigmentCMYK[p],
		}
	}
	return out
}

// PigmentMix holds the percentage share of each base pigment. Shares are
// non-negative and sum to 100.
type PigmentMix [pigmentCount]float64

// Share returns the percentage of pigment p in the mix.
func (m PigmentMix) Share(p Pigment) float64 {
	if p < 0 || p >= pigmentCount {
		return 0
	}
	return m[p]
}

// Total returns the sum of all shares.
func (m PigmentMix) Total() float64 {
	var t float64
	for _, v := range m {
		t += v
	}
	return t
}

// Instruction renders the non-zero shares, e.g. "Mix: 40.0% cyan, 60.0% white".
func (m PigmentMix) Instruction() string {
	parts := make([]string, 0, pigmentCount)
	for p, v := range m {
		if v > 0 {
			parts = append(parts, fmt.Sprintf("%.1f%% %s", v, Pigment(p)))
		}
	}
	if len(parts) == 0 {
		return "Use white (100%)"
	}
	return "Mix: " + strings.Join(parts, ", ")
}

// MarshalJSON encodes the mix as an object keyed by pigment name, shares rounded to one decimal.
func (m PigmentMix) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for p, v := range m {
		if p > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%q:%s", Pigment(p), jsonFloat(v))
	}
	sb.WriteByte('}')
	return []byte(sb.String()), nil
}

func jsonFloat(v float64) string {
	b, _ := json.Marshal(round1(v))
	return string(b)
}

// Mix expresses c as shares of the base pigments.
//
// The CMYK percentages are used as the coloured shares directly and white is
// 100 minus the strongest of them. The five raw shares are then scaled to sum
// to 100. This is an approximation, not a subtractive mixing model.
func Mix(c RGB) PigmentMix {
	cmyk := RGBToCMYK(c)

	raw := PigmentMix{
		Cyan:    cmyk.C,
		Magenta: cmyk.M,
		Yellow:  cmyk.Y,
		Black:   cmyk.K,
		White:   math.Max(0, 100-cmyk.Max()),
	}

	total := raw.Total()
	if total == 0 {
		return PigmentMix{White: 100}
	}

	var mix PigmentMix
	for p, v := range raw {
		mix[p] = v / total * 100
	}
	return mix
}
