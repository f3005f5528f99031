package colour

import (
	"container/heap"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// WeightedColour is a colour together with the number of source pixels holding it.
type WeightedColour struct {
	Colour RGB `json:"rgb"`
	Count  int `json:"count"`
}

// WeightedColours counts every cell of the matrix, returning distinct colours in
// first-seen (row-major) order.
func WeightedColours(m Matrix) []WeightedColour {
	index := make(map[RGB]int)
	var out []WeightedColour
	for _, row := range m {
		for _, c := range row {
			if i, ok := index[c]; ok {
				out[i].Count++
				continue
			}
			index[c] = len(out)
			out = append(out, WeightedColour{Colour: c, Count: 1})
		}
	}
	return out
}

// colourBox bounds a non-empty subset of weighted colours.
type colourBox struct {
	members    []WeightedColour
	lo, hi     [3]uint8
	population int
	axis, span int
	seq        int // creation order
}

func newColourBox(members []WeightedColour, seq int) *colourBox {
	b := &colourBox{
		members: members,
		lo:      [3]uint8{255, 255, 255},
		seq:     seq,
	}
	for _, m := range members {
		for axis := range 3 {
			v := m.Colour.channel(axis)
			b.lo[axis] = min(b.lo[axis], v)
			b.hi[axis] = max(b.hi[axis], v)
		}
		b.population += m.Count
	}
	// Ties prefer R, then G, then B.
	for a := range 3 {
		if s := int(b.hi[a]) - int(b.lo[a]); s > b.span {
			b.axis, b.span = a, s
		}
	}
	return b
}

// splittable reports whether the box holds more than one distinct colour.
func (b *colourBox) splittable() bool {
	return len(b.members) > 1
}

// split sorts members along the widest channel and cuts at the weighted median.
func (b *colourBox) split(nextSeq int) (*colourBox, *colourBox) {
	axis := b.axis
	sort.SliceStable(b.members, func(i, j int) bool {
		return b.members[i].Colour.channel(axis) < b.members[j].Colour.channel(axis)
	})

	cut := len(b.members)
	acc := 0
	for i, m := range b.members {
		acc += m.Count
		if 2*acc >= b.population {
			cut = i + 1
			break
		}
	}
	// The crossing member was the last one, so fall back to the colour-count median.
	if cut >= len(b.members) {
		cut = len(b.members) / 2
	}

	return newColourBox(b.members[:cut], nextSeq), newColourBox(b.members[cut:], nextSeq+1)
}

// mean returns the population-weighted average colour, rounded per channel.
func (b *colourBox) mean() RGB {
	var sum [3]float64
	for _, m := range b.members {
		for axis := range 3 {
			sum[axis] += float64(m.Colour.channel(axis)) * float64(m.Count)
		}
	}
	pop := float64(b.population)
	return RGB{
		R: uint8(math.Round(sum[0] / pop)),
		G: uint8(math.Round(sum[1] / pop)),
		B: uint8(math.Round(sum[2] / pop)),
	}
}

// representative returns the box mean. When rounding made that collide with
// an earlier box it returns the free member closest to the mean, and failing
// that the closest free colour of the whole input.
func (b *colourBox) representative(used map[RGB]bool, all []WeightedColour) RGB {
	mean := b.mean()
	if !used[mean] {
		return mean
	}
	if c, ok := nearestFree(b.members, mean, used); ok {
		return c
	}
	c, _ := nearestFree(all, mean, used)
	return c
}

// nearestFree returns the colour in set closest to target that is not in used.
// Ties go to the earliest entry.
func nearestFree(set []WeightedColour, target RGB, used map[RGB]bool) (RGB, bool) {
	best, bestDist := -1, 0
	for i, m := range set {
		if used[m.Colour] {
			continue
		}
		if d := distSq(m.Colour, target); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return RGB{}, false
	}
	return set[best].Colour, true
}

// boxQueue is a max-heap of boxes: widest range first, then larger population,
// then earlier creation.
type boxQueue []*colourBox

func (q boxQueue) Len() int { return len(q) }

func (q boxQueue) Less(i, j int) bool {
	if q[i].span != q[j].span {
		return q[i].span > q[j].span
	}
	if q[i].population != q[j].population {
		return q[i].population > q[j].population
	}
	return q[i].seq < q[j].seq
}

func (q boxQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *boxQueue) Push(x any) { *q = append(*q, x.(*colourBox)) }

func (q *boxQueue) Pop() any {
	old := *q
	n := len(old)
	b := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return b
}

// MedianCutQuantizer reduces a weighted colour set to a bounded palette using median cut.
type MedianCutQuantizer struct {
	logger hclog.Logger
}

// NewMedianCutQuantizer creates a MedianCutQuantizer. A nil logger discards output.
func NewMedianCutQuantizer(logger hclog.Logger) *MedianCutQuantizer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &MedianCutQuantizer{logger: logger}
}

// Quantize reduces colours to at most target representative colours.
// If there are no more distinct colours than target they are returned unchanged.
func (q *MedianCutQuantizer) Quantize(colours []WeightedColour, target int) (*Palette, error) {
	boxes, err := q.partition(colours, target)
	if err != nil {
		return nil, err
	}

	// partition reorders box members in place, so take a fresh first-seen copy.
	// There are more distinct colours than boxes, so a free colour always exists.
	distinct, err := mergeWeighted(colours)
	if err != nil {
		return nil, err
	}

	reps := make([]RGB, 0, len(boxes))
	used := make(map[RGB]bool, len(boxes))
	for _, b := range boxes {
		rep := b.representative(used, distinct)
		used[rep] = true
		reps = append(reps, rep)
	}
	palette := NewPalette(reps)
	q.logger.Debug("median cut complete", "boxes", len(boxes), "palette", palette.Len(), "target", target)
	return palette, nil
}

// partition runs the box splitting and returns the final boxes in creation order.
func (q *MedianCutQuantizer) partition(colours []WeightedColour, target int) ([]*colourBox, error) {
	if target < 1 {
		return nil, fmt.Errorf("%w: palette size must be at least 1, got %d", ErrInvalidArgument, target)
	}
	if len(colours) == 0 {
		return nil, fmt.Errorf("%w: colour set is empty", ErrInvalidArgument)
	}

	distinct, err := mergeWeighted(colours)
	if err != nil {
		return nil, err
	}

	if len(distinct) <= target {
		q.logger.Debug("palette early exit", "distinct", len(distinct), "target", target)
		boxes := make([]*colourBox, len(distinct))
		for i, wc := range distinct {
			boxes[i] = newColourBox([]WeightedColour{wc}, i)
		}
		return boxes, nil
	}

	seq := 0
	queue := &boxQueue{newColourBox(distinct, seq)}
	seq++
	var done []*colourBox

	for queue.Len()+len(done) < target && queue.Len() > 0 {
		best := heap.Pop(queue).(*colourBox)
		if !best.splittable() {
			// Unsplittable boxes have zero range and sort last, so nothing else can split.
			done = append(done, best)
			break
		}
		lo, hi := best.split(seq)
		seq += 2
		heap.Push(queue, lo)
		heap.Push(queue, hi)
	}

	boxes := append(done, *queue...)
	sort.Slice(boxes, func(i, j int) bool { return boxes[i].seq < boxes[j].seq })
	return boxes, nil
}

// mergeWeighted validates counts and folds duplicate colours together in first-seen order.
func mergeWeighted(colours []WeightedColour) ([]WeightedColour, error) {
	index := make(map[RGB]int, len(colours))
	out := make([]WeightedColour, 0, len(colours))
	for _, wc := range colours {
		if wc.Count < 1 {
			return nil, fmt.Errorf("%w: colour %s has count %d", ErrInvalidArgument, wc.Colour.Hex(), wc.Count)
		}
		if i, ok := index[wc.Colour]; ok {
			out[i].Count += wc.Count
			continue
		}
		index[wc.Colour] = len(out)
		out = append(out, wc)
	}
	return out, nil
}

// Extract counts every pixel of img and quantizes to count colours.
func (q *MedianCutQuantizer) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidArgument)
	}

	bounds := img.Bounds()
	m := make(Matrix, 0, bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := make([]RGB, 0, bounds.Dx())
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			row = append(row, ToRGB(img.At(x, y)))
		}
		m = append(m, row)
	}

	return q.Quantize(WeightedColours(m), count)
}
