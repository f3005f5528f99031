package colour

import "sort"

// colourNode is a node in a KD-tree over palette colours. Each node holds the
// palette index of its colour and the axis along which its children are split.
type colourNode struct {
	colour      RGB
	index       int
	axis        int
	left, right *colourNode
}

// buildKDTree constructs a KD-tree over the palette. Indices refer to positions in colours.
func buildKDTree(colours []RGB) *colourNode {
	idx := make([]int, len(colours))
	for i := range idx {
		idx[i] = i
	}
	return buildKDNode(colours, idx)
}

func buildKDNode(colours []RGB, idx []int) *colourNode {
	if len(idx) == 0 {
		return nil
	}

	axis := widestAxis(colours, idx)
	sort.SliceStable(idx, func(i, j int) bool {
		return colours[idx[i]].channel(axis) < colours[idx[j]].channel(axis)
	})

	median := len(idx) / 2
	return &colourNode{
		colour: colours[idx[median]],
		index:  idx[median],
		axis:   axis,
		left:   buildKDNode(colours, idx[:median]),
		right:  buildKDNode(colours, idx[median+1:]),
	}
}

// widestAxis returns the channel with the largest value range among the given colours.
func widestAxis(colours []RGB, idx []int) int {
	lo := [3]uint8{255, 255, 255}
	var hi [3]uint8
	for _, i := range idx {
		for axis := range 3 {
			v := colours[i].channel(axis)
			lo[axis] = min(lo[axis], v)
			hi[axis] = max(hi[axis], v)
		}
	}

	best := 0
	for axis := 1; axis < 3; axis++ {
		if hi[axis]-lo[axis] > hi[best]-lo[best] {
			best = axis
		}
	}
	return best
}

// nearest returns the palette index closest to target. Equal distances resolve
// to the lower palette index so results match a linear scan.
func (n *colourNode) nearest(target RGB) int {
	best, bestDist := -1, 0
	n.search(target, &best, &bestDist)
	return best
}

func (n *colourNode) search(target RGB, best, bestDist *int) {
	if n == nil {
		return
	}

	d := distSq(n.colour, target)
	if *best < 0 || d < *bestDist || (d == *bestDist && n.index < *best) {
		*best, *bestDist = n.index, d
	}

	diff := int(target.channel(n.axis)) - int(n.colour.channel(n.axis))
	near, far := n.left, n.right
	if diff >= 0 {
		near, far = n.right, n.left
	}

	near.search(target, best, bestDist)
	// The far side can still hold an equally close colour with a lower index.
	if diff*diff <= *bestDist {
		far.search(target, best, bestDist)
	}
}
