// Package layout converts physical mosaic dimensions into tile grid sizes.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTileSize is the edge length of one square tile in centimetres.
const DefaultTileSize = 2.0

// nearFit is the share of the maximum height a width-fit must reach to be preferred.
const nearFit = 0.95

// epsilon absorbs floating point error before truncating to whole tiles.
const epsilon = 1e-9

// ErrEmptyGrid is returned when the requested size holds no complete tile.
var ErrEmptyGrid = errors.New("requested size holds no complete tile")

// Dimensions returns how many whole tiles fit in width x height.
func Dimensions(widthCM, heightCM, tileCM float64) (rows, cols int) {
	if tileCM <= 0 {
		return 0, 0
	}
	rows = int(math.Floor(heightCM/tileCM + epsilon))
	cols = int(math.Floor(widthCM/tileCM + epsilon))
	return max(rows, 0), max(cols, 0)
}

// FitAspectRatio scales an imgW x imgH image into maxW x maxH without distortion.
// When both the width-fit and the height-fit stay in bounds, the width-fit
// wins only if its height reaches 95% of maxH.
func FitAspectRatio(imgW, imgH int, maxW, maxH float64) (w, h float64) {
	if imgW <= 0 || imgH <= 0 {
		return maxW, maxH
	}
	aspect := float64(imgW) / float64(imgH)

	widthFitH := maxW / aspect
	heightFitW := maxH * aspect
	widthFits := widthFitH <= maxH
	heightFits := heightFitW <= maxW

	switch {
	case widthFits && heightFits:
		if widthFitH > maxH*nearFit {
			return maxW, widthFitH
		}
		return heightFitW, maxH
	case widthFits:
		return maxW, widthFitH
	case heightFits:
		return heightFitW, maxH
	}

	// Unreachable for finite positive input.
	if widthFitH/maxH < heightFitW/maxW {
		return maxW, widthFitH
	}
	return heightFitW, maxH
}

// Plan is the resolved tile grid for one mosaic.
type Plan struct {
	Rows            int     `json:"rows"`
	Cols            int     `json:"columns"`
	TileSize        float64 `json:"tile_size_cm"`
	RequestedWidth  float64 `json:"requested_width_cm"`
	RequestedHeight float64 `json:"requested_height_cm"`
	Width           float64 `json:"width_cm"`
	Height          float64 `json:"height_cm"`
}

// NewPlan computes the grid for an imgW x imgH image printed at most
// widthCM x heightCM with square tiles of tileCM. With preserve set the
// size is first shrunk to keep the image's aspect ratio.
func NewPlan(imgW, imgH int, widthCM, heightCM, tileCM float64, preserve bool) (Plan, error) {
	if widthCM <= 0 || heightCM <= 0 {
		return Plan{}, fmt.Errorf("dimensions must be positive, got %gcm x %gcm", widthCM, heightCM)
	}
	if tileCM <= 0 {
		return Plan{}, fmt.Errorf("tile size must be positive, got %gcm", tileCM)
	}

	p := Plan{
		TileSize:        tileCM,
		RequestedWidth:  widthCM,
		RequestedHeight: heightCM,
		Width:           widthCM,
		Height:          heightCM,
	}
	if preserve {
		p.Width, p.Height = FitAspectRatio(imgW, imgH, widthCM, heightCM)
	}

	p.Rows, p.Cols = Dimensions(p.Width, p.Height, tileCM)
	if p.Rows == 0 || p.Cols == 0 {
		return Plan{}, fmt.Errorf("%w: %.2fcm x %.2fcm with %.2fcm tiles", ErrEmptyGrid, p.Width, p.Height, tileCM)
	}
	return p, nil
}

// Tiles returns the total number of tiles.
func (p Plan) Tiles() int {
	return p.Rows * p.Cols
}

// Adjusted reports whether the size differs from the request by more than 0.01cm.
func (p Plan) Adjusted() bool {
	return math.Abs(p.Width-p.RequestedWidth) > 0.01 || math.Abs(p.Height-p.RequestedHeight) > 0.01
}

// TiledWidth is the width covered by whole tiles.
func (p Plan) TiledWidth() float64 {
	return float64(p.Cols) * p.TileSize
}

// TiledHeight is the height covered by whole tiles.
func (p Plan) TiledHeight() float64 {
	return float64(p.Rows) * p.TileSize
}
