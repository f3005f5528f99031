package cli

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tessera/internal/colour"
	"github.com/jmylchreest/tessera/internal/config"
	"github.com/jmylchreest/tessera/internal/image"
	"github.com/jmylchreest/tessera/internal/layout"
	httputil "github.com/jmylchreest/tessera/internal/util/http"
)

// processed is one image turned into an annotated matrix.
type processed struct {
	source        string
	width, height int
	plan          layout.Plan
	result        *colour.Result
}

// process loads source, plans the grid, samples it and annotates the tiles.
// widthCM and heightCM must already be resolved and cfg validated.
func process(ctx context.Context, logger hclog.Logger, source string, widthCM, heightCM float64, cfg config.Config) (*processed, error) {
	path, err := image.ResolveImagePath(source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image: %w", err)
	}
	if err := image.ValidateImagePath(path); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}

	logger.Debug("loading image", "path", path)
	img, err := image.NewSmartLoader(httputil.FetchOptions{}).Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	plan, err := layout.NewPlan(bounds.Dx(), bounds.Dy(), widthCM, heightCM, cfg.TileSize, cfg.PreserveAspect)
	if err != nil {
		return nil, fmt.Errorf("failed to plan tile grid: %w", err)
	}
	logger.Debug("tile grid planned", "rows", plan.Rows, "cols", plan.Cols, "width_cm", plan.Width, "height_cm", plan.Height)

	raw, err := image.ToMatrix(img, plan.Rows, plan.Cols, image.MatrixOptions{Blur: cfg.Blur})
	if err != nil {
		return nil, fmt.Errorf("failed to sample image: %w", err)
	}

	annotator := colour.NewAnnotator(colour.WithLogger(logger), colour.WithWorkers(cfg.Workers))
	res, err := annotator.Annotate(raw, colour.AnnotateConfig{Quantize: cfg.Quantize, TargetSize: cfg.Colours})
	if err != nil {
		return nil, fmt.Errorf("failed to annotate matrix: %w", err)
	}

	return &processed{
		source: path,
		width:  bounds.Dx(),
		height: bounds.Dy(),
		plan:   plan,
		result: res,
	}, nil
}
