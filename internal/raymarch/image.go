package raymarch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RenderImage renders a full w×h frame. Rows are shaded in parallel, bounded
// by GOMAXPROCS; all workers have returned by the time RenderImage returns.
// u.Width and u.Height are overwritten with w and h.
func (r *Renderer) RenderImage(ctx context.Context, u Uniforms, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", w, h)
	}
	u.Width, u.Height = float64(w), float64(h)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < h; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// image rows run top-down, fragment coordinates bottom-up
			fragY := float64(h-y) - 0.5
			for x := 0; x < w; x++ {
				cr, cg, cb := ToRGBA(r.Render(u, float64(x)+0.5, fragY))
				img.SetRGBA(x, y, color.RGBA{R: cr, G: cg, B: cb, A: 0xff})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render %dx%d frame: %w", w, h, err)
	}
	return img, nil
}
