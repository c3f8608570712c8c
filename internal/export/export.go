// Package export renders the scene to image files.
package export

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"roi-editor/internal/render"
	"roi-editor/internal/roi"
	"roi-editor/pkg/geometry"
)

// exportMargin is the canvas-unit border added around the ROIs when no
// background image defines the output size.
const exportMargin = 10.0

// PNG writes the background image with the ROI overlay to path at the given
// scale. Anchors are never included: the export shows the annotation, not
// the editing chrome. Strokes are drawn at each ROI's base width times the
// export scale, regardless of the editor's current zoom. Without an image,
// the output is sized to the ROIs' joint bounding box.
func PNG(path string, img image.Image, rois []roi.Roi, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("export: scale must be positive, got %v", scale)
	}

	var w, h int
	var offset geometry.Point2D
	if img != nil {
		b := img.Bounds()
		w = int(math.Ceil(float64(b.Dx()) * scale))
		h = int(math.Ceil(float64(b.Dy()) * scale))
	} else {
		if len(rois) == 0 {
			return fmt.Errorf("export: nothing to export")
		}
		bounds := rois[0].Bounds()
		for _, r := range rois[1:] {
			bounds = bounds.Union(r.Bounds())
		}
		bounds = bounds.Inset(-exportMargin)
		offset = bounds.TopLeft()
		w = int(math.Ceil(bounds.Width * scale))
		h = int(math.Ceil(bounds.Height * scale))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if img != nil {
		dc.Push()
		dc.Scale(scale, scale)
		dc.DrawImage(img, 0, 0)
		dc.Pop()
	} else {
		dc.Push()
		dc.Translate(-offset.X*scale, -offset.Y*scale)
	}

	for _, r := range rois {
		render.RoiBase(dc, r, scale)
	}
	if img == nil {
		dc.Pop()
	}

	return dc.SavePNG(path)
}
