// Package render draws ROIs onto a raster surface. It is shared by the
// interactive canvas and the PNG exporter so both produce identical output.
package render

import (
	"github.com/fogleman/gg"

	"roi-editor/internal/roi"
)

// Rois draws every ROI in order (later ROIs on top), with anchors for those
// whose anchors are visible. zoom maps canvas coordinates to surface pixels.
func Rois(dc *gg.Context, rois []roi.Roi, zoom float64) {
	for _, r := range rois {
		Roi(dc, r, zoom)
	}
	for _, r := range rois {
		Anchors(dc, r, zoom)
	}
}

// Roi strokes a single ROI's boundary. The stroke width is the ROI's
// rendered width (base/scale) times zoom, so with scale kept equal to zoom
// the stroke occupies a constant number of surface pixels.
func Roi(dc *gg.Context, r roi.Roi, zoom float64) {
	width := r.StrokeWidth() * zoom
	shapePath(dc, r, zoom, width)
	dc.SetColor(r.Style().Color)
	dc.SetLineWidth(width)
	dc.Stroke()
}

// RoiBase strokes a single ROI's boundary at its base stroke width times
// scale, ignoring the ROI's current zoom scale. The exporter uses this so
// output thickness depends only on the ROI's style and the export scale,
// never on how far the editor happened to be zoomed.
func RoiBase(dc *gg.Context, r roi.Roi, scale float64) {
	width := r.Style().BaseStrokeWidth * scale
	shapePath(dc, r, scale, width)
	dc.SetColor(r.Style().Color)
	dc.SetLineWidth(width)
	dc.Stroke()
}

// Anchors strokes the handle squares of an ROI whose anchors are visible.
func Anchors(dc *gg.Context, r roi.Roi, zoom float64) {
	if !r.AnchorsVisible() {
		return
	}
	width := r.StrokeWidth() * zoom
	for _, a := range r.Anchors() {
		rect := a.Rect()
		dc.DrawRectangle(rect.X*zoom, rect.Y*zoom, rect.Width*zoom, rect.Height*zoom)
		dc.SetColor(r.Style().Color)
		dc.SetLineWidth(width)
		dc.Stroke()
	}
}

// shapePath traces the ROI's outline into the context's current path using
// the native primitive for each variant. Unknown variants fall back to
// sampling the boundary path. width is the stroke width in surface pixels,
// used only to size the dot of a single-vertex path.
func shapePath(dc *gg.Context, r roi.Roi, zoom, width float64) {
	switch v := r.(type) {
	case *roi.RectangleRoi:
		rc := v.Rect()
		dc.DrawRectangle(rc.X*zoom, rc.Y*zoom, rc.Width*zoom, rc.Height*zoom)

	case *roi.EllipseRoi:
		rc := v.Rect()
		c := rc.Center()
		dc.DrawEllipse(c.X*zoom, c.Y*zoom, rc.Width/2*zoom, rc.Height/2*zoom)

	case *roi.LineRoi:
		p0, p1 := v.Start(), v.End()
		dc.MoveTo(p0.X*zoom, p0.Y*zoom)
		dc.LineTo(p1.X*zoom, p1.Y*zoom)

	case *roi.PathRoi:
		verts := v.Vertices()
		if len(verts) == 1 {
			// Single-vertex path: a dot the size of the stroke.
			dc.DrawCircle(verts[0].X*zoom, verts[0].Y*zoom, width/2)
			return
		}
		dc.MoveTo(verts[0].X*zoom, verts[0].Y*zoom)
		for _, p := range verts[1:] {
			dc.LineTo(p.X*zoom, p.Y*zoom)
		}

	case *roi.PointRoi:
		c := v.Center()
		dc.DrawCircle(c.X*zoom, c.Y*zoom, v.Diameter()/2*zoom)

	default:
		p := r.BoundaryPoint(0)
		dc.MoveTo(p.X*zoom, p.Y*zoom)
		for t := roi.BoundaryIncrement; t <= 1; t += roi.BoundaryIncrement {
			p = r.BoundaryPoint(t)
			dc.LineTo(p.X*zoom, p.Y*zoom)
		}
	}
}
