package roi

import (
	"roi-editor/pkg/geometry"
)

// LineRoi is a single segment with three anchors: Start moves one endpoint,
// End the other, and Middle translates the whole segment.
type LineRoi struct {
	base
	p0, p1 geometry.Point2D
}

// NewLine creates a line ROI from (x0, y0) to (x1, y1).
func NewLine(x0, y0, x1, y1 float64) *LineRoi {
	l := &LineRoi{
		p0: geometry.Point2D{X: x0, Y: y0},
		p1: geometry.Point2D{X: x1, Y: y1},
	}
	l.extend(l)
	l.AdjustAnchors()
	return l
}

func (l *LineRoi) Kind() string { return "line" }

func (l *LineRoi) AnchorTypes() []AnchorKind {
	return []AnchorKind{AnchorStart, AnchorMiddle, AnchorEnd}
}

func (l *LineRoi) AdjustRoi(a *Anchor, dx, dy float64) {
	l.mustOwnIndex(a)
	switch a.Kind {
	case AnchorStart:
		l.p0.X += dx
		l.p0.Y += dy
	case AnchorEnd:
		l.p1.X += dx
		l.p1.Y += dy
	case AnchorMiddle:
		l.Translate(dx, dy)
	}
	l.AdjustAnchors()
}

func (l *LineRoi) AdjustAnchors() {
	l.anchors[0].centerOn(l.p0)
	l.anchors[1].centerOn(l.p0.Lerp(l.p1, 0.5))
	l.anchors[2].centerOn(l.p1)
}

func (l *LineRoi) Translate(dx, dy float64) {
	l.p0.X += dx
	l.p0.Y += dy
	l.p1.X += dx
	l.p1.Y += dy
	l.AdjustAnchors()
}

// Start returns the first endpoint.
func (l *LineRoi) Start() geometry.Point2D { return l.p0 }

// End returns the second endpoint.
func (l *LineRoi) End() geometry.Point2D { return l.p1 }

func (l *LineRoi) BoundaryPoint(t float64) geometry.Point2D {
	return l.p0.Lerp(l.p1, t)
}

func (l *LineRoi) Bounds() geometry.Rect {
	return geometry.BoundingBox([]geometry.Point2D{l.p0, l.p1})
}
