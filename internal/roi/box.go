package roi

import (
	"math"

	"roi-editor/pkg/geometry"
)

// boxGeometry is the axis-aligned bounding rect shared by the rectangle and
// ellipse variants, with the per-edge anchor adjustment both use. The rect
// is kept normalized: left <= right and top <= bottom at all times, so
// dragging a corner past the opposite edge flips the box instead of
// producing negative size.
type boxGeometry struct {
	rect geometry.Rect
}

// adjustEdges moves the edge(s) named by the anchor kind and re-normalizes.
func (g *boxGeometry) adjustEdges(kind AnchorKind, dx, dy float64) {
	left, top := g.rect.Left(), g.rect.Top()
	right, bottom := g.rect.Right(), g.rect.Bottom()

	switch kind {
	case AnchorLeft:
		left += dx
	case AnchorRight:
		right += dx
	case AnchorTop:
		top += dy
	case AnchorBottom:
		bottom += dy
	case AnchorTopLeft:
		left += dx
		top += dy
	case AnchorTopRight:
		right += dx
		top += dy
	case AnchorBottomLeft:
		left += dx
		bottom += dy
	case AnchorBottomRight:
		right += dx
		bottom += dy
	}

	g.rect = geometry.RectFromEdges(left, top, right, bottom).Normalized()
}

// layoutAnchors centers each anchor on its edge midpoint or corner.
func (g *boxGeometry) layoutAnchors(anchors []*Anchor) {
	r := g.rect
	for _, a := range anchors {
		switch a.Kind {
		case AnchorLeft:
			a.centerOn(geometry.Point2D{X: r.Left(), Y: r.Top() + r.Height/2})
		case AnchorRight:
			a.centerOn(geometry.Point2D{X: r.Right(), Y: r.Top() + r.Height/2})
		case AnchorTop:
			a.centerOn(geometry.Point2D{X: r.Left() + r.Width/2, Y: r.Top()})
		case AnchorBottom:
			a.centerOn(geometry.Point2D{X: r.Left() + r.Width/2, Y: r.Bottom()})
		case AnchorTopLeft:
			a.centerOn(geometry.Point2D{X: r.Left(), Y: r.Top()})
		case AnchorTopRight:
			a.centerOn(geometry.Point2D{X: r.Right(), Y: r.Top()})
		case AnchorBottomLeft:
			a.centerOn(geometry.Point2D{X: r.Left(), Y: r.Bottom()})
		case AnchorBottomRight:
			a.centerOn(geometry.Point2D{X: r.Right(), Y: r.Bottom()})
		}
	}
}

func (g *boxGeometry) translate(dx, dy float64) {
	g.rect.X += dx
	g.rect.Y += dy
}

// Rect returns the normalized bounding rect.
func (g *boxGeometry) Rect() geometry.Rect { return g.rect }

// RectangleRoi is an axis-aligned rectangle with eight anchors, one per
// edge midpoint and corner.
type RectangleRoi struct {
	base
	boxGeometry
}

// NewRectangle creates a rectangle ROI with top-left (x, y).
func NewRectangle(x, y, width, height float64) *RectangleRoi {
	r := &RectangleRoi{
		boxGeometry: boxGeometry{rect: geometry.NewRect(x, y, width, height).Normalized()},
	}
	r.extend(r)
	r.AdjustAnchors()
	return r
}

func (r *RectangleRoi) Kind() string { return "rectangle" }

func (r *RectangleRoi) AnchorTypes() []AnchorKind {
	return []AnchorKind{
		AnchorLeft,
		AnchorRight,
		AnchorTop,
		AnchorTopLeft,
		AnchorTopRight,
		AnchorBottom,
		AnchorBottomLeft,
		AnchorBottomRight,
	}
}

func (r *RectangleRoi) AdjustRoi(a *Anchor, dx, dy float64) {
	r.mustOwnIndex(a)
	r.adjustEdges(a.Kind, dx, dy)
	r.AdjustAnchors()
}

func (r *RectangleRoi) AdjustAnchors() {
	r.layoutAnchors(r.anchors)
}

func (r *RectangleRoi) Translate(dx, dy float64) {
	r.translate(dx, dy)
	r.AdjustAnchors()
}

// BoundaryPoint walks the rectangle perimeter clockwise from the top-left
// corner, parametrized by arc length. A zero-size rectangle returns its
// top-left corner.
func (r *RectangleRoi) BoundaryPoint(t float64) geometry.Point2D {
	rc := r.rect
	perimeter := 2 * (rc.Width + rc.Height)
	if perimeter == 0 {
		return rc.TopLeft()
	}

	t = clampUnit(t)
	d := t * perimeter
	switch {
	case d <= rc.Width:
		return geometry.Point2D{X: rc.Left() + d, Y: rc.Top()}
	case d <= rc.Width+rc.Height:
		return geometry.Point2D{X: rc.Right(), Y: rc.Top() + (d - rc.Width)}
	case d <= 2*rc.Width+rc.Height:
		return geometry.Point2D{X: rc.Right() - (d - rc.Width - rc.Height), Y: rc.Bottom()}
	default:
		return geometry.Point2D{X: rc.Left(), Y: rc.Bottom() - (d - 2*rc.Width - rc.Height)}
	}
}

func (r *RectangleRoi) Bounds() geometry.Rect { return r.rect }

// EllipseRoi is an axis-aligned ellipse inscribed in its bounding rect. It
// has only the four edge-midpoint anchors: the box corners are not on an
// ellipse's boundary, so corner anchors would float in space.
type EllipseRoi struct {
	base
	boxGeometry
}

// NewEllipse creates an ellipse ROI inscribed in the rect with top-left
// (x, y).
func NewEllipse(x, y, width, height float64) *EllipseRoi {
	e := &EllipseRoi{
		boxGeometry: boxGeometry{rect: geometry.NewRect(x, y, width, height).Normalized()},
	}
	e.extend(e)
	e.AdjustAnchors()
	return e
}

func (e *EllipseRoi) Kind() string { return "ellipse" }

func (e *EllipseRoi) AnchorTypes() []AnchorKind {
	return []AnchorKind{AnchorLeft, AnchorRight, AnchorTop, AnchorBottom}
}

func (e *EllipseRoi) AdjustRoi(a *Anchor, dx, dy float64) {
	e.mustOwnIndex(a)
	e.adjustEdges(a.Kind, dx, dy)
	e.AdjustAnchors()
}

func (e *EllipseRoi) AdjustAnchors() {
	e.layoutAnchors(e.anchors)
}

func (e *EllipseRoi) Translate(dx, dy float64) {
	e.translate(dx, dy)
	e.AdjustAnchors()
}

func (e *EllipseRoi) BoundaryPoint(t float64) geometry.Point2D {
	c := e.rect.Center()
	theta := 2 * math.Pi * clampUnit(t)
	return geometry.Point2D{
		X: c.X + e.rect.Width/2*math.Cos(theta),
		Y: c.Y + e.rect.Height/2*math.Sin(theta),
	}
}

func (e *EllipseRoi) Bounds() geometry.Rect { return e.rect }

func clampUnit(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
