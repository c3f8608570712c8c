package roi

import (
	"math"

	"roi-editor/pkg/geometry"
)

// PointRoi marks a single position, drawn as a small circle. It has no
// anchors and no reshape behavior; it only translates as a whole.
type PointRoi struct {
	base
	center   geometry.Point2D
	diameter float64
}

// NewPoint creates a point ROI centered at (x, y) with the given diameter.
func NewPoint(x, y, diameter float64) *PointRoi {
	p := &PointRoi{
		center:   geometry.Point2D{X: x, Y: y},
		diameter: diameter,
	}
	p.extend(p)
	return p
}

func (p *PointRoi) Kind() string { return "point" }

func (p *PointRoi) AnchorTypes() []AnchorKind { return nil }

func (p *PointRoi) AdjustRoi(a *Anchor, dx, dy float64) {
	p.mustOwnIndex(a)
}

func (p *PointRoi) AdjustAnchors() {}

func (p *PointRoi) Translate(dx, dy float64) {
	p.center.X += dx
	p.center.Y += dy
}

// Center returns the marker center.
func (p *PointRoi) Center() geometry.Point2D { return p.center }

// Diameter returns the marker diameter.
func (p *PointRoi) Diameter() float64 { return p.diameter }

func (p *PointRoi) BoundaryPoint(t float64) geometry.Point2D {
	r := p.diameter / 2
	theta := 2 * math.Pi * t
	return geometry.Point2D{
		X: p.center.X + r*math.Cos(theta),
		Y: p.center.Y + r*math.Sin(theta),
	}
}

func (p *PointRoi) Bounds() geometry.Rect {
	r := p.diameter / 2
	return geometry.NewRect(p.center.X-r, p.center.Y-r, p.diameter, p.diameter)
}
