package roi

import (
	"fmt"

	"roi-editor/pkg/geometry"
)

// PathRoi is a polyline or polygon. When anchored, every vertex carries its
// own draggable anchor; otherwise the path only translates as a whole and
// has no anchors at all. A closed path stores a synthetic closing vertex,
// a duplicate of vertex 0, as its last element so the outline stays closed
// while vertex 0 is dragged.
type PathRoi struct {
	base
	verts    []geometry.Point2D
	nPoints  int // vertex count excluding the synthetic closing vertex
	closed   bool
	anchored bool
}

// NewPath creates a path ROI from parallel coordinate slices. The slices
// are truncated to the shorter length; a path with no points is rejected.
func NewPath(xs, ys []float64, closed, anchored bool) (*PathRoi, error) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 1 {
		return nil, fmt.Errorf("roi: path needs at least one coordinate pair, got %d", n)
	}

	verts := make([]geometry.Point2D, n, n+1)
	for i := 0; i < n; i++ {
		verts[i] = geometry.Point2D{X: xs[i], Y: ys[i]}
	}
	if closed {
		verts = append(verts, verts[0])
	}

	p := &PathRoi{
		verts:    verts,
		nPoints:  n,
		closed:   closed,
		anchored: anchored,
	}
	p.extend(p)
	p.AdjustAnchors()
	return p, nil
}

func (p *PathRoi) Kind() string {
	if p.closed {
		return "polygon"
	}
	return "path"
}

// AnchorTypes returns one anchor per vertex for an anchored path: Start,
// then Middle for each interior vertex, then End. The kinds are cosmetic
// labels; adjustment is purely positional. Non-anchored paths have no
// anchors.
func (p *PathRoi) AnchorTypes() []AnchorKind {
	if !p.anchored {
		return nil
	}
	kinds := make([]AnchorKind, p.nPoints)
	for i := range kinds {
		switch i {
		case 0:
			kinds[i] = AnchorStart
		case p.nPoints - 1:
			kinds[i] = AnchorEnd
		default:
			kinds[i] = AnchorMiddle
		}
	}
	return kinds
}

// AdjustRoi moves the vertex whose anchor was dragged. Dragging vertex 0 of
// a closed path moves the synthetic closing vertex identically so the path
// stays closed.
func (p *PathRoi) AdjustRoi(a *Anchor, dx, dy float64) {
	i := p.mustOwnIndex(a)
	p.verts[i].X += dx
	p.verts[i].Y += dy
	if p.closed && i == 0 {
		last := len(p.verts) - 1
		p.verts[last].X += dx
		p.verts[last].Y += dy
	}
	p.AdjustAnchors()
}

func (p *PathRoi) AdjustAnchors() {
	for i, a := range p.anchors {
		a.centerOn(p.verts[i])
	}
}

func (p *PathRoi) Translate(dx, dy float64) {
	for i := range p.verts {
		p.verts[i].X += dx
		p.verts[i].Y += dy
	}
	p.AdjustAnchors()
}

// Vertices returns the path's vertices including, for a closed path, the
// synthetic closing vertex.
func (p *PathRoi) Vertices() []geometry.Point2D { return p.verts }

// Closed reports whether the path is a polygon.
func (p *PathRoi) Closed() bool { return p.closed }

// Anchored reports whether vertices are individually draggable.
func (p *PathRoi) Anchored() bool { return p.anchored }

// BoundaryPoint walks the polyline by arc length: t=0 is the first vertex
// and t=1 the last (for a closed path, back at the first). A zero-length
// path returns its single position.
func (p *PathRoi) BoundaryPoint(t float64) geometry.Point2D {
	if t <= 0 {
		return p.verts[0]
	}
	if t >= 1 {
		return p.verts[len(p.verts)-1]
	}

	var total float64
	for i := 1; i < len(p.verts); i++ {
		total += p.verts[i-1].Distance(p.verts[i])
	}
	if total == 0 {
		return p.verts[0]
	}

	target := t * total
	for i := 1; i < len(p.verts); i++ {
		seg := p.verts[i-1].Distance(p.verts[i])
		if target <= seg && seg > 0 {
			return p.verts[i-1].Lerp(p.verts[i], target/seg)
		}
		target -= seg
	}
	return p.verts[len(p.verts)-1]
}

func (p *PathRoi) Bounds() geometry.Rect {
	return geometry.BoundingBox(p.verts)
}
