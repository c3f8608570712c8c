package roi

import (
	"math"
	"testing"

	"roi-editor/pkg/geometry"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func anchorByKind(t *testing.T, r Roi, kind AnchorKind) *Anchor {
	t.Helper()
	for _, a := range r.Anchors() {
		if a.Kind == kind {
			return a
		}
	}
	t.Fatalf("no %v anchor on %s ROI", kind, r.Kind())
	return nil
}

func TestRectangleAnchorSet(t *testing.T) {
	r := NewRectangle(0, 0, 100, 60)

	if len(r.Anchors()) != 8 {
		t.Fatalf("rectangle has %d anchors, want 8", len(r.Anchors()))
	}
	if len(r.Anchors()) != len(r.AnchorTypes()) {
		t.Errorf("anchor count %d != anchor type count %d",
			len(r.Anchors()), len(r.AnchorTypes()))
	}
	for i, a := range r.Anchors() {
		if a.Kind != r.AnchorTypes()[i] {
			t.Errorf("anchor %d kind = %v, want %v", i, a.Kind, r.AnchorTypes()[i])
		}
	}
}

func TestRectangleTopLeftDrag(t *testing.T) {
	r := NewRectangle(50, 10, 50, 40)

	tl := anchorByKind(t, r, AnchorTopLeft)
	r.AdjustRoi(tl, 5, 5)

	b := r.Bounds()
	if b.X != 55 || b.Y != 15 || b.Width != 45 || b.Height != 35 {
		t.Errorf("bounds after drag = %v, want {55 15 45 35}", b)
	}

	// The anchor follows the corner it controls.
	c := tl.Center()
	if !almostEqual(c.X, 55) || !almostEqual(c.Y, 15) {
		t.Errorf("top-left anchor center = %v, want (55, 15)", c)
	}
	// The opposite corner stays put.
	br := anchorByKind(t, r, AnchorBottomRight).Center()
	if !almostEqual(br.X, 100) || !almostEqual(br.Y, 50) {
		t.Errorf("bottom-right anchor center = %v, want (100, 50)", br)
	}
}

func TestRectangleNormalizesOnCrossing(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10)

	// Drag the left edge 30 units right, past the right edge at x=10.
	left := anchorByKind(t, r, AnchorLeft)
	r.AdjustRoi(left, 30, 0)

	b := r.Bounds()
	if b.Width < 0 || b.Height < 0 {
		t.Fatalf("bounds not normalized: %v", b)
	}
	if b.X != 10 || b.Width != 20 {
		t.Errorf("bounds after crossing = %v, want X=10 Width=20", b)
	}
}

func TestRectangleTranslate(t *testing.T) {
	r := NewRectangle(10, 20, 30, 40)
	r.Translate(5, -5)

	b := r.Bounds()
	if b.X != 15 || b.Y != 15 || b.Width != 30 || b.Height != 40 {
		t.Errorf("bounds after translate = %v, want {15 15 30 40}", b)
	}
	// Size unchanged, anchors moved with the shape.
	c := anchorByKind(t, r, AnchorTopLeft).Center()
	if !almostEqual(c.X, 15) || !almostEqual(c.Y, 15) {
		t.Errorf("top-left anchor center = %v, want (15, 15)", c)
	}
}

func TestAdjustAnchorsIdempotent(t *testing.T) {
	closed, err := NewPath([]float64{5, 25, 15}, []float64{5, 5, 20}, true, true)
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	zoomed := NewRectangle(5, 5, 40, 30)
	zoomed.Rescale(2)

	rois := []Roi{
		NewRectangle(5, 5, 40, 30),
		NewEllipse(5, 5, 40, 30),
		NewLine(0, 0, 50, 20),
		closed,
		zoomed,
	}
	for _, r := range rois {
		r.AdjustAnchors()
		before := make([]geometry.Point2D, len(r.Anchors()))
		for i, a := range r.Anchors() {
			before[i] = a.Pos
		}
		r.AdjustAnchors()
		for i, a := range r.Anchors() {
			if a.Pos != before[i] {
				t.Errorf("%s anchor %d moved on repeated AdjustAnchors: %v -> %v",
					r.Kind(), i, before[i], a.Pos)
			}
		}
	}
}

func TestRectangleBoundaryPoint(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10)

	cases := []struct {
		t    float64
		want geometry.Point2D
	}{
		{0, geometry.Point2D{X: 0, Y: 0}},
		{0.25, geometry.Point2D{X: 10, Y: 0}},
		{0.5, geometry.Point2D{X: 10, Y: 10}},
		{0.75, geometry.Point2D{X: 0, Y: 10}},
		{1, geometry.Point2D{X: 0, Y: 0}},
	}
	for _, c := range cases {
		got := r.BoundaryPoint(c.t)
		if !almostEqual(got.X, c.want.X) || !almostEqual(got.Y, c.want.Y) {
			t.Errorf("BoundaryPoint(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestDegenerateRectangleBoundary(t *testing.T) {
	r := NewRectangle(7, 9, 0, 0)
	for _, tt := range []float64{0, 0.3, 1} {
		got := r.BoundaryPoint(tt)
		if got.X != 7 || got.Y != 9 {
			t.Errorf("BoundaryPoint(%v) = %v, want (7, 9)", tt, got)
		}
	}
}

func TestEllipseAnchorSet(t *testing.T) {
	e := NewEllipse(10, 20, 60, 40)

	if len(e.Anchors()) != 4 {
		t.Fatalf("ellipse has %d anchors, want 4", len(e.Anchors()))
	}
	want := []AnchorKind{AnchorLeft, AnchorRight, AnchorTop, AnchorBottom}
	for i, a := range e.Anchors() {
		if a.Kind != want[i] {
			t.Errorf("anchor %d kind = %v, want %v", i, a.Kind, want[i])
		}
	}

	// Edge-midpoint anchors sit on the ellipse boundary.
	left := anchorByKind(t, e, AnchorLeft).Center()
	if !almostEqual(left.X, 10) || !almostEqual(left.Y, 40) {
		t.Errorf("left anchor center = %v, want (10, 40)", left)
	}
	top := anchorByKind(t, e, AnchorTop).Center()
	if !almostEqual(top.X, 40) || !almostEqual(top.Y, 20) {
		t.Errorf("top anchor center = %v, want (40, 20)", top)
	}
}

func TestEllipseRightDrag(t *testing.T) {
	e := NewEllipse(0, 0, 40, 20)

	right := anchorByKind(t, e, AnchorRight)
	e.AdjustRoi(right, 10, 0)

	b := e.Bounds()
	if b.X != 0 || b.Width != 50 || b.Height != 20 {
		t.Errorf("bounds after drag = %v, want {0 0 50 20}", b)
	}
	c := right.Center()
	if !almostEqual(c.X, 50) || !almostEqual(c.Y, 10) {
		t.Errorf("right anchor center = %v, want (50, 10)", c)
	}
}

func TestEllipseBoundaryPoint(t *testing.T) {
	e := NewEllipse(0, 0, 20, 10) // center (10, 5), rx=10, ry=5

	cases := []struct {
		t    float64
		want geometry.Point2D
	}{
		{0, geometry.Point2D{X: 20, Y: 5}},
		{0.25, geometry.Point2D{X: 10, Y: 10}}, // Y-down: quarter turn goes to the bottom
		{0.5, geometry.Point2D{X: 0, Y: 5}},
		{0.75, geometry.Point2D{X: 10, Y: 0}},
	}
	for _, c := range cases {
		got := e.BoundaryPoint(c.t)
		if math.Abs(got.X-c.want.X) > 1e-9 || math.Abs(got.Y-c.want.Y) > 1e-9 {
			t.Errorf("BoundaryPoint(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestRescaleKeepsGeometry(t *testing.T) {
	for _, scale := range []float64{0.5, 1, 2, 10} {
		r := NewRectangle(10, 10, 80, 60)
		r.Rescale(scale)

		// Geometry is untouched by scale changes.
		if b := r.Bounds(); b != geometry.NewRect(10, 10, 80, 60) {
			t.Errorf("scale %v: bounds = %v", scale, b)
		}
		// Rendered magnitudes shrink with zoom so the on-screen size is
		// constant: base / scale * scale == base.
		if got := r.StrokeWidth() * scale; !almostEqual(got, DefaultStrokeWidth) {
			t.Errorf("scale %v: StrokeWidth*scale = %v, want %v", scale, got, DefaultStrokeWidth)
		}
		if got := r.AnchorSize() * scale; !almostEqual(got, DefaultAnchorSize) {
			t.Errorf("scale %v: AnchorSize*scale = %v, want %v", scale, got, DefaultAnchorSize)
		}
		// Anchors stay centered on their geometry points across scales.
		c := anchorByKind(t, r, AnchorTopLeft).Center()
		if !almostEqual(c.X, 10) || !almostEqual(c.Y, 10) {
			t.Errorf("scale %v: top-left anchor center = %v, want (10, 10)", scale, c)
		}
	}
}

func TestRescaleInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Rescale(0) did not panic")
		}
	}()
	NewRectangle(0, 0, 10, 10).Rescale(0)
}

func TestSetStyleReappliesScale(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10)
	r.Rescale(2)
	r.SetStyle(r.Style().Color, 3, 8)

	if got := r.StrokeWidth(); !almostEqual(got, 1.5) {
		t.Errorf("StrokeWidth = %v, want 1.5", got)
	}
	if got := r.AnchorSize(); !almostEqual(got, 4) {
		t.Errorf("AnchorSize = %v, want 4", got)
	}
	for _, a := range r.Anchors() {
		if !almostEqual(a.Size, 4) {
			t.Errorf("anchor size = %v, want 4", a.Size)
		}
	}
}
