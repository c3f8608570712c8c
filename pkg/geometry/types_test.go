package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPointDistance(t *testing.T) {
	p1 := Point2D{X: 0, Y: 0}
	p2 := Point2D{X: 3, Y: 4}
	if d := p1.Distance(p2); !almostEqual(d, 5) {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestPointLerp(t *testing.T) {
	p1 := Point2D{X: 0, Y: 10}
	p2 := Point2D{X: 10, Y: 30}

	mid := p1.Lerp(p2, 0.5)
	if !almostEqual(mid.X, 5) || !almostEqual(mid.Y, 20) {
		t.Errorf("Lerp(0.5) = %v, want (5, 20)", mid)
	}
	if got := p1.Lerp(p2, 0); got != p1 {
		t.Errorf("Lerp(0) = %v, want %v", got, p1)
	}
	if got := p1.Lerp(p2, 1); got != p2 {
		t.Errorf("Lerp(1) = %v, want %v", got, p2)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	if r.Left() != 10 || r.Top() != 20 || r.Right() != 110 || r.Bottom() != 70 {
		t.Errorf("edges = %v %v %v %v", r.Left(), r.Top(), r.Right(), r.Bottom())
	}
	c := r.Center()
	if !almostEqual(c.X, 60) || !almostEqual(c.Y, 45) {
		t.Errorf("Center = %v, want (60, 45)", c)
	}
}

func TestRectFromEdgesNormalized(t *testing.T) {
	// Edges given in swapped order produce a negative-size rect until
	// normalized.
	r := RectFromEdges(100, 80, 20, 30)
	if r.Width >= 0 || r.Height >= 0 {
		t.Fatalf("expected negative size before normalization, got %v", r)
	}
	n := r.Normalized()
	if n.X != 20 || n.Y != 30 || n.Width != 80 || n.Height != 50 {
		t.Errorf("Normalized = %v, want {20 30 80 50}", n)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	cases := []struct {
		p    Point2D
		want bool
	}{
		{Point2D{X: 5, Y: 5}, true},
		{Point2D{X: 0, Y: 0}, true},
		{Point2D{X: 10, Y: 10}, true},
		{Point2D{X: 11, Y: 5}, false},
		{Point2D{X: 5, Y: -1}, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.p); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(20, 5, 10, 10)
	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 30 || u.Height != 15 {
		t.Errorf("Union = %v, want {0 0 30 15}", u)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	shrunk := r.Inset(5)
	if shrunk.X != 15 || shrunk.Width != 10 {
		t.Errorf("Inset(5) = %v", shrunk)
	}

	grown := r.Inset(-4)
	if grown.X != 6 || grown.Y != 6 || grown.Width != 28 || grown.Height != 28 {
		t.Errorf("Inset(-4) = %v, want {6 6 28 28}", grown)
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point2D{
		{X: 5, Y: 10},
		{X: -3, Y: 4},
		{X: 8, Y: -2},
	}
	b := BoundingBox(points)
	if b.X != -3 || b.Y != -2 || b.Width != 11 || b.Height != 12 {
		t.Errorf("BoundingBox = %v, want {-3 -2 11 12}", b)
	}

	if b := BoundingBox(nil); b != (Rect{}) {
		t.Errorf("BoundingBox(nil) = %v, want zero rect", b)
	}

	single := BoundingBox([]Point2D{{X: 7, Y: 9}})
	if single.X != 7 || single.Y != 9 || single.Width != 0 || single.Height != 0 {
		t.Errorf("BoundingBox(single) = %v", single)
	}
}
