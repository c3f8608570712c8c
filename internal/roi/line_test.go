package roi

import (
	"testing"

	"roi-editor/pkg/geometry"
)

func TestLineAnchors(t *testing.T) {
	l := NewLine(0, 0, 10, 20)

	want := []AnchorKind{AnchorStart, AnchorMiddle, AnchorEnd}
	if len(l.Anchors()) != 3 {
		t.Fatalf("line has %d anchors, want 3", len(l.Anchors()))
	}
	for i, a := range l.Anchors() {
		if a.Kind != want[i] {
			t.Errorf("anchor %d kind = %v, want %v", i, a.Kind, want[i])
		}
	}

	if c := l.Anchors()[0].Center(); c != (geometry.Point2D{X: 0, Y: 0}) {
		t.Errorf("start anchor center = %v", c)
	}
	if c := l.Anchors()[1].Center(); c != (geometry.Point2D{X: 5, Y: 10}) {
		t.Errorf("middle anchor center = %v, want (5, 10)", c)
	}
	if c := l.Anchors()[2].Center(); c != (geometry.Point2D{X: 10, Y: 20}) {
		t.Errorf("end anchor center = %v", c)
	}
}

func TestLineEndpointDrag(t *testing.T) {
	l := NewLine(0, 0, 10, 0)

	l.AdjustRoi(anchorByKind(t, l, AnchorEnd), 5, 5)
	if l.End() != (geometry.Point2D{X: 15, Y: 5}) {
		t.Errorf("End = %v, want (15, 5)", l.End())
	}
	if l.Start() != (geometry.Point2D{X: 0, Y: 0}) {
		t.Errorf("Start moved: %v", l.Start())
	}
	// Middle anchor tracks the new midpoint.
	if c := anchorByKind(t, l, AnchorMiddle).Center(); c != (geometry.Point2D{X: 7.5, Y: 2.5}) {
		t.Errorf("middle anchor center = %v, want (7.5, 2.5)", c)
	}
}

func TestLineMiddleDragTranslates(t *testing.T) {
	l := NewLine(0, 0, 10, 0)

	l.AdjustRoi(anchorByKind(t, l, AnchorMiddle), 3, 4)
	if l.Start() != (geometry.Point2D{X: 3, Y: 4}) {
		t.Errorf("Start = %v, want (3, 4)", l.Start())
	}
	if l.End() != (geometry.Point2D{X: 13, Y: 4}) {
		t.Errorf("End = %v, want (13, 4)", l.End())
	}
}

func TestLineBoundaryPoint(t *testing.T) {
	l := NewLine(0, 0, 10, 20)
	got := l.BoundaryPoint(0.5)
	if got != (geometry.Point2D{X: 5, Y: 10}) {
		t.Errorf("BoundaryPoint(0.5) = %v, want (5, 10)", got)
	}
}

func TestLineBounds(t *testing.T) {
	l := NewLine(10, 5, 2, 15)
	b := l.Bounds()
	if b.X != 2 || b.Y != 5 || b.Width != 8 || b.Height != 10 {
		t.Errorf("Bounds = %v, want {2 5 8 10}", b)
	}
}
