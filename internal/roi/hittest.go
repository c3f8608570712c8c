package roi

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"roi-editor/pkg/geometry"
)

// BoundaryIncrement is the parameter step used when sampling a boundary
// path for hit-testing: every 0.5% of the path parametrization.
const BoundaryIncrement = 0.005

// DefaultHitTolerance is the default hit-test tolerance in screen pixels.
// Callers working in canvas coordinates divide by the current scale.
const DefaultHitTolerance = 4.0

// DistanceToBoundary returns the minimum Euclidean distance from p to the
// ROI's boundary path, sampled at the given parameter increment. A shape
// with zero measure still samples its single boundary point.
func DistanceToBoundary(r Roi, p geometry.Point2D, increment float64) float64 {
	if increment <= 0 || increment > 1 {
		increment = BoundaryIncrement
	}
	n := int(math.Ceil(1/increment)) + 1
	ts := floats.Span(make([]float64, n), 0, 1)

	min := math.Inf(1)
	for _, t := range ts {
		if d := p.Distance(r.BoundaryPoint(t)); d < min {
			min = d
		}
	}
	return min
}

// HitTest reports whether p lies within tol of the ROI's boundary path.
// The bounding box is used only to cull points too far away to possibly
// hit, never to accept one.
func HitTest(r Roi, p geometry.Point2D, tol float64) bool {
	if tol < 0 {
		return false
	}
	if !r.Bounds().Inset(-tol).Contains(p) {
		return false
	}
	return DistanceToBoundary(r, p, BoundaryIncrement) <= tol
}
