// Package roi implements editable regions of interest: geometric shapes
// overlaid on a canvas that can be selected, dragged whole, and reshaped by
// dragging anchors. All geometry is in canvas/world coordinates with Y down.
package roi

import (
	"fmt"
	"image/color"

	"roi-editor/pkg/geometry"
)

// Default style values at scale 1.0.
const (
	DefaultStrokeWidth = 1.0
	DefaultAnchorSize  = 4.0
)

// Style holds the cosmetic properties of an ROI in base units, i.e. at
// canvas scale 1.0. Rendered magnitudes are base / scale so strokes and
// handles keep a constant on-screen size under zoom.
type Style struct {
	Color           color.RGBA
	BaseStrokeWidth float64
	BaseAnchorSize  float64
}

// Roi is the editable-shape contract shared by every ROI variant.
//
// AdjustRoi and Translate are distinct entry points by design: anchor drags
// reshape through AdjustRoi, body drags move the whole shape through
// Translate. AdjustAnchors must run after any geometry mutation and must be
// idempotent.
type Roi interface {
	// Kind returns a short human-readable shape name.
	Kind() string

	// AnchorTypes returns the fixed anchor kind sequence for this variant.
	AnchorTypes() []AnchorKind

	// Anchors returns the ROI's anchor set, materialized once at
	// construction. Its length always equals len(AnchorTypes()).
	Anchors() []*Anchor

	// AdjustRoi mutates the geometry in response to a drag of one of this
	// ROI's own anchors by (dx, dy). Passing an anchor that does not belong
	// to this ROI is a programming error and panics.
	AdjustRoi(a *Anchor, dx, dy float64)

	// AdjustAnchors recomputes every anchor position from the current
	// geometry.
	AdjustAnchors()

	// Translate moves the whole shape by (dx, dy).
	Translate(dx, dy float64)

	// BoundaryPoint returns the point at parameter t in [0, 1] along the
	// shape's boundary path. Degenerate shapes return their single point.
	BoundaryPoint(t float64) geometry.Point2D

	// Bounds returns the axis-aligned bounding box, for coarse culling
	// only. Hit-testing goes through the boundary path instead.
	Bounds() geometry.Rect

	// SetStyle sets color, stroke width, and anchor size in base units.
	SetStyle(c color.RGBA, strokeWidth, anchorSize float64)
	Style() Style

	// Rescale tells the ROI the current canvas scale so rendered stroke
	// width and anchor size stay visually constant.
	Rescale(scale float64)
	Scale() float64

	// StrokeWidth returns the rendered stroke width, base / scale.
	StrokeWidth() float64

	// AnchorSize returns the rendered anchor size, base / scale.
	AnchorSize() float64

	ShowAnchors(visible bool)
	AnchorsVisible() bool
}

// base carries the state and behavior every ROI variant shares: the anchor
// set, style, scale, and anchor visibility. Concrete variants embed base and
// call extend with themselves, mirroring the widget-extension idiom, so the
// shared methods can reach the variant's AdjustAnchors.
type base struct {
	self    Roi
	anchors []*Anchor
	style   Style
	scale   float64
	visible bool
}

// extend initializes the base for the given concrete ROI, materializing the
// fixed anchor set from its anchor types.
func (b *base) extend(self Roi) {
	b.self = self
	b.style = Style{
		Color:           color.RGBA{A: 255},
		BaseStrokeWidth: DefaultStrokeWidth,
		BaseAnchorSize:  DefaultAnchorSize,
	}
	b.scale = 1.0
	kinds := self.AnchorTypes()
	b.anchors = make([]*Anchor, len(kinds))
	for i, k := range kinds {
		b.anchors[i] = &Anchor{Kind: k, Size: b.style.BaseAnchorSize}
	}
}

func (b *base) Anchors() []*Anchor { return b.anchors }

func (b *base) Style() Style { return b.style }

func (b *base) Scale() float64 { return b.scale }

func (b *base) StrokeWidth() float64 { return b.style.BaseStrokeWidth / b.scale }

func (b *base) AnchorSize() float64 { return b.style.BaseAnchorSize / b.scale }

func (b *base) ShowAnchors(visible bool) { b.visible = visible }

func (b *base) AnchorsVisible() bool { return b.visible }

// SetStyle sets the base-unit style and reapplies the current scale so the
// change takes effect immediately.
func (b *base) SetStyle(c color.RGBA, strokeWidth, anchorSize float64) {
	b.style.Color = c
	b.style.BaseStrokeWidth = strokeWidth
	b.style.BaseAnchorSize = anchorSize
	b.Rescale(b.scale)
}

// Rescale records the canvas scale, resizes every anchor to base/scale, and
// recomputes anchor positions since the handle size changed.
func (b *base) Rescale(scale float64) {
	if scale <= 0 {
		panic(fmt.Sprintf("roi: invalid canvas scale %v", scale))
	}
	b.scale = scale
	size := b.style.BaseAnchorSize / scale
	for _, a := range b.anchors {
		a.Size = size
	}
	b.self.AdjustAnchors()
}

// mustOwnIndex returns the index of a within the ROI's anchor set, panicking
// if the anchor is foreign. Receiving another ROI's anchor is a programming
// error in the caller, not a recoverable condition.
func (b *base) mustOwnIndex(a *Anchor) int {
	for i, own := range b.anchors {
		if own == a {
			return i
		}
	}
	panic(fmt.Sprintf("roi: anchor %v does not belong to this %s ROI", a.Kind, b.self.Kind()))
}
