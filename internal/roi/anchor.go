package roi

import (
	"roi-editor/pkg/geometry"
)

// AnchorKind identifies the placement and adjustment semantics of an anchor
// relative to its owning ROI. Box shapes use the edge/corner kinds; line and
// path shapes use Start/Middle/End.
type AnchorKind int

const (
	AnchorLeft AnchorKind = iota
	AnchorRight
	AnchorTop
	AnchorTopLeft
	AnchorTopRight
	AnchorBottom
	AnchorBottomLeft
	AnchorBottomRight
	AnchorStart
	AnchorMiddle
	AnchorEnd
)

var anchorKindNames = map[AnchorKind]string{
	AnchorLeft:        "left",
	AnchorRight:       "right",
	AnchorTop:         "top",
	AnchorTopLeft:     "top-left",
	AnchorTopRight:    "top-right",
	AnchorBottom:      "bottom",
	AnchorBottomLeft:  "bottom-left",
	AnchorBottomRight: "bottom-right",
	AnchorStart:       "start",
	AnchorMiddle:      "middle",
	AnchorEnd:         "end",
}

func (k AnchorKind) String() string {
	if name, ok := anchorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Anchor is a small draggable handle attached to an ROI. It is stateless:
// its position is always derived from the owner's geometry via
// AdjustAnchors, never stored as ground truth by the anchor itself. Drag
// deltas are reported to the owner through AdjustRoi.
type Anchor struct {
	Kind AnchorKind

	// Pos is the top-left corner of the handle square in canvas
	// coordinates. Set exclusively by the owning ROI.
	Pos geometry.Point2D

	// Size is the handle edge length in canvas units at the current scale.
	Size float64
}

// Rect returns the handle square in canvas coordinates.
func (a *Anchor) Rect() geometry.Rect {
	return geometry.NewRect(a.Pos.X, a.Pos.Y, a.Size, a.Size)
}

// Center returns the center of the handle square.
func (a *Anchor) Center() geometry.Point2D {
	return geometry.Point2D{X: a.Pos.X + a.Size/2, Y: a.Pos.Y + a.Size/2}
}

// Contains reports whether p lies within the handle square.
func (a *Anchor) Contains(p geometry.Point2D) bool {
	return a.Rect().Contains(p)
}

// centerOn positions the handle square so it is centered on p.
func (a *Anchor) centerOn(p geometry.Point2D) {
	a.Pos = geometry.Point2D{X: p.X - a.Size/2, Y: p.Y - a.Size/2}
}
