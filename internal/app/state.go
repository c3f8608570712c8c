// Package app provides application state, the scene/selection coordinator,
// and the event bus.
package app

import (
	"image"
	"sync"

	"roi-editor/internal/roi"
	"roi-editor/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventRoiAdded
	EventRoiRemoved
	EventSelectionChanged
	EventZoomChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// RoiItem pairs an ROI with the stable identity the scene assigned to it.
type RoiItem struct {
	ID  int
	Roi roi.Roi
}

// State owns the ROI collection and coordinates selection and zoom across
// it. ROIs are kept in insertion order; later ROIs draw on top and win
// hit-testing ties. All mutation is expected on the UI goroutine; the lock
// covers reads from background work such as export.
type State struct {
	mu sync.RWMutex

	// Background image (nil until one is loaded)
	img image.Image

	items    []RoiItem
	nextID   int
	selected int // 0 = no selection
	scale    float64

	modified bool

	listeners map[EventType][]EventListener
}

// NewState creates a new application state at scale 1.0.
func NewState() *State {
	return &State{
		nextID:    1,
		scale:     1.0,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetImage sets the background image and emits EventImageLoaded.
func (s *State) SetImage(img image.Image) {
	s.mu.Lock()
	s.img = img
	s.mu.Unlock()
	s.Emit(EventImageLoaded, img)
}

// Image returns the background image, or nil.
func (s *State) Image() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// AddRoi adds an ROI to the scene and returns its stable ID. The ROI enters
// unselected with hidden anchors and is brought to the current scale.
func (s *State) AddRoi(r roi.Roi) int {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.items = append(s.items, RoiItem{ID: id, Roi: r})
	scale := s.scale
	s.mu.Unlock()

	r.ShowAnchors(false)
	r.Rescale(scale)

	s.Emit(EventRoiAdded, id)
	s.SetModified(true)
	return id
}

// RemoveRoi removes the ROI with the given ID. Removing the selected ROI
// clears the selection.
func (s *State) RemoveRoi(id int) bool {
	s.mu.Lock()
	found := false
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	clearSel := found && s.selected == id
	if clearSel {
		s.selected = 0
	}
	s.mu.Unlock()

	if !found {
		return false
	}
	s.Emit(EventRoiRemoved, id)
	if clearSel {
		s.Emit(EventSelectionChanged, 0)
	}
	s.SetModified(true)
	return true
}

// Rois returns a snapshot of the ROI items in insertion (draw) order.
func (s *State) Rois() []RoiItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RoiItem, len(s.items))
	copy(out, s.items)
	return out
}

// RoiByID returns the ROI with the given ID, or nil.
func (s *State) RoiByID(id int) roi.Roi {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item.Roi
		}
	}
	return nil
}

// Select makes the ROI with the given ID the selection: anchors are hidden
// on every ROI and shown only on the selected one. Selecting an unknown ID
// clears the selection.
func (s *State) Select(id int) {
	s.mu.Lock()
	found := 0
	for _, item := range s.items {
		show := item.ID == id
		item.Roi.ShowAnchors(show)
		if show {
			found = id
		}
	}
	changed := s.selected != found
	s.selected = found
	s.mu.Unlock()

	if changed {
		s.Emit(EventSelectionChanged, found)
	}
}

// ClearSelection hides all anchors and clears the selection.
func (s *State) ClearSelection() {
	s.Select(0)
}

// SelectedID returns the selected ROI's ID, or 0 when nothing is selected.
func (s *State) SelectedID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectedRoi returns the selected ROI, or nil.
func (s *State) SelectedRoi() roi.Roi {
	s.mu.RLock()
	id := s.selected
	s.mu.RUnlock()
	if id == 0 {
		return nil
	}
	return s.RoiByID(id)
}

// SetScale propagates a zoom-scale change to every ROI so strokes and
// anchors keep a constant on-screen size, then emits EventZoomChanged.
// Non-positive scales are ignored.
func (s *State) SetScale(scale float64) {
	if scale <= 0 {
		return
	}
	s.mu.Lock()
	s.scale = scale
	items := make([]RoiItem, len(s.items))
	copy(items, s.items)
	s.mu.Unlock()

	for _, item := range items {
		item.Roi.Rescale(scale)
	}
	s.Emit(EventZoomChanged, scale)
}

// Scale returns the current canvas scale.
func (s *State) Scale() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

// HitTolerance returns the hit-test tolerance in canvas units: the default
// screen-pixel tolerance divided by the current scale.
func (s *State) HitTolerance() float64 {
	return roi.DefaultHitTolerance / s.Scale()
}

// HitTest returns the ID of the topmost ROI whose boundary is within the
// hit tolerance of p (in canvas coordinates), or 0 for no hit.
func (s *State) HitTest(p geometry.Point2D) int {
	tol := s.HitTolerance()
	items := s.Rois()
	for i := len(items) - 1; i >= 0; i-- {
		if roi.HitTest(items[i].Roi, p, tol) {
			return items[i].ID
		}
	}
	return 0
}

// HitTestAnchor returns the selected ROI and the anchor under p, if any.
// Anchors are only interactive while visible, i.e. while their ROI is
// selected.
func (s *State) HitTestAnchor(p geometry.Point2D) (roi.Roi, *roi.Anchor) {
	r := s.SelectedRoi()
	if r == nil || !r.AnchorsVisible() {
		return nil, nil
	}
	for _, a := range r.Anchors() {
		if a.Contains(p) {
			return r, a
		}
	}
	return nil, nil
}

// SetModified marks the scene as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// Modified reports whether the scene changed since the last reset.
func (s *State) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}
