// Package canvas provides the ROI canvas: an image with pan, zoom, and
// interactive ROI selection and reshaping.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"roi-editor/internal/app"
	"roi-editor/internal/render"
	"roi-editor/internal/roi"
	"roi-editor/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// dragTarget records what a drag gesture is attached to for its duration:
// an anchor of the selected ROI, or an ROI body. Cleared on DragEnd so a
// finished drag never swallows later events.
type dragTarget struct {
	r      roi.Roi
	anchor *roi.Anchor // nil for a body drag
}

// RoiCanvas displays the background image and the ROI overlay, and routes
// pointer gestures into the scene coordinator.
type RoiCanvas struct {
	widget.BaseWidget

	state *app.State

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Active drag gesture, nil when idle
	drag *dragTarget

	// Container
	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Background image visibility; ROIs draw regardless
	imageHidden bool

	// Callbacks
	onZoomChange func(zoom float64)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *RoiCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *RoiCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *RoiCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(rc *RoiCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: rc,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

// toCanvasPoint converts a viewport-relative event position to canvas/world
// coordinates, accounting for scroll offset and zoom.
func (dc *draggableContent) toCanvasPoint(pos fyne.Position) geometry.Point2D {
	scrollOffset := dc.canvas.scroll.Offset()
	return geometry.Point2D{
		X: float64(pos.X+scrollOffset.X) / dc.canvas.zoom,
		Y: float64(pos.Y+scrollOffset.Y) / dc.canvas.zoom,
	}
}

// Dragged routes drag gestures. The first event of a gesture captures a
// target: an anchor of the selected ROI wins over ROI bodies, topmost body
// wins otherwise. Subsequent events stream deltas to the captured target so
// a fast drag cannot slip off a small anchor mid-gesture.
func (dc *draggableContent) Dragged(ev *fyne.DragEvent) {
	state := dc.canvas.state

	if dc.canvas.drag == nil {
		// Hit-test at the gesture origin, before this event's delta.
		origin := fyne.Position{X: ev.Position.X - ev.Dragged.DX, Y: ev.Position.Y - ev.Dragged.DY}
		p := dc.toCanvasPoint(origin)

		if r, a := state.HitTestAnchor(p); a != nil {
			dc.canvas.drag = &dragTarget{r: r, anchor: a}
		} else if id := state.HitTest(p); id != 0 {
			state.Select(id)
			dc.canvas.drag = &dragTarget{r: state.RoiByID(id)}
		} else {
			return
		}
	}

	dx := float64(ev.Dragged.DX) / dc.canvas.zoom
	dy := float64(ev.Dragged.DY) / dc.canvas.zoom

	t := dc.canvas.drag
	if t.anchor != nil {
		t.r.AdjustRoi(t.anchor, dx, dy)
	} else {
		t.r.Translate(dx, dy)
	}
	state.SetModified(true)
	dc.canvas.Refresh()
}

// DragEnd releases the captured drag target.
func (dc *draggableContent) DragEnd() {
	dc.canvas.drag = nil
}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

// Tapped selects the ROI whose boundary is under the click, or clears the
// selection. A click inside a shape's bounding box but away from its stroke
// does not select it.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	// Workaround for Fyne bug: reject clicks outside widget bounds
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	state := dc.canvas.state
	p := dc.toCanvasPoint(ev.Position)

	if _, a := state.HitTestAnchor(p); a != nil {
		// Click on an anchor of the selected ROI keeps the selection.
		return
	}

	if id := state.HitTest(p); id != 0 {
		state.Select(id)
	} else {
		state.ClearSelection()
	}
	dc.canvas.Refresh()
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}

// NewRoiCanvas creates a new ROI canvas over the given scene state.
func NewRoiCanvas(state *app.State) *RoiCanvas {
	rc := &RoiCanvas{
		state:   state,
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	rc.raster = fynecanvas.NewRaster(rc.draw)
	rc.raster.ScaleMode = fynecanvas.ImageScalePixels
	rc.raster.SetMinSize(rc.imgSize)

	rc.content = newDraggableContent(rc, rc.raster)
	rc.scroll = newZoomScroll(rc.content, rc)

	state.On(app.EventImageLoaded, func(interface{}) {
		rc.updateContentSize()
	})
	state.On(app.EventSelectionChanged, func(interface{}) {
		rc.Refresh()
	})
	state.On(app.EventRoiAdded, func(interface{}) {
		rc.Refresh()
	})
	state.On(app.EventRoiRemoved, func(interface{}) {
		rc.Refresh()
	})

	rc.ExtendBaseWidget(rc)
	return rc
}

// Container returns the canvas container for embedding in layouts.
func (rc *RoiCanvas) Container() fyne.CanvasObject {
	return rc.scroll
}

// SetZoom sets the zoom level, clamped to [minZoom, maxZoom], and fans the
// scale change out to every ROI through the scene state.
func (rc *RoiCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	rc.zoom = zoom
	rc.state.SetScale(zoom)
	rc.updateContentSize()

	if rc.onZoomChange != nil {
		rc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (rc *RoiCanvas) Zoom() float64 {
	return rc.zoom
}

// ZoomIn increases the zoom level.
func (rc *RoiCanvas) ZoomIn() {
	rc.SetZoom(rc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (rc *RoiCanvas) ZoomOut() {
	rc.SetZoom(rc.zoom / zoomStep)
}

// ViewCenter returns the canvas-coordinate point at the center of the
// visible viewport. New ROIs are inserted here.
func (rc *RoiCanvas) ViewCenter() geometry.Point2D {
	offset := rc.scroll.Offset()
	size := rc.scroll.Size()
	return geometry.Point2D{
		X: float64(offset.X+size.Width/2) / rc.zoom,
		Y: float64(offset.Y+size.Height/2) / rc.zoom,
	}
}

// FitToWindow adjusts zoom so the image fits the visible area.
func (rc *RoiCanvas) FitToWindow() {
	bounds := rc.contentBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	viewSize := rc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	rc.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (rc *RoiCanvas) SetFitToWindow(fit bool) {
	rc.fitToWindow = fit
	if fit {
		rc.FitToWindow()
	}
}

// CheckResize checks if the scroll container was resized and auto-fits if
// enabled.
func (rc *RoiCanvas) CheckResize(size fyne.Size) {
	if !rc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != rc.lastScrollSize {
		rc.lastScrollSize = size
		rc.FitToWindow()
	}
}

// SetImageVisible shows or hides the background image. ROIs stay visible so
// annotations can be reviewed against a neutral backdrop.
func (rc *RoiCanvas) SetImageVisible(visible bool) {
	rc.imageHidden = !visible
	rc.Refresh()
}

// ImageVisible reports whether the background image is drawn.
func (rc *RoiCanvas) ImageVisible() bool {
	return !rc.imageHidden
}

// OnZoomChange sets a callback for zoom changes.
func (rc *RoiCanvas) OnZoomChange(callback func(zoom float64)) {
	rc.onZoomChange = callback
}

// Refresh refreshes the canvas display.
func (rc *RoiCanvas) Refresh() {
	rc.raster.Refresh()
}

// contentBounds returns the image bounds, or a default working area when no
// image is loaded so ROIs can be drawn on an empty canvas.
func (rc *RoiCanvas) contentBounds() image.Rectangle {
	if img := rc.state.Image(); img != nil {
		b := img.Bounds()
		return image.Rect(0, 0, b.Dx(), b.Dy())
	}
	return image.Rect(0, 0, 800, 600)
}

// updateContentSize updates the content size based on image and zoom.
func (rc *RoiCanvas) updateContentSize() {
	bounds := rc.contentBounds()
	width := float32(float64(bounds.Dx()) * rc.zoom)
	height := float32(float64(bounds.Dy()) * rc.zoom)
	rc.imgSize = fyne.NewSize(width, height)

	rc.raster.SetMinSize(rc.imgSize)
	rc.raster.Resize(rc.imgSize)
	if rc.content != nil {
		rc.content.Resize(rc.imgSize)
		rc.content.Refresh()
	}
	rc.raster.Refresh()
	if rc.scroll != nil {
		rc.scroll.Refresh()
	}
}

// draw is the raster drawing function: background image scaled by zoom,
// then the ROI overlay. An ROI's geometry and its anchors are drawn from
// the same snapshot, so the renderer never sees stale anchor positions.
func (rc *RoiCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Dark neutral background
	bg := color.RGBA{R: 32, G: 32, B: 32, A: 255}
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = bg.R
		output.Pix[i+1] = bg.G
		output.Pix[i+2] = bg.B
		output.Pix[i+3] = bg.A
	}

	if img := rc.state.Image(); img != nil && !rc.imageHidden {
		b := img.Bounds()
		dst := image.Rect(0, 0,
			int(float64(b.Dx())*rc.zoom),
			int(float64(b.Dy())*rc.zoom))
		xdraw.NearestNeighbor.Scale(output, dst, img, b, xdraw.Src, nil)
	}

	items := rc.state.Rois()
	rois := make([]roi.Roi, len(items))
	for i, item := range items {
		rois[i] = item.Roi
	}

	dc := gg.NewContextForRGBA(output)
	render.Rois(dc, rois, rc.zoom)

	return output
}

// CreateRenderer implements fyne.Widget.
func (rc *RoiCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &roiCanvasRenderer{canvas: rc}
}

type roiCanvasRenderer struct {
	canvas *RoiCanvas
}

func (r *roiCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	r.canvas.CheckResize(size)
}

func (r *roiCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *roiCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *roiCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *roiCanvasRenderer) Destroy() {}
