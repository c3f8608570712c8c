// Package panels provides the side panel widgets of the main window.
package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"roi-editor/internal/app"
	"roi-editor/internal/roi"
	"roi-editor/pkg/colorutil"
	"roi-editor/ui/canvas"
)

// RoiPanel lists the scene's ROIs and edits the selected one's style.
type RoiPanel struct {
	state  *app.State
	canvas *canvas.RoiCanvas
	win    fyne.Window

	list        *widget.List
	detailLabel *widget.Label
	widthSlider *widget.Slider
	sizeSlider  *widget.Slider
	colorBtn    *widget.Button
	deleteBtn   *widget.Button

	container *fyne.Container

	// Guards against selection feedback loops between list and scene
	syncing bool
}

// NewRoiPanel creates the ROI side panel.
func NewRoiPanel(state *app.State, canv *canvas.RoiCanvas) *RoiPanel {
	rp := &RoiPanel{
		state:  state,
		canvas: canv,
	}

	rp.list = widget.NewList(
		func() int {
			return len(state.Rois())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("ROI")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			items := state.Rois()
			if int(id) < len(items) {
				item := items[id]
				c := item.Roi.Bounds().Center()
				label.SetText(fmt.Sprintf("#%d %s (%.0f, %.0f)", item.ID, item.Roi.Kind(), c.X, c.Y))
			}
		},
	)

	rp.list.OnSelected = func(id widget.ListItemID) {
		if rp.syncing {
			return
		}
		items := state.Rois()
		if int(id) < len(items) {
			state.Select(items[id].ID)
		}
	}
	rp.detailLabel = widget.NewLabel("No selection")
	rp.detailLabel.Wrapping = fyne.TextWrapWord

	rp.widthSlider = widget.NewSlider(0.5, 10)
	rp.widthSlider.Step = 0.5
	rp.widthSlider.Value = roi.DefaultStrokeWidth
	rp.widthSlider.OnChanged = func(v float64) {
		rp.applyStyle(func(s *roi.Style) { s.BaseStrokeWidth = v })
	}

	rp.sizeSlider = widget.NewSlider(2, 16)
	rp.sizeSlider.Step = 1
	rp.sizeSlider.Value = roi.DefaultAnchorSize
	rp.sizeSlider.OnChanged = func(v float64) {
		rp.applyStyle(func(s *roi.Style) { s.BaseAnchorSize = v })
	}

	rp.colorBtn = widget.NewButton("Stroke Color...", func() {
		r := state.SelectedRoi()
		if r == nil || rp.win == nil {
			return
		}
		picker := dialog.NewColorPicker("Stroke Color", "Pick the ROI stroke color",
			func(c color.Color) {
				rp.applyStyle(func(s *roi.Style) { s.Color = colorutil.ToRGBA(c) })
			}, rp.win)
		picker.Advanced = true
		picker.Show()
	})

	rp.deleteBtn = widget.NewButton("Delete ROI", func() {
		if id := state.SelectedID(); id != 0 {
			state.RemoveRoi(id)
		}
	})

	styleBox := container.NewVBox(
		rp.detailLabel,
		widget.NewLabel("Stroke width"),
		rp.widthSlider,
		widget.NewLabel("Anchor size"),
		rp.sizeSlider,
		rp.colorBtn,
		rp.deleteBtn,
	)

	rp.container = container.NewBorder(
		widget.NewLabel("Regions of Interest"), // top
		styleBox,                               // bottom
		nil, nil,
		rp.list,
	)

	state.On(app.EventRoiAdded, func(interface{}) { rp.Refresh() })
	state.On(app.EventRoiRemoved, func(interface{}) { rp.Refresh() })
	state.On(app.EventSelectionChanged, func(data interface{}) {
		rp.syncSelection(data)
	})

	return rp
}

// SetWindow provides the parent window used by modal dialogs.
func (rp *RoiPanel) SetWindow(win fyne.Window) {
	rp.win = win
}

// Container returns the panel's root object for embedding.
func (rp *RoiPanel) Container() fyne.CanvasObject {
	return rp.container
}

// Refresh re-renders the list and the detail section.
func (rp *RoiPanel) Refresh() {
	rp.list.Refresh()
	rp.updateDetail()
}

// applyStyle mutates the selected ROI's style and refreshes the canvas.
func (rp *RoiPanel) applyStyle(mutate func(*roi.Style)) {
	r := rp.state.SelectedRoi()
	if r == nil {
		return
	}
	s := r.Style()
	mutate(&s)
	r.SetStyle(s.Color, s.BaseStrokeWidth, s.BaseAnchorSize)
	rp.state.SetModified(true)
	rp.canvas.Refresh()
}

// syncSelection mirrors a scene selection change into the list widget.
func (rp *RoiPanel) syncSelection(data interface{}) {
	id, _ := data.(int)

	rp.syncing = true
	if id == 0 {
		rp.list.UnselectAll()
	} else {
		for i, item := range rp.state.Rois() {
			if item.ID == id {
				rp.list.Select(widget.ListItemID(i))
				break
			}
		}
	}
	rp.syncing = false

	rp.updateDetail()
}

func (rp *RoiPanel) updateDetail() {
	r := rp.state.SelectedRoi()
	if r == nil {
		rp.detailLabel.SetText("No selection")
		return
	}
	s := r.Style()
	rp.detailLabel.SetText(fmt.Sprintf("%s, %d anchors, stroke %s",
		r.Kind(), len(r.Anchors()), colorutil.Hex(s.Color)))
	rp.widthSlider.Value = s.BaseStrokeWidth
	rp.widthSlider.Refresh()
	rp.sizeSlider.Value = s.BaseAnchorSize
	rp.sizeSlider.Refresh()
}
