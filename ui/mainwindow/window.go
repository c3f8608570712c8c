// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"roi-editor/internal/app"
	"roi-editor/internal/export"
	"roi-editor/internal/roi"
	"roi-editor/internal/version"
	"roi-editor/pkg/colorutil"
	"roi-editor/ui/canvas"
	"roi-editor/ui/panels"
	"roi-editor/ui/prefs"
)

// Default geometry for freshly inserted ROIs, in canvas units.
const (
	newBoxWidth   = 80.0
	newBoxHeight  = 50.0
	newLineLength = 80.0
	newPointSize  = 6.0
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.RoiCanvas
	roiPanel  *panels.RoiPanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("ROI Editor")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	mw.canvas.SetFitToWindow(p.Bool(prefs.KeyFitToWindow, false))

	w := p.FloatWithFallback(prefs.KeyWindowWidth, 1100)
	h := p.FloatWithFallback(prefs.KeyWindowHeight, 750)
	win.Resize(fyne.NewSize(float32(w), float32(h)))

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewRoiCanvas(mw.state)

	mw.roiPanel = panels.NewRoiPanel(mw.state, mw.canvas)
	mw.roiPanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.roiPanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls and ROI insertion.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.canvas.ZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.canvas.ZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.canvas.FitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.canvas.SetZoom(1.0)
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		widget.NewSeparator(),
		widget.NewLabel("Insert:"),
		widget.NewButton("Rect", func() { mw.insertRectangle() }),
		widget.NewButton("Ellipse", func() { mw.insertEllipse() }),
		widget.NewButton("Line", func() { mw.insertLine() }),
		widget.NewButton("Polygon", func() { mw.insertPolygon() }),
		widget.NewButton("Polyline", func() { mw.insertPolyline() }),
		widget.NewButton("Point", func() { mw.insertPoint() }),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	showImage := fyne.NewMenuItem("Show Image", nil)
	showImage.Checked = true
	showImage.Action = func() {
		visible := !mw.canvas.ImageVisible()
		mw.canvas.SetImageVisible(visible)
		showImage.Checked = visible
	}

	fitOnResize := fyne.NewMenuItem("Fit on Resize", nil)
	fitOnResize.Checked = mw.prefs.Bool(prefs.KeyFitToWindow, false)
	fitOnResize.Action = func() {
		fit := !fitOnResize.Checked
		fitOnResize.Checked = fit
		mw.canvas.SetFitToWindow(fit)
		mw.prefs.SetBool(prefs.KeyFitToWindow, fit)
	}

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.canvas.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.canvas.ZoomOut() }),
		fyne.NewMenuItem("Fit to Window", func() { mw.canvas.FitToWindow() }),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
		fyne.NewMenuItemSeparator(),
		showImage,
		fitOnResize,
	)

	roiMenu := fyne.NewMenu("ROI",
		fyne.NewMenuItem("Insert Rectangle", mw.insertRectangle),
		fyne.NewMenuItem("Insert Ellipse", mw.insertEllipse),
		fyne.NewMenuItem("Insert Line", mw.insertLine),
		fyne.NewMenuItem("Insert Polygon", mw.insertPolygon),
		fyne.NewMenuItem("Insert Polyline", mw.insertPolyline),
		fyne.NewMenuItem("Insert Point", mw.insertPoint),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selected", mw.onDeleteSelected),
		fyne.NewMenuItem("Clear Selection", func() { mw.state.ClearSelection() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, roiMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(interface{}) {
		mw.canvas.Refresh()
		mw.updateStatus("Image loaded")
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		id, _ := data.(int)
		if id == 0 {
			mw.updateStatus(fmt.Sprintf("Zoom %.0f%%", mw.canvas.Zoom()*100))
			return
		}
		if r := mw.state.RoiByID(id); r != nil {
			mw.updateStatus(fmt.Sprintf("Selected #%d %s", id, r.Kind()))
		}
	})

	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.updateStatus(fmt.Sprintf("Zoom %.0f%%", zoom*100))
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// ------------------------------------------------
// ROI insertion
// ------------------------------------------------

// addRoi applies the default style from preferences, adds the ROI to the
// scene, and selects it so its anchors appear immediately.
func (mw *MainWindow) addRoi(r roi.Roi) {
	c := colorutil.ParseHex(mw.prefs.StringWithFallback(prefs.KeyStrokeColor, "#00ff00"))
	width := mw.prefs.FloatWithFallback(prefs.KeyStrokeWidth, roi.DefaultStrokeWidth)
	size := mw.prefs.FloatWithFallback(prefs.KeyAnchorSize, roi.DefaultAnchorSize)
	r.SetStyle(c, width, size)

	id := mw.state.AddRoi(r)
	mw.state.Select(id)
	mw.canvas.Refresh()
	mw.roiPanel.Refresh()
}

func (mw *MainWindow) insertRectangle() {
	c := mw.canvas.ViewCenter()
	mw.addRoi(roi.NewRectangle(c.X-newBoxWidth/2, c.Y-newBoxHeight/2, newBoxWidth, newBoxHeight))
}

func (mw *MainWindow) insertEllipse() {
	c := mw.canvas.ViewCenter()
	mw.addRoi(roi.NewEllipse(c.X-newBoxWidth/2, c.Y-newBoxHeight/2, newBoxWidth, newBoxHeight))
}

func (mw *MainWindow) insertLine() {
	c := mw.canvas.ViewCenter()
	mw.addRoi(roi.NewLine(c.X-newLineLength/2, c.Y, c.X+newLineLength/2, c.Y))
}

func (mw *MainWindow) insertPolygon() {
	c := mw.canvas.ViewCenter()
	p, err := roi.NewPath(
		[]float64{c.X, c.X + 40, c.X - 40},
		[]float64{c.Y - 40, c.Y + 30, c.Y + 30},
		true, true)
	if err != nil {
		log.Printf("insert polygon: %v", err)
		return
	}
	mw.addRoi(p)
}

func (mw *MainWindow) insertPolyline() {
	c := mw.canvas.ViewCenter()
	p, err := roi.NewPath(
		[]float64{c.X - 40, c.X, c.X + 40},
		[]float64{c.Y, c.Y - 30, c.Y},
		false, true)
	if err != nil {
		log.Printf("insert polyline: %v", err)
		return
	}
	mw.addRoi(p)
}

func (mw *MainWindow) insertPoint() {
	c := mw.canvas.ViewCenter()
	mw.addRoi(roi.NewPoint(c.X, c.Y, newPointSize))
}

func (mw *MainWindow) onDeleteSelected() {
	if id := mw.state.SelectedID(); id != 0 {
		mw.state.RemoveRoi(id)
		mw.roiPanel.Refresh()
	}
}

// ------------------------------------------------
// File handling
// ------------------------------------------------

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		if err := mw.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.saveLastDir(path)
		mw.prefs.SetString(prefs.KeyLastImagePath, path)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	if dir := mw.lastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

// LoadImage decodes the image at path and installs it as the scene
// background.
func (mw *MainWindow) LoadImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", filepath.Base(path), err)
	}

	mw.state.SetImage(img)
	mw.SetTitle("ROI Editor - " + filepath.Base(path))
	return nil
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		items := mw.state.Rois()
		rois := make([]roi.Roi, len(items))
		for i, item := range items {
			rois[i] = item.Roi
		}

		scale := mw.prefs.FloatWithFallback(prefs.KeyExportScale, 1.0)
		if err := export.PNG(path, mw.state.Image(), rois, scale); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(path))
	}, mw.Window)

	fd.SetFileName("annotated.png")
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("ROI Editor %s\n\nDraw and reshape regions of interest on an image.", version.Version),
		mw.Window)
}

// lastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDirectory)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDirectory, filepath.Dir(filePath))
}

// SavePreferences persists window geometry and preferences to disk.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}
