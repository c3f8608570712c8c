package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"roi-editor/internal/roi"
	"roi-editor/pkg/colorutil"
)

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestPNGWithImage(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 20, 30))
	r := roi.NewRectangle(2, 2, 10, 10)
	r.SetStyle(colorutil.Green, 1, 4)

	path := filepath.Join(t.TempDir(), "out.png")
	if err := PNG(path, bg, []roi.Roi{r}, 2); err != nil {
		t.Fatalf("PNG: %v", err)
	}

	img := decodePNG(t, path)
	b := img.Bounds()
	if b.Dx() != 40 || b.Dy() != 60 {
		t.Errorf("output size = %dx%d, want 40x60 (image size x scale)", b.Dx(), b.Dy())
	}
}

func TestPNGWithoutImage(t *testing.T) {
	r := roi.NewRectangle(0, 0, 30, 20)
	r.SetStyle(colorutil.Red, 1, 4)

	path := filepath.Join(t.TempDir(), "rois.png")
	if err := PNG(path, nil, []roi.Roi{r}, 1); err != nil {
		t.Fatalf("PNG: %v", err)
	}

	// Sized to the ROI bounds plus the margin on every side.
	img := decodePNG(t, path)
	b := img.Bounds()
	if b.Dx() != 50 || b.Dy() != 40 {
		t.Errorf("output size = %dx%d, want 50x40", b.Dx(), b.Dy())
	}
}

// countStroke counts red-dominant pixels: the stroke color used by the
// zoom-independence test against a white background.
func countStroke(t *testing.T, path string) int {
	t.Helper()
	img := decodePNG(t, path)
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			if r > 0x8000 && g < 0x8000 && bb < 0x8000 {
				n++
			}
		}
	}
	return n
}

func TestPNGStrokeWidthIgnoresEditorZoom(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 100, 100))
	dir := t.TempDir()

	run := func(name string, editorScale float64) int {
		r := roi.NewRectangle(20, 20, 60, 60)
		r.SetStyle(colorutil.Red, 2, 4)
		r.Rescale(editorScale)

		path := filepath.Join(dir, name)
		if err := PNG(path, bg, []roi.Roi{r}, 1); err != nil {
			t.Fatalf("PNG: %v", err)
		}
		return countStroke(t, path)
	}

	at1x := run("zoom1.png", 1)
	at10x := run("zoom10.png", 10)

	if at1x == 0 {
		t.Fatal("no stroke pixels in export at 1x editor zoom")
	}
	if at10x != at1x {
		t.Errorf("stroke pixels: editor zoom 1x = %d, 10x = %d; export must not depend on editor zoom",
			at1x, at10x)
	}
}

func TestPNGRejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")

	if err := PNG(path, nil, nil, 1); err == nil {
		t.Error("export with no image and no ROIs should error")
	}
	bg := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := PNG(path, bg, nil, 0); err == nil {
		t.Error("export with zero scale should error")
	}
	if err := PNG(path, bg, nil, -1); err == nil {
		t.Error("export with negative scale should error")
	}
}

func TestPNGOmitsAnchors(t *testing.T) {
	// Even a selected ROI with visible anchors exports without the editing
	// chrome: the pixels where anchors would be stay background white.
	r := roi.NewRectangle(20, 20, 40, 40)
	r.SetStyle(colorutil.Red, 1, 8)
	r.ShowAnchors(true)

	path := filepath.Join(t.TempDir(), "clean.png")
	if err := PNG(path, image.NewRGBA(image.Rect(0, 0, 100, 100)), []roi.Roi{r}, 1); err != nil {
		t.Fatalf("PNG: %v", err)
	}

	img := decodePNG(t, path)
	// On the top-left anchor's square outline but off the rectangle stroke.
	// The pixel must be untouched background, not an anchor stroke.
	cr, cg, cb, _ := img.At(16, 16).RGBA()
	if cr>>8 != 255 || cg>>8 != 255 || cb>>8 != 255 {
		t.Errorf("pixel (16,16) = %d,%d,%d; expected white background, not an anchor",
			cr>>8, cg>>8, cb>>8)
	}
}
