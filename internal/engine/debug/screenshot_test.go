package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/ron/internal/engine/gpu/gputest"
)

func fixedCapture(dir string) *ScreenshotCapture {
	sc := NewScreenshotCapture(dir, "shot")
	sc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	return sc
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := fixedCapture(dir)

	// Two rows, bottom row first: bottom red, top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if want := filepath.Join(dir, "shot_2024-05-06_07-08-09.png"); name != want {
		t.Errorf("filename = %q, want %q", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Error("top row should be blue")
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r == 0 {
		t.Error("bottom row should be red")
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := fixedCapture(t.TempDir())
	if _, err := sc.CaptureFromPixels(make([]byte, 3), 1, 1); err == nil {
		t.Error("short pixel buffer accepted")
	}
}

func TestFilenamesDoNotCollide(t *testing.T) {
	sc := fixedCapture(t.TempDir())
	dev := gputest.New()

	first, err := sc.Capture(dev, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sc.Capture(dev, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("second capture overwrote %q", first)
	}
}
