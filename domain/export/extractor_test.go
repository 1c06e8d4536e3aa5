package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"sync"
	"testing"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/crop"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// gradientSource builds a natural-resolution image where every pixel encodes
// its own coordinates, so crops can be verified pixel-exactly.
func gradientSource(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

// newTestExtractor maps a 200x100 natural image displayed at 100x50 (scale 2).
func newTestExtractor() *Extractor {
	res := crop.NewResolver()
	res.SetNaturalSize(200, 100)
	res.SetDisplayedSize(100, 50)
	x := NewExtractor(discardLogger, nil, res)
	x.SetSource(gradientSource(200, 100))
	return x
}

func TestExtractor_MapsDisplayRectToNaturalPixels(t *testing.T) {
	x := newTestExtractor()
	out, err := x.Extract([]crop.Rect{region("r1", 10, 5, 20, 10)})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(out) != 1 || out[0].ID != "r1" {
		t.Fatalf("unexpected output: %+v", out)
	}
	decoded, err := png.Decode(bytes.NewReader(out[0].Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("natural crop size = %dx%d, want 40x20", b.Dx(), b.Dy())
	}
	// Display (10,5) maps to natural (20,10): the crop's first pixel must be
	// the source pixel at that coordinate, copied 1:1.
	r, g, _, _ := decoded.At(b.Min.X, b.Min.Y).RGBA()
	if uint8(r>>8) != 20 || uint8(g>>8) != 10 {
		t.Fatalf("top-left pixel from wrong source location: r=%d g=%d", r>>8, g>>8)
	}
}

func TestExtractor_FiltersUncommittedAndSentinel(t *testing.T) {
	x := newTestExtractor()
	out, err := x.Extract([]crop.Rect{
		region("small", 0, 0, 5, 5),
		region(crop.SentinelID, 10, 10, 50, 30),
		region("ok", 10, 10, 50, 30),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(out) != 1 || out[0].ID != "ok" {
		t.Fatalf("filter wrong: %+v", out)
	}
}

func TestExtractor_NotReadyWithoutSource(t *testing.T) {
	res := crop.NewResolver()
	res.SetNaturalSize(200, 100)
	res.SetDisplayedSize(100, 50)
	x := NewExtractor(discardLogger, nil, res)
	if _, err := x.Extract([]crop.Rect{region("a", 0, 0, 50, 50)}); !errors.Is(err, ErrSourceNotReady) {
		t.Fatalf("expected ErrSourceNotReady, got %v", err)
	}
}

func TestExtractor_NotReadyBeforeLayout(t *testing.T) {
	res := crop.NewResolver()
	res.SetNaturalSize(200, 100)
	x := NewExtractor(discardLogger, nil, res)
	x.SetSource(gradientSource(200, 100))
	if _, err := x.Extract([]crop.Rect{region("a", 0, 0, 50, 50)}); !errors.Is(err, ErrSourceNotReady) {
		t.Fatalf("expected ErrSourceNotReady before layout, got %v", err)
	}
}

func TestExtractor_OutputOrderMatchesInput(t *testing.T) {
	x := newTestExtractor()
	out, err := x.Extract([]crop.Rect{
		region("b", 50, 10, 20, 20),
		region("a", 10, 10, 20, 20),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b" || out[1].ID != "a" {
		t.Fatalf("order wrong: %+v", out)
	}
}

func TestExtractor_SourceSwapMidStream(t *testing.T) {
	x := newTestExtractor()
	rects := []crop.Rect{region("r1", 10, 5, 20, 10)}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if i%2 == 0 {
				x.SetSource(gradientSource(200, 100))
			} else {
				x.SetSource(nil)
			}
		}
	}()
	for i := 0; i < 100; i++ {
		out, err := x.Extract(rects)
		if err != nil {
			if !errors.Is(err, ErrSourceNotReady) {
				t.Fatalf("extract: %v", err)
			}
			continue
		}
		if len(out) != 1 || out[0].ID != "r1" {
			t.Fatalf("unexpected output: %+v", out)
		}
	}
	wg.Wait()
}

func TestExtractor_ConfigEditsApplyToNextPass(t *testing.T) {
	cfg := config.DefaultConfig()
	res := crop.NewResolver()
	res.SetNaturalSize(200, 100)
	res.SetDisplayedSize(100, 50)
	x := NewExtractor(discardLogger, cfg, res)
	x.SetSource(gradientSource(200, 100))

	out, err := x.Extract([]crop.Rect{region("r1", 10, 5, 20, 20)})
	if err != nil || len(out) != 1 || out[0].Format != "png" {
		t.Fatalf("initial pass: %+v err=%v", out, err)
	}

	cfg.ExportFormat = "jpeg"
	cfg.MinRectSize = 30
	x.Reconfigure()
	out, err = x.Extract([]crop.Rect{
		region("r1", 10, 5, 20, 20),
		region("r2", 10, 5, 40, 40),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(out) != 1 || out[0].ID != "r2" {
		t.Fatalf("raised minimum size must drop r1: %+v", out)
	}
	if out[0].Format != "jpeg" {
		t.Fatalf("format edit not applied: %q", out[0].Format)
	}
}
