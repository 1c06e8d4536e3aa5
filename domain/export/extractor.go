package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/crop"
)

// ErrSourceNotReady reports that the source image is not decoded yet or the
// display mapping is unknown; the pass yields no result and the next
// scheduled pass retries naturally.
var ErrSourceNotReady = errors.New("export: source image not ready")

// Extracted is one encoded region image.
type Extracted struct {
	ID     string
	Data   []byte
	Format string
}

// MIME returns the media type for the encoded bytes.
func (e Extracted) MIME() string {
	switch e.Format {
	case "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

type extractSettings struct {
	minSize     float64
	format      string
	jpegQuality int
	webpQuality int
}

func settingsFrom(cfg *config.Config) extractSettings {
	s := extractSettings{minSize: crop.DefaultMinSize, format: "png", jpegQuality: 90, webpQuality: 90}
	if cfg == nil {
		return s
	}
	if cfg.MinRectSize > 0 {
		s.minSize = cfg.MinRectSize
	}
	switch cfg.ExportFormat {
	case "jpeg", "webp":
		s.format = cfg.ExportFormat
	}
	if cfg.JPEGQuality > 0 {
		s.jpegQuality = cfg.JPEGQuality
	}
	if cfg.WebPQuality > 0 {
		s.webpQuality = cfg.WebPQuality
	}
	return s
}

// Extractor produces one encoded image per committed rectangle, mapping
// display-space geometry to the natural pixel grid via the resolver and
// copying the source block 1:1 (no resampling).
//
// Extract runs on the scheduler's timer goroutine while SetSource and
// Reconfigure arrive from the UI thread; the mutex covers both handoffs.
type Extractor struct {
	logger   *slog.Logger
	cfg      *config.Config
	resolver *crop.Resolver

	mu       sync.Mutex
	source   image.Image
	settings extractSettings
}

// NewExtractor constructs an extractor. The source image is supplied later
// via SetSource once decoding completes.
func NewExtractor(logger *slog.Logger, cfg *config.Config, resolver *crop.Resolver) *Extractor {
	return &Extractor{logger: logger, cfg: cfg, resolver: resolver, settings: settingsFrom(cfg)}
}

// Reconfigure re-reads encoding parameters from the config. Call on the UI
// thread after config edits; the snapshot keeps extraction passes off the
// live config struct.
func (x *Extractor) Reconfigure() {
	if x == nil {
		return
	}
	s := settingsFrom(x.cfg)
	x.mu.Lock()
	x.settings = s
	x.mu.Unlock()
}

// SetSource installs the decoded natural-resolution source image. A nil
// source returns the extractor to the not-ready state.
func (x *Extractor) SetSource(img image.Image) {
	if x == nil {
		return
	}
	x.mu.Lock()
	x.source = img
	x.mu.Unlock()
}

func (x *Extractor) snapshot() (image.Image, extractSettings) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.source, x.settings
}

// Ready reports whether a pass would produce output.
func (x *Extractor) Ready() bool {
	if x == nil {
		return false
	}
	source, _ := x.snapshot()
	return source != nil && x.resolver.Ready()
}

// Extract runs one pass over rects, filtered to committed rectangles
// (both dimensions at or above the minimum size). Output order matches the
// input order. Returns ErrSourceNotReady when the source image or scale
// mapping is unavailable.
func (x *Extractor) Extract(rects []crop.Rect) ([]Extracted, error) {
	source, s := x.snapshot()
	if source == nil || !x.resolver.Ready() {
		return nil, ErrSourceNotReady
	}
	start := time.Now()
	bounds := source.Bounds()
	out := make([]Extracted, 0, len(rects))
	for _, r := range rects {
		if r.ID == crop.SentinelID || r.Width < s.minSize || r.Height < s.minSize {
			continue
		}
		nat := x.resolver.ToNatural(r.Rect)
		region := image.Rect(int(nat.X), int(nat.Y), int(nat.X+nat.Width), int(nat.Y+nat.Height))
		region = region.Add(bounds.Min).Intersect(bounds)
		if region.Empty() {
			continue
		}
		data, err := encode(imaging.Crop(source, region), s)
		if err != nil {
			return nil, fmt.Errorf("export: encode region %s: %w", r.ID, err)
		}
		out = append(out, Extracted{ID: r.ID, Data: data, Format: s.format})
	}
	if x.logger != nil {
		x.logger.Debug("export.pass", "regions", len(out), "elapsed", time.Since(start))
	}
	return out, nil
}

func encode(img image.Image, s extractSettings) ([]byte, error) {
	var buf bytes.Buffer
	switch s.format {
	case "jpeg":
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.jpegQuality)); err != nil {
			return nil, err
		}
	case "webp":
		if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(s.webpQuality)}); err != nil {
			return nil, err
		}
	default:
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
