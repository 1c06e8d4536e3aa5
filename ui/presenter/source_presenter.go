package presenter

import (
	"context"
	"image"
	"net/http"

	"log/slog"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/crop"
	"github.com/soocke/multicrop-go/domain/imgsource"
	"github.com/soocke/multicrop-go/ui/images"
	"github.com/soocke/multicrop-go/ui/model"
)

// Display budget for the fitted canvas image. The natural image may be far
// larger; exports always cut from the natural raster.
const (
	displayMaxWidth  = 1280
	displayMaxHeight = 800
)

// RegionEngine narrows what the presenter needs from the gesture engine when
// a new source replaces the current one.
type RegionEngine interface{ Reset() }

// SourceSink receives the natural-resolution image for export extraction.
type SourceSink interface{ SetSource(img image.Image) }

// ContentSizer receives the displayed content size for scroll clamping.
type ContentSizer interface{ SetContentSize(w, h float64) }

// SourceView updates UI elements affected by loading a new image.
type SourceView interface {
	ShowImage(img image.Image)
	ConfigEditable(bool)
}

// SourcePresenter owns presentation logic for loading an image from a file,
// a URL or a screen capture, and rewiring the editing pipeline around it.
type SourcePresenter struct {
	logger   *slog.Logger
	cfg      *config.Config
	editor   *model.EditorModel
	resolver *crop.Resolver
	tracker  ContentSizer
	exports  SourceSink
	eng      RegionEngine
	view     SourceView
	client   *http.Client
	canvas   *CropPresenter
}

func NewSourcePresenter(logger *slog.Logger, cfg *config.Config, editor *model.EditorModel, resolver *crop.Resolver, tracker ContentSizer, exports SourceSink, eng RegionEngine, view SourceView, canvas *CropPresenter) *SourcePresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &SourcePresenter{
		logger:   logger,
		cfg:      cfg,
		editor:   editor,
		resolver: resolver,
		tracker:  tracker,
		exports:  exports,
		eng:      eng,
		view:     view,
		canvas:   canvas,
	}
}

// OpenImage installs an already decoded image, e.g. the bundled sample.
func (p *SourcePresenter) OpenImage(origin string, img image.Image) {
	if p == nil || img == nil {
		return
	}
	p.apply(origin, img, nil)
}

// OpenFile loads an image from disk and makes it the editing source.
func (p *SourcePresenter) OpenFile(path string) {
	if p == nil || path == "" {
		return
	}
	img, err := imgsource.FromFile(path)
	p.apply(path, img, err)
}

// OpenURL fetches an image over HTTP using the configured fetch mode.
func (p *SourcePresenter) OpenURL(ctx context.Context, rawURL string) {
	if p == nil || rawURL == "" {
		return
	}
	mode := imgsource.ParseFetchMode(p.cfg.FetchMode)
	img, err := imgsource.FromURL(ctx, rawURL, mode, p.client)
	p.apply(rawURL, img, err)
}

// CaptureScreen grabs the primary screen and makes it the editing source.
func (p *SourcePresenter) CaptureScreen() {
	if p == nil {
		return
	}
	img, err := imgsource.FromScreen()
	p.apply("screen", img, err)
}

func (p *SourcePresenter) apply(origin string, img image.Image, err error) {
	if err != nil {
		if p.logger != nil {
			p.logger.Error("image load failed", "origin", origin, "error", err)
		}
		return
	}
	natural := img.Bounds()
	disp := images.FitToDisplay(img, displayMaxWidth, displayMaxHeight)
	db := disp.Bounds()

	if p.resolver != nil {
		p.resolver.SetNaturalSize(natural.Dx(), natural.Dy())
		p.resolver.SetDisplayedSize(float64(db.Dx()), float64(db.Dy()))
	}
	if p.tracker != nil {
		p.tracker.SetContentSize(float64(db.Dx()), float64(db.Dy()))
	}
	if p.exports != nil {
		p.exports.SetSource(img)
	}
	if p.eng != nil {
		p.eng.Reset()
	}
	p.editor.SetLoaded(origin)
	if p.view != nil {
		p.view.ShowImage(disp)
		p.view.ConfigEditable(true)
	}
	p.canvas.Refresh()
	if p.logger != nil {
		p.logger.Info("image loaded", "origin", origin,
			"natural_w", natural.Dx(), "natural_h", natural.Dy(),
			"display_w", db.Dx(), "display_h", db.Dy())
	}
}
