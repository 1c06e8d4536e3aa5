package view

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/export"
	"github.com/soocke/multicrop-go/domain/viewport"
	"github.com/soocke/multicrop-go/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Canvas      CropCanvas
	Strip       ExportStrip

	// Widgets
	StateLabel *LabelWidget
	sourceBox  *TextWidget
	saveBox    *TextWidget
}

// Handlers are invoked on user actions.
type Handlers struct {
	OnOpenFile      func(path string)
	OnOpenURL       func(rawURL string)
	OnCaptureScreen func()
	OnSaveCrops     func(dir string)
	OnConfigApplied func()
	OnExit          func()
	Canvas          CanvasHandlers
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	SetConfigEditable(enabled bool)
	ShowImage(img image.Image)
	Render(scene presenter.Scene)
	UpdateExports(list []export.Extracted)
	SetSession(session, total time.Duration)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(tracker *viewport.Tracker, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: session stats, state label, buttons frame
	rv.Session = NewSessionStats(0, 0)
	rv.StateLabel = Label(Txt("State: idle"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.sourceBox = Text(Height(1), Width(32))
	Grid(rv.sourceBox, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	if rv.cfg != nil && rv.cfg.SourcePath != "" {
		rv.sourceBox.Insert("1.0", rv.cfg.SourcePath)
	}
	loadBtn := Button(Txt("Load Image"), Command(func() { rv.loadSource(h) }))
	Grid(loadBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	screenBtn := Button(Txt("Capture Screen"), Command(h.OnCaptureScreen))
	Grid(screenBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.saveBox = Text(Height(1), Width(32))
	Grid(rv.saveBox, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.saveBox.Insert("1.0", "crops")
	saveBtn := Button(Txt("Save Crops"), Command(func() { rv.saveCrops(h) }))
	Grid(saveBtn, In(btnFrame), Row(4), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(h.OnExit))
	Grid(exitBtn, In(btnFrame), Row(5), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.OnConfigApplied)
	endRow := rv.ConfigPanel.Build(1)

	// Canvas, then the export thumbnail strip below it
	rv.Canvas = NewCropCanvas(rv.cfg, tracker, endRow, h.Canvas)
	rv.Strip = NewExportStrip(endRow + 1)
}

func (rv *RootView) loadSource(h Handlers) {
	src := strings.TrimSpace(rv.boxText(rv.sourceBox))
	if src == "" {
		return
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if h.OnOpenURL != nil {
			h.OnOpenURL(src)
		}
		return
	}
	if h.OnOpenFile != nil {
		h.OnOpenFile(src)
	}
}

func (rv *RootView) saveCrops(h Handlers) {
	dir := strings.TrimSpace(rv.boxText(rv.saveBox))
	if dir == "" || h.OnSaveCrops == nil {
		return
	}
	h.OnSaveCrops(dir)
}

func (rv *RootView) boxText(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.Join(w.Get("1.0", END), "")
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// ShowImage installs a newly loaded display image on the canvas.
func (rv *RootView) ShowImage(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.SetBase(img)
	}
}

// Render proxies a scene to the canvas.
func (rv *RootView) Render(scene presenter.Scene) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.Render(scene)
	}
}

// UpdateExports proxies to the thumbnail strip.
func (rv *RootView) UpdateExports(list []export.Extracted) {
	if rv != nil && rv.Strip != nil {
		rv.Strip.UpdateExports(list)
	}
}

// SetSession updates both editing and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session, total)
}

// ConfigEditable redirects to SetConfigEditable to satisfy the source
// presenter's view contract.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }
