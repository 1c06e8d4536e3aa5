package app

import (
	"context"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/multicrop-go/assets"
	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/debug"
	"github.com/soocke/multicrop-go/domain/export"
	"github.com/soocke/multicrop-go/ui/presenter"
	"github.com/soocke/multicrop-go/ui/theme"
	"github.com/soocke/multicrop-go/ui/view"
)

const tick = 100 * time.Millisecond

// app owns the Tk lifecycle around an assembled container: building the
// window, pumping the presenter loop, and tearing the pipeline down on exit.
type app struct {
	c       *AppContainer
	cfgPath string
	afterID string
}

func NewApp(cfg *config.Config, logger *slog.Logger, cfgPath string) *app {
	return &app{c: BuildContainer(cfg, logger, cfgPath), cfgPath: cfgPath}
}

// Start builds the UI on the Tk thread and blocks until the window closes.
func (a *app) Start(title string) {
	c := a.c
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)

	theme.InitStyles()

	c.RootView.Build(c.Tracker, view.Handlers{
		OnOpenFile:      c.SourcePresenter.OpenFile,
		OnOpenURL:       func(u string) { c.SourcePresenter.OpenURL(context.Background(), u) },
		OnCaptureScreen: c.SourcePresenter.CaptureScreen,
		OnSaveCrops:     a.saveCrops,
		OnConfigApplied: a.configApplied,
		OnExit:          a.exitHandler,
		Canvas: view.CanvasHandlers{
			OnDown:     c.CropPresenter.PointerDown,
			OnMove:     c.CropPresenter.PointerMove,
			OnUp:       c.CropPresenter.PointerUp,
			OnScrolled: c.CropPresenter.Refresh,
		},
	})

	c.Loop = presenter.NewLoop(c.SessionPresenter, c.StatePresenter, c.ExportPresenter, a.scheduleUpdate)

	if c.Config.Debug {
		debug.StartGoroutineLogger(2*time.Second, c.Logger)
		debug.StartMemLogger(5*time.Second, c.Logger)
	}

	a.loadInitialImage()
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) loadInitialImage() {
	c := a.c
	if c.Config.SourcePath != "" {
		c.SourcePresenter.OpenFile(c.Config.SourcePath)
		if c.Editor.Loaded() {
			return
		}
	}
	if img, err := assets.SampleImage(); err == nil {
		c.SourcePresenter.OpenImage("sample", img)
	} else {
		c.Logger.Error("sample image load failed", "error", err)
	}
}

func (a *app) update() {
	c := a.c
	if c.TakeScrolled() {
		c.CropPresenter.Refresh()
	}
	c.Loop.Tick()
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}

func (a *app) saveCrops(dir string) {
	c := a.c
	list := c.Exports.Latest()
	if len(list) == 0 {
		c.Logger.Info("no crops to save", "dir", dir)
		return
	}
	if err := export.WriteFiles(dir, list); err != nil {
		c.Logger.Error("saving crops failed", "dir", dir, "error", err)
		return
	}
	c.Logger.Info("crops saved", "dir", dir, "count", len(list))
}

// configApplied pushes panel edits into components that snapshot their
// parameters instead of reading the config per use.
func (a *app) configApplied() {
	c := a.c
	c.Scroller.SetParams(c.Config.ScrollThreshold, c.Config.ScrollSpeed)
	c.Exporter.Extractor().Reconfigure()
}

func (a *app) exitHandler() {
	c := a.c
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	c.Engine.Close()
	c.Scroller.Stop()
	c.Editor.Clear()
	Destroy(App)
}
