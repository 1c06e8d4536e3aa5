package app

import (
	"log/slog"
	"sync/atomic"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/crop"
	"github.com/soocke/multicrop-go/domain/export"
	"github.com/soocke/multicrop-go/domain/viewport"
	"github.com/soocke/multicrop-go/ui/model"
	"github.com/soocke/multicrop-go/ui/presenter"
	"github.com/soocke/multicrop-go/ui/view"
)

// AppContainer assembles models, domain services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Logger *slog.Logger

	// Models
	Editor  *model.EditorModel
	Session *model.SessionModel
	Exports *model.ExportModel

	// Domain
	Resolver *crop.Resolver
	Tracker  *viewport.Tracker
	Scroller *viewport.AutoScroller
	Exporter *export.Exporter
	Engine   *crop.Engine

	// View
	RootView *view.RootView
	UI       view.UI

	// Presenters
	CropPresenter    *presenter.CropPresenter
	StatePresenter   *presenter.StatePresenter
	ExportPresenter  *presenter.ExportPresenter
	SessionPresenter *presenter.SessionPresenter
	SourcePresenter  *presenter.SourcePresenter
	Loop             *presenter.Loop

	// Set from the auto-scroll goroutine; drained on the UI tick to repaint.
	scrolled atomic.Bool
}

// BuildContainer constructs and wires all components. No Tk widgets are
// created here; the view is built later on the Tk thread.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Editor = &model.EditorModel{}
	c.Session = model.NewSessionModel()
	c.Exports = model.NewExportModel()

	c.Resolver = crop.NewResolver()
	c.Tracker = viewport.NewTracker()
	c.Scroller = viewport.NewAutoScroller(c.Tracker, cfg.ScrollThreshold, cfg.ScrollSpeed,
		func(dx, dy float64) { c.scrolled.Store(true) }, logger)

	c.Exporter = export.NewExporter(logger, cfg, c.Resolver)
	c.Exporter.OnExport = c.Exports.Publish

	c.Engine = crop.NewEngine(logger, cfg, nil, crop.Deps{
		Resolver: c.Resolver,
		Viewport: c.Tracker,
		Scroller: c.Scroller,
		Exports:  c.Exporter,
	})

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.CropPresenter = presenter.NewCropPresenter(c.Engine, c.Tracker, c.RootView)
	c.StatePresenter = presenter.NewStatePresenter(c.Engine, c.RootView)
	c.Engine.AddTransitionListener(func(prev, next crop.GestureState) {
		c.StatePresenter.OnState(next)
	})
	c.ExportPresenter = presenter.NewExportPresenter(c.Exports, c.RootView)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Editor, c.RootView)
	c.SourcePresenter = presenter.NewSourcePresenter(logger, cfg, c.Editor, c.Resolver, c.Tracker,
		c.Exporter, c.Engine, c.RootView, c.CropPresenter)
	return c
}

// TakeScrolled reports and clears the pending auto-scroll repaint flag.
func (c *AppContainer) TakeScrolled() bool {
	if c == nil {
		return false
	}
	return c.scrolled.Swap(false)
}
