package export

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/crop"
)

// Exporter wires scheduler, extractor and catalog into the engine's
// ExportSink. Each completed pass (and each id removal) publishes the
// ordered exported image list through the OnExport callback.
//
// OnExport runs on the scheduler's timer goroutine after a pass and on the
// caller's goroutine after Forget; subscribers needing a UI thread must
// marshal themselves.
type Exporter struct {
	logger  *slog.Logger
	cfg     *config.Config
	extr    *Extractor
	catalog *Catalog
	sched   *Scheduler

	mu        sync.Mutex
	lastRects []crop.Rect

	// OnExport receives the ordered list after every catalog change.
	OnExport func([]Extracted)
}

// NewExporter builds the full export pipeline.
func NewExporter(logger *slog.Logger, cfg *config.Config, resolver *crop.Resolver) *Exporter {
	x := &Exporter{
		logger:  logger,
		cfg:     cfg,
		extr:    NewExtractor(logger, cfg, resolver),
		catalog: NewCatalog(),
	}
	x.sched = NewScheduler(x.delay(), x.pass)
	return x
}

// delay reads the configured debounce so edits applied at runtime take
// effect on the next request.
func (x *Exporter) delay() time.Duration {
	if x.cfg != nil && x.cfg.DebounceMS > 0 {
		return time.Duration(x.cfg.DebounceMS) * time.Millisecond
	}
	return DefaultDebounce
}

// SetSource installs the decoded source image (see Extractor.SetSource).
func (x *Exporter) SetSource(img image.Image) {
	if x == nil {
		return
	}
	x.extr.SetSource(img)
}

// Request schedules a debounced extraction pass over the full collection.
func (x *Exporter) Request(rects []crop.Rect) {
	if x == nil {
		return
	}
	x.mu.Lock()
	x.lastRects = rects
	x.mu.Unlock()
	x.sched.SetDelay(x.delay())
	x.sched.Request(rects)
}

// Forget drops the exported entry for a deleted rectangle immediately and
// republishes the remaining list. Not debounced.
func (x *Exporter) Forget(id string) {
	if x == nil {
		return
	}
	x.catalog.Remove(id)
	x.mu.Lock()
	for i := range x.lastRects {
		if x.lastRects[i].ID == id {
			x.lastRects = append(x.lastRects[:i], x.lastRects[i+1:]...)
			break
		}
	}
	rects := x.lastRects
	x.mu.Unlock()
	x.publish(rects)
}

// Cancel aborts any pending pass. Used on teardown.
func (x *Exporter) Cancel() {
	if x == nil {
		return
	}
	x.sched.Cancel()
}

// Catalog exposes the id-keyed results for direct lookups.
func (x *Exporter) Catalog() *Catalog {
	if x == nil {
		return nil
	}
	return x.catalog
}

// Extractor exposes the underlying extractor for source installation.
func (x *Exporter) Extractor() *Extractor {
	if x == nil {
		return nil
	}
	return x.extr
}

func (x *Exporter) pass(_ []crop.Rect) {
	// The scheduled payload may predate deletions that landed while the
	// debounce timer ran. Extract against the collection as it stands now.
	rects := x.snapshot()
	results, err := x.extr.Extract(rects)
	if err != nil {
		if errors.Is(err, ErrSourceNotReady) {
			if x.logger != nil {
				x.logger.Debug("export.skip", "reason", "source not ready")
			}
			return
		}
		if x.logger != nil {
			x.logger.Error("export pass failed", "error", err)
		}
		return
	}
	// A Forget during extraction wins over the pass result; storing its id
	// back would resurrect the deleted entry.
	current := x.snapshot()
	live := make(map[string]struct{}, len(current))
	for _, r := range current {
		live[r.ID] = struct{}{}
	}
	kept := results[:0]
	for _, res := range results {
		if _, ok := live[res.ID]; ok {
			kept = append(kept, res)
		}
	}
	x.catalog.StorePass(kept)
	x.publish(current)
}

func (x *Exporter) snapshot() []crop.Rect {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]crop.Rect(nil), x.lastRects...)
}

func (x *Exporter) publish(rects []crop.Rect) {
	if x.OnExport == nil {
		return
	}
	x.OnExport(x.catalog.Ordered(rects))
}

var _ crop.ExportSink = (*Exporter)(nil)
