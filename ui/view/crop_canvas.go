package view

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/crop"
	"github.com/soocke/multicrop-go/domain/viewport"
	"github.com/soocke/multicrop-go/ui/images"
	"github.com/soocke/multicrop-go/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// Visible canvas size; content larger than this scrolls.
	canvasClientW = 960
	canvasClientH = 540

	outlineThickness = 2
	badgeSize        = 16
	wheelStep        = 40.0
)

// CropCanvas displays the annotated image and forwards pointer events.
// It owns a single LabelWidget whose photo is recomposed on every render.
type CropCanvas interface {
	SetBase(img image.Image)
	Render(scene presenter.Scene)
	Reset()
}

type cropCanvas struct {
	cfg     *config.Config
	tracker *viewport.Tracker
	label   *LabelWidget
	photo   *Img // last Tk photo image instance
	base    *image.RGBA

	onScrolled func()
}

type canvasPalette struct {
	rect, active, badge, del color.RGBA
}

// palette parses the configured colors on every render, so edits applied
// through the config panel show on the next frame.
func (v *cropCanvas) palette() canvasPalette {
	return canvasPalette{
		rect:   parseHexColor(v.cfg.RectColor, color.RGBA{R: 0x2d, G: 0x6c, B: 0xdf, A: 0xff}),
		active: parseHexColor(v.cfg.ActiveRectColor, color.RGBA{R: 0xdf, G: 0x2d, B: 0x2d, A: 0xff}),
		badge:  parseHexColor(v.cfg.BadgeColor, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		del:    parseHexColor(v.cfg.DeleteColor, color.RGBA{R: 0xdf, G: 0x2d, B: 0x2d, A: 0xff}),
	}
}

// CanvasHandlers carries the pointer callbacks bound to the canvas widget.
// Coordinates handed to them are client pixels inside the visible canvas.
type CanvasHandlers struct {
	OnDown     func(x, y float64)
	OnMove     func(x, y float64)
	OnUp       func()
	OnScrolled func()
}

// NewCropCanvas creates the canvas label at the given grid row. Mouse wheel
// scrolls vertically, shift-wheel horizontally; both clamp via the tracker.
func NewCropCanvas(cfg *config.Config, tracker *viewport.Tracker, row int, h CanvasHandlers) CropCanvas {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	placeholder := image.NewRGBA(image.Rect(0, 0, canvasClientW, canvasClientH))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))

	v := &cropCanvas{
		cfg:        cfg,
		tracker:    tracker,
		label:      label,
		photo:      photo,
		onScrolled: h.OnScrolled,
	}
	tracker.SetClientSize(canvasClientW, canvasClientH)

	Bind(label, "<ButtonPress-1>", Command(func(e *Event) {
		if h.OnDown != nil {
			h.OnDown(float64(e.X), float64(e.Y))
		}
	}))
	Bind(label, "<B1-Motion>", Command(func(e *Event) {
		if h.OnMove != nil {
			h.OnMove(float64(e.X), float64(e.Y))
		}
	}))
	Bind(label, "<ButtonRelease-1>", Command(func(e *Event) {
		if h.OnUp != nil {
			h.OnUp()
		}
	}))
	Bind(label, "<MouseWheel>", Command(func(e *Event) {
		v.wheel(0, e.Delta)
	}))
	Bind(label, "<Shift-MouseWheel>", Command(func(e *Event) {
		v.wheel(e.Delta, 0)
	}))
	return v
}

// SetBase installs a freshly loaded display-fitted image as canvas content.
func (v *cropCanvas) SetBase(img image.Image) {
	if v == nil || img == nil {
		return
	}
	b := img.Bounds()
	base := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(base, base.Bounds(), img, b.Min, draw.Src)
	v.base = base
	if v.tracker != nil {
		v.tracker.SetScroll(0, 0)
	}
}

// Render recomposes the annotated content and shows the visible window.
func (v *cropCanvas) Render(scene presenter.Scene) {
	if v == nil || v.label == nil || v.base == nil {
		return
	}
	composed := image.NewRGBA(v.base.Bounds())
	draw.Draw(composed, composed.Bounds(), v.base, image.Point{}, draw.Src)

	pal := v.palette()
	for _, r := range scene.Rects {
		ir := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
		c := pal.rect
		if r.ID == scene.ActiveID || r.ID == crop.SentinelID {
			c = pal.active
		}
		images.Outline(composed, ir, c, outlineThickness)
		if r.ID == crop.SentinelID {
			continue
		}
		v.drawBadge(composed, ir, scene.Numbers[r.ID], pal)
		v.drawDeleteBox(composed, ir, pal)
	}

	visible := v.visibleWindow(composed)
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(images.EncodePNG(visible)))
	v.label.Configure(Image(v.photo))
}

// Reset restores the empty placeholder.
func (v *cropCanvas) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.base = nil
	if v.photo != nil {
		v.photo.Delete()
	}
	placeholder := image.NewRGBA(image.Rect(0, 0, canvasClientW, canvasClientH))
	v.photo = NewPhoto(Data(images.EncodePNG(placeholder)))
	v.label.Configure(Image(v.photo))
}

func (v *cropCanvas) drawBadge(dst *image.RGBA, r image.Rectangle, n int, pal canvasPalette) {
	if n <= 0 {
		return
	}
	badge := image.Rect(r.Min.X, r.Min.Y, r.Min.X+badgeSize, r.Min.Y+badgeSize)
	images.Fill(dst, badge, pal.badge)
	images.Label(dst, r.Min.X+4, r.Min.Y+1, fmt.Sprintf("%d", n), color.RGBA{A: 0xff})
}

func (v *cropCanvas) drawDeleteBox(dst *image.RGBA, r image.Rectangle, pal canvasPalette) {
	box := image.Rect(r.Max.X-badgeSize+4, r.Min.Y, r.Max.X, r.Min.Y+badgeSize-4)
	images.Fill(dst, box, pal.del)
	images.Label(dst, box.Min.X+3, box.Min.Y-1, "x", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

func (v *cropCanvas) visibleWindow(composed *image.RGBA) image.Image {
	if v.tracker == nil {
		return composed
	}
	vp := v.tracker.Current()
	win := image.Rect(int(vp.Left), int(vp.Top), int(vp.Right), int(vp.Bottom))
	win = win.Intersect(composed.Bounds())
	if win.Empty() {
		return composed
	}
	return composed.SubImage(win)
}

func (v *cropCanvas) wheel(dx, dy int) {
	if v == nil || v.tracker == nil {
		return
	}
	// Tk wheel deltas are positive when scrolling up.
	v.tracker.ScrollBy(-float64(sign(dx))*wheelStep, -float64(sign(dy))*wheelStep)
	if v.onScrolled != nil {
		v.onScrolled()
	}
}

func sign(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

// parseHexColor parses "#rrggbb", falling back on malformed input.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
