package view

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/soocke/multicrop-go/domain/export"
	"github.com/soocke/multicrop-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ExportStrip shows thumbnails of the exported crops in collection order.
type ExportStrip interface {
	UpdateExports(list []export.Extracted)
	Reset()
}

const (
	stripSlots = 8
	thumbW     = 120
	thumbH     = 80
)

type exportStrip struct {
	labels [stripSlots]*LabelWidget
	photos [stripSlots]*Img // last Tk photo image instance per slot
}

// Slots are pre-created so updates only swap photos; Tk photo instances are
// deleted before replacement to avoid retaining obsolete pixel buffers.

// NewExportStrip creates the thumbnail labels in a single grid row.
func NewExportStrip(row int) ExportStrip {
	s := &exportStrip{}
	blank := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, thumbW, thumbH)))
	for i := 0; i < stripSlots; i++ {
		photo := NewPhoto(Data(blank))
		label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
		Grid(label, Row(row), Column(i), Sticky("w"), Padx("0.2m"), Pady("0.3m"))
		s.labels[i] = label
		s.photos[i] = photo
	}
	return s
}

// UpdateExports fills the strip from the ordered list, blanking unused slots.
// Entries beyond the slot count are not shown.
func (s *exportStrip) UpdateExports(list []export.Extracted) {
	if s == nil {
		return
	}
	for i := 0; i < stripSlots; i++ {
		if i >= len(list) {
			s.setSlot(i, nil)
			continue
		}
		img, err := imaging.Decode(bytes.NewReader(list[i].Data))
		if err != nil {
			s.setSlot(i, nil)
			continue
		}
		s.setSlot(i, images.Thumbnail(img, thumbW, thumbH))
	}
}

// Reset blanks every slot.
func (s *exportStrip) Reset() {
	if s == nil {
		return
	}
	for i := 0; i < stripSlots; i++ {
		s.setSlot(i, nil)
	}
}

func (s *exportStrip) setSlot(i int, img image.Image) {
	if s.labels[i] == nil {
		return
	}
	if img == nil {
		img = image.NewRGBA(image.Rect(0, 0, thumbW, thumbH))
	}
	if s.photos[i] != nil {
		s.photos[i].Delete()
	}
	s.photos[i] = NewPhoto(Data(images.EncodePNG(img)))
	s.labels[i].Configure(Image(s.photos[i]))
}
