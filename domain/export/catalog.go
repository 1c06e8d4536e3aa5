package export

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/soocke/multicrop-go/domain/crop"
)

// Catalog keeps exported images keyed by rectangle id. Keying by id rather
// than by collection index means a delete while a pass is pending can never
// pair a rectangle with another rectangle's bitmap.
type Catalog struct {
	mu   sync.Mutex
	byID map[string]Extracted
}

func NewCatalog() *Catalog { return &Catalog{byID: make(map[string]Extracted)} }

// StorePass records the results of one completed extraction pass, replacing
// entries for the ids it covers. Entries for ids absent from the pass are
// kept; deletion is the only thing that removes them.
func (c *Catalog) StorePass(results []Extracted) {
	if c == nil {
		return
	}
	c.mu.Lock()
	for _, r := range results {
		c.byID[r.ID] = r
	}
	c.mu.Unlock()
}

// Remove drops the entry for id, if present.
func (c *Catalog) Remove(id string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.byID, id)
	c.mu.Unlock()
}

// Get returns the entry for id.
func (c *Catalog) Get(id string) (Extracted, bool) {
	if c == nil {
		return Extracted{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.byID[id]
	return e, ok
}

// Ordered assembles the exported image list in the order of rects, skipping
// the sentinel and ids with no catalog entry yet. The result is index-aligned
// with the committed subset of the collection once a pass has converged.
func (c *Catalog) Ordered(rects []crop.Rect) []Extracted {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Extracted, 0, len(rects))
	for _, r := range rects {
		if r.ID == crop.SentinelID {
			continue
		}
		if e, ok := c.byID[r.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

// DataURL encodes an entry as a browser-style data URL.
func DataURL(e Extracted) string {
	return "data:" + e.MIME() + ";base64," + base64.StdEncoding.EncodeToString(e.Data)
}

// WriteFiles writes each entry to dir as crop_<n>.<ext> in list order.
func WriteFiles(dir string, entries []Extracted) error {
	for i, e := range entries {
		ext := "png"
		switch e.Format {
		case "jpeg":
			ext = "jpg"
		case "webp":
			ext = "webp"
		}
		path := filepath.Join(dir, fmt.Sprintf("crop_%d.%s", i+1, ext))
		if err := os.WriteFile(path, e.Data, 0o644); err != nil {
			return fmt.Errorf("export: write %s: %w", path, err)
		}
	}
	return nil
}
