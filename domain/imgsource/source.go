// Package imgsource loads the raster image being annotated: a local file, a
// remote URL, or a capture of the screen itself.
package imgsource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/vova616/screenshot"

	// Register extra decode formats beyond imaging's defaults.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FetchMode controls how credentials accompany a remote image fetch. Pixel
// data is read back out of the loaded image, so a source behind
// authentication must be fetched with the correct mode; a wrong mode
// surfaces as an HTTP or decode error returned to the caller unmodified.
type FetchMode int

const (
	// FetchNoCredentials issues a plain GET with the default client.
	FetchNoCredentials FetchMode = iota
	// FetchAnonymous issues a GET guaranteed to carry no cookies or auth.
	FetchAnonymous
	// FetchWithCredentials uses a caller-supplied client carrying
	// cookies or authorization.
	FetchWithCredentials
)

// ParseFetchMode maps the config string to a FetchMode. Unknown values fall
// back to FetchNoCredentials.
func ParseFetchMode(s string) FetchMode {
	switch s {
	case "anonymous":
		return FetchAnonymous
	case "credentials":
		return FetchWithCredentials
	default:
		return FetchNoCredentials
	}
}

// FromFile decodes a local image file, honoring EXIF orientation.
func FromFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imgsource: open %s: %w", path, err)
	}
	return img, nil
}

// FromURL fetches and decodes a remote image. A FetchWithCredentials mode
// requires a non-nil client; the other modes ignore it.
func FromURL(ctx context.Context, rawURL string, mode FetchMode, client *http.Client) (image.Image, error) {
	switch mode {
	case FetchWithCredentials:
		if client == nil {
			return nil, errors.New("imgsource: credentialed fetch requires a client")
		}
	case FetchAnonymous:
		// Fresh client: no jar, no ambient auth.
		client = &http.Client{}
	default:
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("imgsource: request %s: %w", rawURL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imgsource: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imgsource: fetch %s: status %s", rawURL, resp.Status)
	}
	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imgsource: decode %s: %w", rawURL, err)
	}
	return img, nil
}

// FromScreen captures the current screen as the image to annotate.
func FromScreen() (image.Image, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("imgsource: capture screen: %w", err)
	}
	return img, nil
}
