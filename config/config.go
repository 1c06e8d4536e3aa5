package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the crop editor. Fields may be
// loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Interaction parameters
	MinRectSize     float64 `json:"min_rect_size"`
	ScrollThreshold float64 `json:"scroll_threshold"`
	ScrollSpeed     float64 `json:"scroll_speed"`

	// Export parameters
	DebounceMS   int    `json:"debounce_ms"`
	ExportFormat string `json:"export_format"` // png, jpeg or webp
	JPEGQuality  int    `json:"jpeg_quality"`
	WebPQuality  int    `json:"webp_quality"`

	// Image source
	SourcePath string `json:"source_path"`
	FetchMode  string `json:"fetch_mode"` // none, anonymous or credentials

	// Presentation styling (hex colors, consumed only by the view)
	RectColor       string `json:"rect_color"`
	ActiveRectColor string `json:"active_rect_color"`
	BadgeColor      string `json:"badge_color"`
	DeleteColor     string `json:"delete_color"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		MinRectSize:     10,
		ScrollThreshold: 20,
		ScrollSpeed:     10,
		DebounceMS:      400,
		ExportFormat:    "png",
		JPEGQuality:     90,
		WebPQuality:     90,
		FetchMode:       "none",
		RectColor:       "#2d6cdf",
		ActiveRectColor: "#df2d2d",
		BadgeColor:      "#ffffff",
		DeleteColor:     "#df2d2d",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.MinRectSize <= 0 {
		c.MinRectSize = 10
	}
	if c.ScrollThreshold <= 0 {
		c.ScrollThreshold = 20
	}
	if c.ScrollSpeed <= 0 {
		c.ScrollSpeed = 10
	}
	if c.DebounceMS <= 0 {
		c.DebounceMS = 400
	}
	switch c.ExportFormat {
	case "png", "jpeg", "webp":
	default:
		c.ExportFormat = "png"
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = 90
	}
	if c.WebPQuality <= 0 || c.WebPQuality > 100 {
		c.WebPQuality = 90
	}
	switch c.FetchMode {
	case "none", "anonymous", "credentials":
	default:
		c.FetchMode = "none"
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
