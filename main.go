package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/soocke/multicrop-go/app"
	"github.com/soocke/multicrop-go/config"
)

func main() {
	var (
		imagePath = flag.String("image", "", "image file to open on startup")
		cfgPath   = flag.String("config", "multicrop.json", "path to the JSON config file")
		debugFlag = flag.Bool("debug", false, "enable debug logging and runtime metrics")
	)
	flag.Parse()

	// Base config from defaults, overlaid by the config file when present.
	cfg := config.DefaultConfig()
	if loaded, err := config.Load(*cfgPath); err == nil {
		cfg = loaded
	}
	if *imagePath != "" {
		cfg.SourcePath = *imagePath
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("invalid config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	application := app.NewApp(cfg, logger, *cfgPath)
	application.Start("Multi Crop")
}
