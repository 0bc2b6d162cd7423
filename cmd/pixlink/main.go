// Command pixlink anonymizes regions of interest in image folders: it
// loads a directory through the caching pipeline, detects regions
// (skin, rectangles or text) once per image, and saves one masked copy
// per configured filter chain.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/aymenblj/pixlink/internal/cache"
	"github.com/aymenblj/pixlink/internal/config"
	"github.com/aymenblj/pixlink/internal/detection"
	"github.com/aymenblj/pixlink/internal/filters"
	"github.com/aymenblj/pixlink/internal/imaging"
	"github.com/aymenblj/pixlink/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	versionFlag := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("pixlink %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("processing failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	c := newCache(cfg.CacheCapacity)
	p, err := pipeline.New[*image.NRGBA](cfg.InputDir, cfg.OutputDir, c, imaging.FileLoader{}, imaging.FileSaver{})
	if err != nil {
		return err
	}

	detect := newDetector(cfg.Detector)
	regions := pipeline.NewRegionPipeline(detect, p.Working(), imaging.Bounds)

	if err := p.LoadDirectory(cfg.Source, cfg.Extensions); err != nil {
		return err
	}
	slog.Info("loaded images", "dir", cfg.Source, "count", len(p.Keys("")))

	// Keep only images with at least one region to mask.
	p.Filter(func(key string, img *image.NRGBA) bool {
		n := len(detect(img))
		slog.Debug("detected regions", "image", key, "count", n)
		return n > 0
	})

	chains, err := buildChains(cfg.Chains)
	if err != nil {
		return err
	}

	for _, key := range p.Keys("") {
		for i, chain := range chains {
			if err := regions.ProcessRegions(key, imaging.RegionOp(chain.filter)); err != nil {
				return err
			}
			if err := p.SaveAs(key, chain.subdir); err != nil {
				return err
			}
			regions.ResetRegions(key)
			if err := p.Reset(key); err != nil {
				return err
			}
			slog.Debug("applied chain", "image", key, "chain", cfg.Chains[i].Filter)
		}
		if err := p.Unload(key); err != nil {
			return err
		}
		slog.Info("processed image", "image", key, "chains", len(chains))
	}

	slog.Info("done", "output", p.OutputDir())
	return nil
}

func newCache(capacity int) cache.Cache[*image.NRGBA] {
	if capacity > 0 {
		return cache.NewLRU(capacity, imaging.Clone)
	}
	return cache.NewUnbounded(imaging.Clone)
}

func newDetector(d config.Detector) pipeline.Detector[*image.NRGBA] {
	switch d.Kind {
	case "rectangles":
		return func(img *image.NRGBA) []image.Rectangle {
			return detection.Rectangles(img, d.MinArea, d.Tolerance)
		}
	case "text":
		return func(img *image.NRGBA) []image.Rectangle {
			rects, err := detection.Text(img, d.Language)
			if err != nil {
				slog.Warn("text detection failed", "error", err)
				return nil
			}
			return rects
		}
	default:
		return func(img *image.NRGBA) []image.Rectangle {
			return detection.Skin(img, d.MinArea)
		}
	}
}

type chain struct {
	filter imaging.Filter
	subdir string
}

func buildChains(specs []config.Chain) ([]chain, error) {
	chains := make([]chain, 0, len(specs))
	for _, s := range specs {
		f, err := buildFilter(s)
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain{filter: f, subdir: s.Subdir})
	}
	return chains, nil
}

func buildFilter(s config.Chain) (imaging.Filter, error) {
	switch s.Filter {
	case "gaussian":
		return filters.Gaussian(defaultRadius(s.Radius)), nil
	case "box":
		return filters.Box(defaultRadius(s.Radius)), nil
	case "median":
		return filters.Median(defaultRadius(s.Radius)), nil
	case "pixelate":
		block := s.Block
		if block == 0 {
			block = 12
		}
		return filters.Pixelate(block), nil
	case "grayscale":
		return filters.Grayscale(), nil
	case "sepia":
		return filters.Sepia(), nil
	case "duotone":
		return filters.Duotone(s.Shadow, s.Highlight)
	default:
		return nil, fmt.Errorf("unknown filter %q", s.Filter)
	}
}

func defaultRadius(r float64) float64 {
	if r <= 0 {
		return 16
	}
	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
