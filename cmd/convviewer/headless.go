package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piyushplcr7/2DParametricBEM/src/convergence"
	"github.com/piyushplcr7/2DParametricBEM/src/logging"
	"github.com/piyushplcr7/2DParametricBEM/src/table"
)

// RunHeadlessMode renders both figures to PNG files under outDir without
// creating a UI window. w and h of 0 select the default figure size. Any
// load or render failure aborts with no partial output left behind beyond
// already-written figures.
func RunHeadlessMode(cfg convergence.Config, outDir string, w, h int) error {
	if w <= 0 || h <= 0 {
		w, h = chartSize(nil)
	}
	tab, err := table.Load(cfg.InputPath)
	if err != nil {
		return err
	}
	series, err := cfg.Series(tab)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	for _, s := range series {
		b, err := renderSeriesPNG(s, cfg, w, h)
		if err != nil {
			return fmt.Errorf("render %q: %w", s.Title, err)
		}
		outPath := filepath.Join(outDir, slugTitle(s.Title)+".png")
		if err := os.WriteFile(outPath, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		logging.Infof("wrote %s (%dx%d)", outPath, w, h)
	}
	return nil
}

// slugTitle turns a figure title into a file name stem: "Double layer" ->
// "double_layer".
func slugTitle(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
}
