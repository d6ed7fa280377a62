// Command convviewer displays the convergence data written by the BEM test
// drivers: two log-log figures of error against quadrature order, one for
// the single-layer series and one for the double-layer series.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	png "image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/piyushplcr7/2DParametricBEM/src/convergence"
	"github.com/piyushplcr7/2DParametricBEM/src/logging"
	"github.com/piyushplcr7/2DParametricBEM/src/table"
)

// ErrDisplayUnavailable is returned when no display surface can be used for
// the viewer window. It is never recovered; the run aborts.
var ErrDisplayUnavailable = errors.New("no usable display surface")

// checkDisplay verifies a display surface exists before fyne tries to
// initialize one (fyne aborts the process on driver failure, so probe first).
func checkDisplay() error {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("%w: DISPLAY and WAYLAND_DISPLAY are unset (use -headless -out DIR to render to files)", ErrDisplayUnavailable)
		}
	}
	return nil
}

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    convergence.Config

	tab    *table.Table
	series []convergence.Series

	// one canvas and crosshair overlay per figure
	imgCanvases [2]*canvas.Image
	overlays    [2]*crosshairOverlay

	crosshairEnabled bool
	showHints        bool
}

func main() {
	var fileFlag string
	var headless bool
	var outDir string
	var logLevel string
	flag.StringVar(&fileFlag, "file", "", "Path to convergence.txt")
	flag.BoolVar(&headless, "headless", false, "Render figures to PNG files instead of opening a window")
	flag.StringVar(&outDir, "out", "figures", "Output directory for -headless")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	logging.SetLevel(logLevel)

	cfg := convergence.DefaultConfig()
	if fileFlag != "" {
		cfg.InputPath = fileFlag
	}

	if headless {
		if err := RunHeadlessMode(cfg, outDir, 0, 0); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := checkDisplay(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	a := app.NewWithID("com.parametricbem.convviewer")
	w := a.NewWindow("Convergence Viewer")
	w.Resize(fyne.NewSize(1000, 800))

	state := &uiState{app: a, window: w, cfg: cfg}
	state.crosshairEnabled = a.Preferences().BoolWithFallback("crosshair", false)
	state.showHints = a.Preferences().BoolWithFallback("showHints", false)
	if fileFlag == "" {
		if f := a.Preferences().StringWithFallback("lastFile", ""); f != "" {
			state.cfg.InputPath = f
		}
	}

	fileLabel := widget.NewLabel(truncatePath(state.cfg.InputPath, 60))

	crosshairChk := widget.NewCheck("Crosshair", nil)
	crosshairChk.SetChecked(state.crosshairEnabled)
	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.SetChecked(state.showHints)

	// chart placeholders
	for i := range state.imgCanvases {
		c := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
		c.FillMode = canvas.ImageFillContain
		c.SetMinSize(fyne.NewSize(900, 320))
		state.imgCanvases[i] = c
		state.overlays[i] = newCrosshairOverlay(state, i)
	}

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state, fileLabel) }),
		widget.NewButton("Reload", func() { loadAll(state, fileLabel) }),
		crosshairChk, hintsChk,
		widget.NewLabel("File:"), fileLabel,
	)
	chartsColumn := container.NewVBox(
		container.NewStack(state.imgCanvases[0], state.overlays[0]),
		widget.NewSeparator(),
		container.NewStack(state.imgCanvases[1], state.overlays[1]),
	)
	chartsScroll := container.NewVScroll(chartsColumn)
	chartsScroll.SetMinSize(fyne.NewSize(900, 680))
	w.SetContent(container.NewBorder(top, nil, nil, nil, chartsScroll))

	// Redraw charts on window resize so they scale with width.
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					if curW := int(c.Size().Width); curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawCharts(state) })
					}
				}
			}
		}()
	}

	crosshairChk.OnChanged = func(b bool) {
		state.crosshairEnabled = b
		savePrefs(state)
		for _, ov := range state.overlays {
			if ov != nil {
				ov.enabled = b
				ov.Refresh()
			}
		}
	}
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawCharts(state)
	}

	buildMenus(state, fileLabel)

	// The initial load is fatal: a missing or malformed input aborts the run
	// before any figure is presented. Re-loads from the UI report via dialog.
	if err := loadAll(state, fileLabel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	w.ShowAndRun()
}

func buildMenus(state *uiState, fileLabel *widget.Label) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			state.cfg.InputPath = f
			fileLabel.SetText(truncatePath(f, 60))
			savePrefs(state)
			reload(state, fileLabel)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state, fileLabel) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state, fileLabel) }),
		fyne.NewMenuItem("Reload", func() { reload(state, fileLabel) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export single layer PNG…", func() { exportChartPNG(state, state.imgCanvases[0], "single_layer.png") }),
		fyne.NewMenuItem("Export Double layer PNG…", func() { exportChartPNG(state, state.imgCanvases[1], "double_layer.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { reload(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { reload(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openFileDialog(state *uiState, fileLabel *widget.Label) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.cfg.InputPath = rc.URI().Path()
		fileLabel.SetText(truncatePath(state.cfg.InputPath, 60))
		addRecentFile(state, state.cfg.InputPath)
		savePrefs(state)
		reload(state, fileLabel)
	}, state.window)
	d.Show()
}

// reload is the interactive variant of loadAll: failures report via dialog
// instead of aborting the run.
func reload(state *uiState, fileLabel *widget.Label) {
	if err := loadAll(state, fileLabel); err != nil {
		dialog.ShowError(err, state.window)
	}
}

// loadAll reads the input table, extracts both series and redraws.
func loadAll(state *uiState, fileLabel *widget.Label) error {
	defer logging.TimeTrack(time.Now(), "loadAll")
	tab, err := table.Load(state.cfg.InputPath)
	if err != nil {
		return err
	}
	series, err := state.cfg.Series(tab)
	if err != nil {
		return err
	}
	state.tab = tab
	state.series = series
	logging.Infof("loaded %s: %d rows, %d columns", state.cfg.InputPath, tab.Rows(), tab.Cols())
	if fileLabel != nil {
		fileLabel.SetText(truncatePath(state.cfg.InputPath, 60))
	}
	redrawCharts(state)
	return nil
}

func redrawCharts(state *uiState) {
	if len(state.series) != 2 {
		return
	}
	cw, chh := chartSize(state)
	for i, s := range state.series {
		hint := ""
		if state.showHints {
			hint = seriesHint(i)
		}
		img := renderSeriesImage(s, state.cfg, cw, chh, hint)
		if c := state.imgCanvases[i]; c != nil {
			c.Image = img
			c.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
			c.Refresh()
		}
		if ov := state.overlays[i]; ov != nil {
			ov.Refresh()
		}
	}
}

func seriesHint(i int) string {
	if i == 0 {
		return "Hint: straight lines on a log-log plot indicate algebraic convergence."
	}
	return "Hint: a steepening slope suggests super-algebraic (exponential) convergence."
}

// chartSize computes a chart size from the current window width so figures
// use the available X-axis space.
func chartSize(state *uiState) (int, int) {
	if state == nil || state.window == nil || state.window.Canvas() == nil {
		return 1000, 340
	}
	sz := state.window.Canvas().Size()
	w := int(sz.Width*0.95) - 12
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil || img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		_ = png.Encode(wc, img.Image)
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	prefs := state.app.Preferences()
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	prefs.SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.cfg.InputPath)
	prefs.SetBool("crosshair", state.crosshairEnabled)
	prefs.SetBool("showHints", state.showHints)
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
