package main

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/piyushplcr7/2DParametricBEM/src/convergence"
	"github.com/piyushplcr7/2DParametricBEM/src/logging"
)

// pointStyle returns a style that renders dots joined by a thin line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 1.5,
		StrokeColor: col,
		DotWidth:    4,
		DotColor:    col,
	}
}

// positiveSpan returns the min and max over the positive finite values of vs.
// ok is false when there are none (nothing to anchor a log axis on).
func positiveSpan(vs []float64) (lo, hi float64, ok bool) {
	lo = math.MaxFloat64
	hi = -math.MaxFloat64
	for _, v := range vs {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		ok = true
	}
	return lo, hi, ok
}

// logDecadeTicks builds ticks at powers of ten covering [min, max].
func logDecadeTicks(min, max float64) []chart.Tick {
	if !(min > 0) || !(max > 0) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if max < min {
		min, max = max, min
	}
	lo := math.Floor(math.Log10(min))
	hi := math.Ceil(math.Log10(max))
	if hi <= lo {
		hi = lo + 1
	}
	ticks := []chart.Tick{}
	for e := lo; e <= hi; e++ {
		v := math.Pow(10, e)
		ticks = append(ticks, chart.Tick{Value: v, Label: formatLogTick(v)})
		if len(ticks) > 12 {
			break
		}
	}
	return ticks
}

func formatLogTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// logAxisRange returns a decade-aligned logarithmic range and matching ticks
// for the given values. With no positive values the range is left for the
// renderer to derive and ticks are omitted.
func logAxisRange(vs []float64) (*chart.LogarithmicRange, []chart.Tick) {
	lo, hi, ok := positiveSpan(vs)
	if !ok {
		return &chart.LogarithmicRange{}, nil
	}
	ticks := logDecadeTicks(lo, hi)
	if len(ticks) < 2 {
		return &chart.LogarithmicRange{}, nil
	}
	return &chart.LogarithmicRange{
		Min: ticks[0].Value,
		Max: ticks[len(ticks)-1].Value,
	}, ticks
}

// buildSeriesChart assembles the log-log chart for one series. The raw table
// values are plotted as-is; non-positive samples are left to the logarithmic
// range's default handling.
func buildSeriesChart(s convergence.Series, cfg convergence.Config, w, h int) chart.Chart {
	xs := s.X
	ys := s.Y
	if len(xs) == 1 {
		// A single sample renders no visible span; duplicate it one octave out.
		xs = []float64{xs[0], xs[0] * 2}
		ys = []float64{ys[0], ys[0]}
	}
	xRange, xTicks := logAxisRange(xs)
	yRange, yTicks := logAxisRange(ys)
	ch := chart.Chart{
		Title:      s.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: cfg.XLabel, Range: xRange, Ticks: xTicks},
		YAxis:      chart.YAxis{Name: cfg.YLabel, Range: yRange, Ticks: yTicks},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: s.Title, XValues: xs, YValues: ys, Style: pointStyle(chart.ColorBlue)},
		},
	}
	return ch
}

// renderSeriesPNG renders one series to PNG bytes. Errors are returned to the
// caller; headless mode treats them as fatal.
func renderSeriesPNG(s convergence.Series, cfg convergence.Config, w, h int) ([]byte, error) {
	ch := buildSeriesChart(s, cfg, w, h)
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderSeriesImage renders one series for the viewer canvas, falling back to
// a blank image on render errors so the UI still updates visibly.
func renderSeriesImage(s convergence.Series, cfg convergence.Config, w, h int, hint string) image.Image {
	b, err := renderSeriesPNG(s, cfg, w, h)
	if err != nil {
		logging.Errorf("chart %q render error: %v; showing blank fallback", s.Title, err)
		return blank(w, h)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		logging.Errorf("chart %q decode error: %v; showing blank fallback", s.Title, err)
		return blank(w, h)
	}
	if hint != "" {
		return drawHint(img, hint)
	}
	return img
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}

// drawHint draws a small caption onto the image near the bottom-left.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
