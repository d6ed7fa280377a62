package main

import (
	"fmt"
	"image/color"
	"math"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Approximate gutters the chart renderer reserves around the plot area, in
// image pixel space. Background padding plus axis label space.
const (
	plotLeftPadPx  = float32(16 + 40)
	plotRightPadPx = float32(12)
)

// computeContainRect returns the drawn rectangle and scale of an image
// displayed contain-fit inside a view of the given size.
func computeContainRect(imgW, imgH, viewW, viewH float32) (drawX, drawY, drawW, drawH, scale float32) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0, viewW, viewH, 1
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	drawW = imgW * scale
	drawH = imgH * scale
	drawX = (viewW - drawW) / 2
	drawY = (viewH - drawH) / 2
	return
}

// xCentersLogMode computes overlay-space x positions for samples on a
// logarithmic x-axis, proportional to log10 of the order values.
func xCentersLogMode(xs []float64, imgW, imgH, viewW, viewH float32) []float32 {
	n := len(xs)
	if n == 0 {
		return nil
	}
	drawX, _, _, _, scale := computeContainRect(imgW, imgH, viewW, viewH)
	plotWImg := imgW - plotLeftPadPx - plotRightPadPx
	if plotWImg < 1 {
		plotWImg = imgW
	}
	lmin := math.MaxFloat64
	lmax := -math.MaxFloat64
	logs := make([]float64, n)
	for i, x := range xs {
		if x > 0 {
			logs[i] = math.Log10(x)
		} else {
			logs[i] = 0
		}
		if logs[i] < lmin {
			lmin = logs[i]
		}
		if logs[i] > lmax {
			lmax = logs[i]
		}
	}
	span := lmax - lmin
	px := make([]float32, n)
	for i := range xs {
		var fx float64
		if span > 0 {
			fx = (logs[i] - lmin) / span
		}
		pxImg := plotLeftPadPx + plotWImg*float32(fx)
		px[i] = drawX + pxImg*scale
	}
	return px
}

// nearestIndexFromCenters picks the sample index nearest to mouseX.
func nearestIndexFromCenters(centers []float32, mouseX float32) int {
	best := 0
	bestD := float32(math.MaxFloat32)
	for i, c := range centers {
		d := float32(math.Abs(float64(mouseX - c)))
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// crosshairOverlay draws a crosshair over one figure and labels the nearest
// sample with its (order, error) pair.
type crosshairOverlay struct {
	widget.BaseWidget
	state     *uiState
	seriesIdx int
	enabled   bool
	mouse     fyne.Position
	hovering  bool
}

func newCrosshairOverlay(state *uiState, seriesIdx int) *crosshairOverlay {
	c := &crosshairOverlay{state: state, seriesIdx: seriesIdx, enabled: state != nil && state.crosshairEnabled}
	c.ExtendBaseWidget(c)
	return c
}

func (c *crosshairOverlay) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{})
	lineV := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineV.StrokeWidth = 1.0
	lineH := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineH.StrokeWidth = 1.0
	label := widget.NewRichText()
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{A: 170})
	objs := []fyne.CanvasObject{bg, lineV, lineH, labelBG, label}
	return &crosshairRenderer{c: c, bg: bg, lineV: lineV, lineH: lineH, labelBG: labelBG, label: label, objs: objs}
}

type crosshairRenderer struct {
	c       *crosshairOverlay
	bg      *canvas.Rectangle
	lineV   *canvas.Line
	lineH   *canvas.Line
	labelBG *canvas.Rectangle
	label   *widget.RichText
	objs    []fyne.CanvasObject
}

func (r *crosshairRenderer) Destroy() {}

func (r *crosshairRenderer) hide() {
	r.lineV.Position1 = fyne.NewPos(-10, -10)
	r.lineV.Position2 = fyne.NewPos(-10, -10)
	r.lineH.Position1 = fyne.NewPos(-10, -10)
	r.lineH.Position2 = fyne.NewPos(-10, -10)
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *crosshairRenderer) Layout(size fyne.Size) {
	if r.c == nil {
		return
	}
	if r.bg != nil {
		r.bg.Resize(size)
		r.bg.Move(fyne.NewPos(0, 0))
	}
	if !r.c.enabled || !r.c.hovering {
		r.hide()
		return
	}
	x := r.c.mouse.X
	y := r.c.mouse.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > size.Width {
		x = size.Width
	}
	if y > size.Height {
		y = size.Height
	}

	st := r.c.state
	var s []float64
	var ys []float64
	if st != nil && r.c.seriesIdx < len(st.series) {
		s = st.series[r.c.seriesIdx].X
		ys = st.series[r.c.seriesIdx].Y
	}
	var imgW, imgH float32
	if st != nil && st.imgCanvases[r.c.seriesIdx] != nil && st.imgCanvases[r.c.seriesIdx].Image != nil {
		b := st.imgCanvases[r.c.seriesIdx].Image.Bounds()
		imgW = float32(b.Dx())
		imgH = float32(b.Dy())
	}
	if imgW <= 0 || imgH <= 0 {
		imgW, imgH = size.Width, size.Height
	}
	drawX, drawY, drawW, drawH, _ := computeContainRect(imgW, imgH, size.Width, size.Height)
	if !(x >= drawX && x <= drawX+drawW && y >= drawY && y <= drawY+drawH) {
		r.hide()
		return
	}

	r.lineV.Position1 = fyne.NewPos(x, 0)
	r.lineV.Position2 = fyne.NewPos(x, size.Height)
	r.lineH.Position1 = fyne.NewPos(0, y)
	r.lineH.Position2 = fyne.NewPos(size.Width, y)

	if len(s) > 0 {
		centers := xCentersLogMode(s, imgW, imgH, size.Width, size.Height)
		idx := nearestIndexFromCenters(centers, x)
		text := fmt.Sprintf("Order %g\nError %.4g", s[idx], ys[idx])
		r.label.Segments = []widget.RichTextSegment{&widget.TextSegment{Text: text}}
	} else {
		r.label.Segments = nil
	}
	r.label.Refresh()

	pad := float32(6)
	ts := r.label.MinSize()
	bgW := ts.Width + 2*pad
	bgH := ts.Height + 2*pad
	tx, ty := x+8, y+8
	if tx+bgW > size.Width {
		tx = size.Width - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	if len(r.label.Segments) == 0 {
		r.labelBG.Resize(fyne.NewSize(0, 0))
		r.labelBG.Move(fyne.NewPos(-1000, -1000))
		r.label.Move(fyne.NewPos(-1000, -1000))
	} else {
		r.labelBG.Resize(fyne.NewSize(bgW, bgH))
		r.labelBG.Move(fyne.NewPos(tx, ty))
		r.label.Move(fyne.NewPos(tx+pad, ty+pad))
	}
}

func (r *crosshairRenderer) MinSize() fyne.Size           { return fyne.NewSize(10, 10) }
func (r *crosshairRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *crosshairRenderer) Refresh() {
	r.Layout(r.c.Size())
	if r.bg != nil {
		r.bg.Refresh()
	}
	r.lineV.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineH.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineV.Refresh()
	r.lineH.Refresh()
	if r.labelBG != nil {
		r.labelBG.Refresh()
	}
	r.label.Refresh()
}

func (c *crosshairOverlay) MouseMoved(ev *desktop.MouseEvent) {
	if !c.enabled {
		return
	}
	c.hovering = true
	c.mouse = ev.Position
	c.Refresh()
}
func (c *crosshairOverlay) MouseIn(ev *desktop.MouseEvent) { c.hovering = true; c.Refresh() }
func (c *crosshairOverlay) MouseOut()                      { c.hovering = false; c.Refresh() }

var _ desktop.Hoverable = (*crosshairOverlay)(nil)
