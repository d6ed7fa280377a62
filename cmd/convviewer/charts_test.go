package main

import (
	"bytes"
	"image"
	_ "image/png" // register PNG decoder
	"strings"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/piyushplcr7/2DParametricBEM/src/convergence"
	"github.com/piyushplcr7/2DParametricBEM/src/table"
)

const sampleInput = "1   0.5   0.25\n2   0.125 0.03125\n4   0.0156 0.00097\n"

func sampleSeries(t *testing.T) ([]convergence.Series, convergence.Config) {
	t.Helper()
	tab, err := table.Parse(strings.NewReader(sampleInput), "sample")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := convergence.DefaultConfig()
	series, err := cfg.Series(tab)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	return series, cfg
}

func TestBuildSeriesChart_PassesValuesThrough(t *testing.T) {
	series, cfg := sampleSeries(t)
	wantY := [][]float64{
		{0.5, 0.125, 0.0156},
		{0.25, 0.03125, 0.00097},
	}
	for i, s := range series {
		ch := buildSeriesChart(s, cfg, 1000, 340)
		if len(ch.Series) != 1 {
			t.Fatalf("figure %d: got %d series, want 1", i, len(ch.Series))
		}
		cs, ok := ch.Series[0].(chart.ContinuousSeries)
		if !ok {
			t.Fatalf("figure %d: expected ContinuousSeries, got %T", i, ch.Series[0])
		}
		wantX := []float64{1, 2, 4}
		for j := range wantX {
			if cs.XValues[j] != wantX[j] {
				t.Fatalf("figure %d x[%d]: got %v want %v", i, j, cs.XValues[j], wantX[j])
			}
			if cs.YValues[j] != wantY[i][j] {
				t.Fatalf("figure %d y[%d]: got %v want %v", i, j, cs.YValues[j], wantY[i][j])
			}
		}
	}
}

func TestBuildSeriesChart_LogAxesAndLabels(t *testing.T) {
	series, cfg := sampleSeries(t)
	ch := buildSeriesChart(series[0], cfg, 1000, 340)
	if ch.Title != "single layer" {
		t.Fatalf("title: got %q", ch.Title)
	}
	if ch.XAxis.Name != "Order" || ch.YAxis.Name != "Error" {
		t.Fatalf("axis names: got %q/%q", ch.XAxis.Name, ch.YAxis.Name)
	}
	if _, ok := ch.XAxis.Range.(*chart.LogarithmicRange); !ok {
		t.Fatalf("x-axis range is %T, want *chart.LogarithmicRange", ch.XAxis.Range)
	}
	if _, ok := ch.YAxis.Range.(*chart.LogarithmicRange); !ok {
		t.Fatalf("y-axis range is %T, want *chart.LogarithmicRange", ch.YAxis.Range)
	}

	ch2 := buildSeriesChart(series[1], cfg, 1000, 340)
	if ch2.Title != "Double layer" {
		t.Fatalf("second title: got %q", ch2.Title)
	}
}

func TestBuildSeriesChart_SinglePoint(t *testing.T) {
	cfg := convergence.DefaultConfig()
	s := convergence.Series{Title: "single layer", X: []float64{2}, Y: []float64{0.5}}
	ch := buildSeriesChart(s, cfg, 800, 320)
	cs := ch.Series[0].(chart.ContinuousSeries)
	if len(cs.XValues) != 2 || len(cs.YValues) != 2 {
		t.Fatalf("single sample should be duplicated: got %d/%d values", len(cs.XValues), len(cs.YValues))
	}
	if cs.YValues[0] != cs.YValues[1] {
		t.Fatalf("duplicated sample must keep the same error value")
	}
}

func TestRenderSeriesPNG_DecodableAtRequestedSize(t *testing.T) {
	series, cfg := sampleSeries(t)
	for _, s := range series {
		b, err := renderSeriesPNG(s, cfg, 900, 300)
		if err != nil {
			t.Fatalf("render %q: %v", s.Title, err)
		}
		img, format, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			t.Fatalf("decode %q: %v", s.Title, err)
		}
		if format != "png" {
			t.Fatalf("format: got %q want png", format)
		}
		if img.Bounds().Dx() != 900 || img.Bounds().Dy() != 300 {
			t.Fatalf("size: got %dx%d want 900x300", img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
}

func TestRenderSeriesImage_HintKeepsBounds(t *testing.T) {
	series, cfg := sampleSeries(t)
	img := renderSeriesImage(series[0], cfg, 800, 320, "Hint: test caption")
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 320 {
		t.Fatalf("hint overlay changed bounds: %v", img.Bounds())
	}
}

func TestBlank_Size(t *testing.T) {
	img := blank(120, 40)
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 40 {
		t.Fatalf("blank size: %v", img.Bounds())
	}
}
