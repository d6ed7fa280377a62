package main

import (
	"math"
	"testing"
)

func TestLogDecadeTicks_CoversSpan(t *testing.T) {
	ticks := logDecadeTicks(0.00097, 0.5)
	if len(ticks) == 0 {
		t.Fatalf("no ticks for a positive span")
	}
	if ticks[0].Value > 0.00097+1e-12 {
		t.Fatalf("first tick %v does not cover min 0.00097", ticks[0].Value)
	}
	last := ticks[len(ticks)-1].Value
	if last < 0.5 {
		t.Fatalf("last tick %v does not cover max 0.5", last)
	}
	// Ticks must be exact powers of ten, strictly increasing.
	for i, tk := range ticks {
		e := math.Log10(tk.Value)
		if math.Abs(e-math.Round(e)) > 1e-9 {
			t.Fatalf("tick %v is not a power of ten", tk.Value)
		}
		if i > 0 && tk.Value <= ticks[i-1].Value {
			t.Fatalf("ticks not increasing at %d", i)
		}
	}
}

func TestLogDecadeTicks_DegenerateSpan(t *testing.T) {
	// min == max still yields at least one decade.
	ticks := logDecadeTicks(10, 10)
	if len(ticks) < 2 {
		t.Fatalf("degenerate span: got %d ticks, want >= 2", len(ticks))
	}
}

func TestLogDecadeTicks_RejectsNonPositive(t *testing.T) {
	if ticks := logDecadeTicks(0, 1); ticks != nil {
		t.Fatalf("zero min should yield no ticks")
	}
	if ticks := logDecadeTicks(-1, 1); ticks != nil {
		t.Fatalf("negative min should yield no ticks")
	}
	if ticks := logDecadeTicks(math.Inf(1), math.Inf(1)); ticks != nil {
		t.Fatalf("infinite span should yield no ticks")
	}
}

func TestPositiveSpan_SkipsBadValues(t *testing.T) {
	lo, hi, ok := positiveSpan([]float64{-1, 0, math.NaN(), 0.25, 4, math.Inf(1)})
	if !ok {
		t.Fatalf("expected ok")
	}
	if lo != 0.25 || hi != 4 {
		t.Fatalf("got [%v,%v], want [0.25,4]", lo, hi)
	}
	if _, _, ok := positiveSpan([]float64{-1, 0, math.NaN()}); ok {
		t.Fatalf("no positive values must report !ok")
	}
}

func TestLogAxisRange_DecadeAligned(t *testing.T) {
	rng, ticks := logAxisRange([]float64{0.0156, 0.5})
	if len(ticks) < 2 {
		t.Fatalf("expected ticks, got %d", len(ticks))
	}
	if rng.Min != ticks[0].Value || rng.Max != ticks[len(ticks)-1].Value {
		t.Fatalf("range [%v,%v] not aligned with ticks [%v,%v]",
			rng.Min, rng.Max, ticks[0].Value, ticks[len(ticks)-1].Value)
	}
}

func TestLogAxisRange_NoPositiveValues(t *testing.T) {
	rng, ticks := logAxisRange([]float64{-1, 0})
	if ticks != nil {
		t.Fatalf("expected no ticks")
	}
	if !rng.IsZero() {
		t.Fatalf("expected an unset range for the renderer to derive")
	}
}

func TestFormatLogTick(t *testing.T) {
	cases := map[float64]string{
		1:     "1",
		10:    "10",
		0.001: "0.001",
		1e-05: "1e-05",
	}
	for v, want := range cases {
		if got := formatLogTick(v); got != want {
			t.Fatalf("formatLogTick(%v): got %q want %q", v, got, want)
		}
	}
}
