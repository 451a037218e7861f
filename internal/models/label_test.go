package models

import (
	"math"
	"testing"
)

func TestLabelFor(t *testing.T) {
	cases := []struct {
		raw  float64
		want Label
	}{
		{1, LabelMature},
		{0, LabelImmature},
		{2, LabelImmature},
		{0.99, LabelImmature},
		{-1, LabelImmature},
		{math.NaN(), LabelImmature},
	}
	for _, c := range cases {
		if got := LabelFor(c.raw); got != c.want {
			t.Fatalf("LabelFor(%v) = %q; want %q", c.raw, got, c.want)
		}
	}
}

func TestFeatures_Float32KeepsOrder(t *testing.T) {
	f := Features{100, 150, 50, 25, 60}
	got := f.Float32()
	want := []float32{100, 150, 50, 25, 60}
	if len(got) != len(want) {
		t.Fatalf("len=%d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}
