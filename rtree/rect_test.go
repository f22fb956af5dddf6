package rtree

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestExpansion(t *testing.T) {
	box := Rect{0, 0, 10, 10}
	tests := []struct {
		r    Rect
		want float64
	}{
		{Rect{2, 2, 3, 3}, 0},
		{Rect{0, 0, 10, 10}, 0},
		{Rect{-1, 5, 12, 15}, 8},
		{Rect{-3, -4, 1, 1}, 7},
		{Rect{20, 20, 21, 21}, 22},
		{Rect{5, 5, 5, 11}, 1},
	}
	for _, tt := range tests {
		if got := box.Expansion(tt.r); got != tt.want {
			t.Errorf("%s.Expansion(%s) = %v, want %v", box, tt.r, got, tt.want)
		}
	}
}

func TestUnion(t *testing.T) {
	a, b := Rect{0, 5, 2, 6}, Rect{-1, 7, 1, 9}
	want := Rect{-1, 5, 2, 9}
	if got := a.Union(b); got != want {
		t.Errorf("union %s", got)
	}
	if got := emptyRect().Union(a); got != a {
		t.Errorf("empty rect is not the union identity: %s", got)
	}
	if !want.Contains(a) || !want.Contains(b) || a.Contains(want) {
		t.Error("contains")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		r  Rect
		ok bool
	}{
		{Rect{0, 0, 0, 0}, true},
		{Rect{-5, -5, 5, 5}, true},
		{Rect{1, 0, 0, 1}, false},
		{Rect{0, 1, 1, 0}, false},
		{Rect{0, 0, math.NaN(), 1}, false},
		{Rect{math.Inf(-1), 0, math.Inf(1), 1}, true},
	}
	for _, tt := range tests {
		err := tt.r.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.r, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidRect) {
			t.Errorf("%s: got %v, want ErrInvalidRect", tt.r, err)
		}
	}
}
