package rtree

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrInvalidRect is returned when a rectangle is inverted or has NaN ordinates.
var ErrInvalidRect = errors.New("rtree: invalid rectangle")

// Rect is an axis-aligned rectangle. Top and Left are the smaller ordinates.
type Rect struct {
	Top, Left, Bottom, Right float64
}

// Record is the payload stored in leaves. Keys don't need to be unique.
type Record struct {
	Rect Rect
	Key  int
}

// emptyRect is the identity element for union.
func emptyRect() Rect {
	return Rect{
		Top:    math.Inf(+1),
		Left:   math.Inf(+1),
		Bottom: math.Inf(-1),
		Right:  math.Inf(-1),
	}
}

// Validate reports whether r can be stored in a tree.
func (r Rect) Validate() error {
	if math.IsNaN(r.Top) || math.IsNaN(r.Left) || math.IsNaN(r.Bottom) || math.IsNaN(r.Right) {
		return errors.Wrapf(ErrInvalidRect, "%s has NaN ordinates", r)
	}
	if r.Top > r.Bottom {
		return errors.Wrapf(ErrInvalidRect, "%s: top %v > bottom %v", r, r.Top, r.Bottom)
	}
	if r.Left > r.Right {
		return errors.Wrapf(ErrInvalidRect, "%s: left %v > right %v", r, r.Left, r.Right)
	}
	return nil
}

// Union gives the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Top:    math.Min(r.Top, o.Top),
		Left:   math.Min(r.Left, o.Left),
		Bottom: math.Max(r.Bottom, o.Bottom),
		Right:  math.Max(r.Right, o.Right),
	}
}

// Contains reports whether o lies inside r, borders included.
func (r Rect) Contains(o Rect) bool {
	return r.Top <= o.Top && r.Left <= o.Left && r.Bottom >= o.Bottom && r.Right >= o.Right
}

// Expansion returns how far the sides of r have to move outwards to enclose o.
// It sums the one-sided deltas of each side rather than comparing areas.
func (r Rect) Expansion(o Rect) float64 {
	var cost float64
	if r.Top > o.Top {
		cost += r.Top - o.Top
	}
	if o.Bottom > r.Bottom {
		cost += o.Bottom - r.Bottom
	}
	if r.Left > o.Left {
		cost += r.Left - o.Left
	}
	if o.Right > r.Right {
		cost += o.Right - r.Right
	}
	return cost
}

// Ordinates returns the rectangle as [top, left, bottom, right].
func (r Rect) Ordinates() [4]float64 {
	return [4]float64{r.Top, r.Left, r.Bottom, r.Right}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", r.Top, r.Left, r.Bottom, r.Right)
}
