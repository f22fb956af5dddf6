// Package render draws the boxes of an rtree with gonum/plot.
package render

import (
	"image/color"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"rtree/rtree"
)

// DefaultSize is the width and height of the saved image.
const DefaultSize = 8 * vg.Inch

var (
	recordColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	leafColor   = color.RGBA{G: 140, B: 60, A: 255}
	branchColor = color.RGBA{R: 20, G: 90, B: 200, A: 255}
)

// Plot builds a plot with one outline per record, leaf box and branch box.
// The horizontal axis runs left to right, the vertical one top to bottom.
func Plot(t *rtree.Tree) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = t.String()
	p.X.Label.Text = "left / right"
	p.Y.Label.Text = "top / bottom"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	height := t.Height()
	err := t.Walk(func(v rtree.NodeView) error {
		for _, rec := range v.Records {
			if err := addBox(p, rec.Rect, recordColor, 0.5); err != nil {
				return err
			}
		}
		c, w := leafColor, 1.0
		if v.Kind == rtree.KindBranch {
			// thicker outlines closer to the root
			c, w = branchColor, float64(height-v.Depth)
		}
		return addBox(p, v.BBox, c, w)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Save renders t to path. The format follows the file extension (png, svg,
// pdf, ...).
func Save(t *rtree.Tree, path string) error {
	p, err := Plot(t)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultSize, DefaultSize, path); err != nil {
		return errors.Wrapf(err, "save plot to %s", path)
	}
	return nil
}

func addBox(p *plot.Plot, r rtree.Rect, c color.Color, width float64) error {
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	})
	if err != nil {
		return errors.Wrapf(err, "outline %s", r)
	}
	poly.Color = nil
	poly.LineStyle.Color = c
	poly.LineStyle.Width = vg.Points(width)
	p.Add(poly)
	return nil
}
