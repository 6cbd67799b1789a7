package geom

import (
	"fmt"
	"math"
)

// Point is a fastener position relative to the pattern centroid.
type Point struct {
	X float64
	Y float64
}

// Pattern describes a rectangular bolt grid: Rows fasteners along the
// vertical axis at RowSpacing, Cols along the horizontal at ColSpacing.
type Pattern struct {
	Rows       int
	Cols       int
	RowSpacing float64
	ColSpacing float64
}

func NewPattern(rows, cols int, rowSpacing, colSpacing float64) (Pattern, error) {
	p := Pattern{Rows: rows, Cols: cols, RowSpacing: rowSpacing, ColSpacing: colSpacing}
	if err := p.Validate(); err != nil {
		return Pattern{}, err
	}
	return p, nil
}

func (p Pattern) Validate() error {
	if p.Rows < 1 {
		return fmt.Errorf("%w: rows = %d", ErrBadGrid, p.Rows)
	}
	if p.Cols < 1 {
		return fmt.Errorf("%w: cols = %d", ErrBadGrid, p.Cols)
	}
	if p.RowSpacing <= 0 {
		return fmt.Errorf("%w: row spacing = %g", ErrBadSpacing, p.RowSpacing)
	}
	if p.ColSpacing <= 0 {
		return fmt.Errorf("%w: col spacing = %g", ErrBadSpacing, p.ColSpacing)
	}
	return nil
}

func (p Pattern) Count() int {
	return p.Rows * p.Cols
}

// Positions returns the centroid-relative coordinates of every fastener,
// rotated by rotationDeg about the centroid. The centroid of the returned
// list is (0, 0) by construction.
func (p Pattern) Positions(rotationDeg float64) []Point {
	pts := make([]Point, 0, p.Count())

	// Grid offsets from the centroid: for k fasteners at spacing s the
	// extremes sit at ±(k-1)*s/2.
	x0 := -float64(p.Cols-1) * p.ColSpacing / 2
	y0 := -float64(p.Rows-1) * p.RowSpacing / 2

	for i := 0; i < p.Rows; i++ {
		for j := 0; j < p.Cols; j++ {
			pts = append(pts, Point{
				X: x0 + float64(j)*p.ColSpacing,
				Y: y0 + float64(i)*p.RowSpacing,
			})
		}
	}

	if rotationDeg != 0 {
		rad := rotationDeg * math.Pi / 180
		sin, cos := math.Sin(rad), math.Cos(rad)
		for k, pt := range pts {
			pts[k] = Point{
				X: pt.X*cos - pt.Y*sin,
				Y: pt.X*sin + pt.Y*cos,
			}
		}
	}

	return pts
}

// PolarMoment is the sum of squared distances from the centroid. Zero
// means a single fastener (or a degenerate stack at the centroid) and
// gates the solver's uniform-distribution fast path.
func PolarMoment(pts []Point) float64 {
	j := 0.0
	for _, pt := range pts {
		j += pt.X*pt.X + pt.Y*pt.Y
	}
	return j
}
