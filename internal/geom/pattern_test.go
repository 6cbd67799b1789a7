package geom

import (
	"errors"
	"math"
	"testing"
)

func TestPatternValidate(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		rowSp   float64
		colSp   float64
		wantErr error
	}{
		{"ok", 2, 3, 3.0, 3.0, nil},
		{"single", 1, 1, 1.0, 1.0, nil},
		{"zero rows", 0, 3, 3.0, 3.0, ErrBadGrid},
		{"negative cols", 2, -1, 3.0, 3.0, ErrBadGrid},
		{"zero row spacing", 2, 3, 0, 3.0, ErrBadSpacing},
		{"negative col spacing", 2, 3, 3.0, -2.0, ErrBadSpacing},
	}

	for _, tt := range tests {
		_, err := NewPattern(tt.rows, tt.cols, tt.rowSp, tt.colSp)
		if tt.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
		if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestPositionsCount(t *testing.T) {
	p := Pattern{Rows: 4, Cols: 3, RowSpacing: 3.0, ColSpacing: 5.5}
	pts := p.Positions(0)

	if len(pts) != 12 {
		t.Fatalf("expected 12 positions, got %d", len(pts))
	}
}

func TestPositionsCentroid(t *testing.T) {
	patterns := []Pattern{
		{Rows: 1, Cols: 1, RowSpacing: 1, ColSpacing: 1},
		{Rows: 2, Cols: 3, RowSpacing: 3, ColSpacing: 3},
		{Rows: 5, Cols: 2, RowSpacing: 2.5, ColSpacing: 4},
		{Rows: 7, Cols: 7, RowSpacing: 1.5, ColSpacing: 1.5},
	}

	for _, p := range patterns {
		for _, rot := range []float64{0, 30, 90, -45} {
			sumX, sumY := 0.0, 0.0
			for _, pt := range p.Positions(rot) {
				sumX += pt.X
				sumY += pt.Y
			}
			if math.Abs(sumX) > 1e-9 || math.Abs(sumY) > 1e-9 {
				t.Errorf("%dx%d rot %.0f: centroid not at origin (%.2e, %.2e)",
					p.Rows, p.Cols, rot, sumX, sumY)
			}
		}
	}
}

func TestPositionsSpacing(t *testing.T) {
	p := Pattern{Rows: 2, Cols: 2, RowSpacing: 3.0, ColSpacing: 6.0}
	pts := p.Positions(0)

	// Corners of a 6.0 x 3.0 rectangle centered at the origin.
	want := []Point{
		{-3.0, -1.5}, {3.0, -1.5},
		{-3.0, 1.5}, {3.0, 1.5},
	}

	for i, w := range want {
		if math.Abs(pts[i].X-w.X) > 1e-12 || math.Abs(pts[i].Y-w.Y) > 1e-12 {
			t.Errorf("position %d: got (%.4f, %.4f), want (%.4f, %.4f)",
				i, pts[i].X, pts[i].Y, w.X, w.Y)
		}
	}
}

func TestPositionsRotation(t *testing.T) {
	// A 1x2 pair 4.0 apart rotated 90 degrees should land on the y-axis.
	p := Pattern{Rows: 1, Cols: 2, RowSpacing: 1.0, ColSpacing: 4.0}
	pts := p.Positions(90)

	if math.Abs(pts[0].X) > 1e-12 || math.Abs(pts[0].Y+2.0) > 1e-12 {
		t.Errorf("expected (0, -2), got (%.4f, %.4f)", pts[0].X, pts[0].Y)
	}
	if math.Abs(pts[1].X) > 1e-12 || math.Abs(pts[1].Y-2.0) > 1e-12 {
		t.Errorf("expected (0, 2), got (%.4f, %.4f)", pts[1].X, pts[1].Y)
	}
}

func TestPolarMoment(t *testing.T) {
	single := Pattern{Rows: 1, Cols: 1, RowSpacing: 1, ColSpacing: 1}
	if j := PolarMoment(single.Positions(0)); j != 0 {
		t.Errorf("single fastener polar moment should be 0, got %f", j)
	}

	pair := Pattern{Rows: 1, Cols: 2, RowSpacing: 1, ColSpacing: 4.0}
	if j := PolarMoment(pair.Positions(0)); math.Abs(j-8.0) > 1e-12 {
		t.Errorf("pair polar moment should be 8.0, got %f", j)
	}
}

func TestPolarMomentRotationInvariant(t *testing.T) {
	p := Pattern{Rows: 3, Cols: 4, RowSpacing: 2.0, ColSpacing: 3.0}
	j0 := PolarMoment(p.Positions(0))

	for _, rot := range []float64{15, 45, 90, 180} {
		j := PolarMoment(p.Positions(rot))
		if math.Abs(j-j0) > 1e-9 {
			t.Errorf("polar moment changed under rotation %.0f: %f vs %f", rot, j, j0)
		}
	}
}
