package icr

import (
	"math"

	"github.com/kmehta/boltgroup/internal/geom"
)

// Load-deformation curve constants (Crawford & Kulak): a fastener at
// normalized deformation delta carries the force fraction
// (1 - e^(-10*delta))^0.55, with the furthest fastener from the IC
// assigned the ultimate deformation 0.34.
const (
	deformationMax = 0.34
	curveStiffness = 10.0
	curveExponent  = 0.55
)

// Guards against near-zero divisors in the moment-arm and step-size
// computations.
const divisionEps = 1e-12

// Load is the applied shear resultant: its eccentricity from the
// pattern centroid and the pattern orientation relative to the load
// axis, in degrees.
type Load struct {
	Eccentricity float64
	Rotation     float64
}

// Options are the solver tuning constants. The divergence settings are
// empirical; they have no formal stability derivation and should be
// changed only against reference patterns.
type Options struct {
	// Tolerance is the force-imbalance threshold, per axis, below
	// which the trial IC is accepted.
	Tolerance float64

	// MaxIterations caps the IC search.
	MaxIterations int

	// DivergenceGrace is the number of iterations allowed before
	// imbalance growth aborts the search.
	DivergenceGrace int

	// DivergenceGrowth is the per-iteration imbalance growth factor
	// treated as divergence once the grace period has passed.
	DivergenceGrowth float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance:        1e-5,
		MaxIterations:    5000,
		DivergenceGrace:  50,
		DivergenceGrowth: 1.01,
	}
}

// Result is the solved group strength. Coefficient is only meaningful
// when Converged is true; on failure it is zero, never a partial value.
type Result struct {
	Coefficient float64
	Converged   bool
	Iterations  int
}

// IterationFunc observes one solver pass: the iteration number, the
// trial IC offset, and the residual force imbalance magnitude.
type IterationFunc func(iteration int, xRo, yRo, imbalance float64)

// Solve locates the instantaneous center of rotation for the pattern
// under the given load and returns the group coefficient, using the
// default options.
func Solve(p geom.Pattern, load Load) Result {
	return SolveWithOptions(p, load, DefaultOptions(), nil)
}

// SolveWithOptions is Solve with explicit tuning constants and an
// optional per-iteration observer. The pattern must be valid
// (Pattern.Validate); invalid geometry is a caller error and is not
// detected here.
func SolveWithOptions(p geom.Pattern, load Load, opts Options, observe IterationFunc) Result {
	pts := p.Positions(load.Rotation)
	n := float64(len(pts))

	// A rectangular grid is centrally symmetric, so the response to a
	// negative eccentricity mirrors the positive one.
	ecc := math.Abs(load.Eccentricity)

	// Concentric shear, a lone fastener, or a degenerate stack at the
	// centroid: no rotation develops, every fastener carries an equal
	// share at full capacity.
	if ecc == 0 || geom.PolarMoment(pts) == 0 {
		return Result{Coefficient: n, Converged: true}
	}

	var (
		xRo, yRo      float64
		prevImbalance = math.Inf(1)
		radii         = make([]float64, len(pts))
	)

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		rMax := 0.0
		for i, pt := range pts {
			r := math.Hypot(pt.X+xRo, pt.Y+yRo)
			radii[i] = r
			if r > rMax {
				rMax = r
			}
		}

		// Force fractions and equilibrium sums about the trial IC.
		// Fasteners at the IC itself (r = 0) neither strain nor carry
		// load and drop out of every sum.
		var rx, ry, m, j float64
		for i, pt := range pts {
			r := radii[i]
			if r <= 0 {
				continue
			}
			delta := deformationMax * r / rMax
			f := math.Pow(1-math.Exp(-curveStiffness*delta), curveExponent)

			dh := pt.X + xRo
			dv := pt.Y + yRo
			rx += f * dv / r
			ry += f * dh / r
			m += f * r
			j += r * r
		}

		// Implied load magnitude from moment equilibrium about the IC.
		ro := ecc + xRo
		pLoad := 0.0
		if math.Abs(ro) > divisionEps {
			pLoad = m / ro
		}

		uFy := pLoad - ry
		uFx := -rx
		imbalance := math.Hypot(uFy, uFx)

		if observe != nil {
			observe(iter, xRo, yRo, imbalance)
		}

		if math.Abs(uFy) <= opts.Tolerance && math.Abs(uFx) <= opts.Tolerance {
			return Result{Coefficient: pLoad, Converged: true, Iterations: iter}
		}

		if iter > opts.DivergenceGrace && imbalance > opts.DivergenceGrowth*prevImbalance {
			return Result{Iterations: iter}
		}
		prevImbalance = imbalance

		// Heuristic fixed-point correction, normalized by the polar
		// moment about the trial IC. Not a Newton step; divergence is
		// caught above rather than prevented here.
		step := 0.0
		if math.Abs(m) > divisionEps {
			step = j / (n * m)
		}
		xRo += uFy * step
		yRo += uFx * step
	}

	return Result{Iterations: opts.MaxIterations}
}
