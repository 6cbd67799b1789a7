// Package icr solves eccentrically loaded fastener groups by the
// instantaneous center of rotation method.
//
// A bolt group under eccentric shear is assumed to rotate as a rigid
// body about a point (the IC) at ultimate strength. Each fastener
// resists along the direction of its motion with a force given by an
// empirical load-deformation curve, scaled by its distance from the
// IC. The solver searches for the IC location at which the vector sum
// of the fastener forces balances the applied shear and moment, then
// reports the group coefficient C: the equivalent number of fasteners
// acting at full single-fastener capacity.
//
//	pattern, _ := geom.NewPattern(2, 3, 3.0, 3.0)
//	res := icr.Solve(pattern, icr.Load{Eccentricity: 6.0})
//	if res.Converged {
//	    nominal := res.Coefficient * singleBoltCapacity
//	}
//
// There is no closed-form IC location for a general pattern, so the
// search is a fixed-point iteration with explicit divergence
// detection. Non-convergence is an expected outcome for extreme
// geometries and is reported through Result.Converged, never as an
// error or a fabricated coefficient.
//
// Solve is a pure function of its inputs and safe to call from
// multiple goroutines.
package icr
