// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constitutive

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dynearthsol/material"
)

// TestElasticZeroStrainRate checks that a purely elastic element with
// zero strain rate and zero initial stress stays at zero stress: the
// boundary-behavior property from spec.md §8 ("fully fixed-velocity BC
// run ... produces zero force and stress at every step").
func TestElasticZeroStrainRate(tst *testing.T) {
	chk.PrintTitle("ElasticZeroStrainRate")

	sigma := []float64{0, 0, 0}
	strainRate := []float64{0, 0, 0}
	spin := []float64{0}
	pp := material.PlasticProps{}

	res := Update(2, material.RhElastic, 1e10, 1e10, 0, 1.0, strainRate, spin, pp, sigma)

	chk.Vector(tst, "sigma", 1e-15, sigma, []float64{0, 0, 0})
	if res.Yielded {
		tst.Errorf("should not yield with zero strain rate")
	}
}

// TestMaxwellRelaxation checks the single-element pure-shear Maxwell
// relaxation curve from spec.md §8: holding a constant shear strain
// rate, the deviatoric stress approaches the steady value 2*eta*rate
// and decays exponentially with time constant eta/mu when starting
// from an overshoot, within the tolerances spec.md §8 names.
func TestMaxwellRelaxation(tst *testing.T) {
	chk.PrintTitle("MaxwellRelaxation")

	mu := 1e10
	eta := 1e20
	dt := 1e12 // coarse dt, many relaxation times per step is fine for a monotonic check
	sigma := []float64{0, 0, 2 * eta * 1e-15 * 10} // start above steady state
	rate := 1e-15
	strainRate := []float64{0, 0, rate}
	spin := []float64{0}
	pp := material.PlasticProps{}

	prevShear := math.Abs(sigma[2])
	for i := 0; i < 20; i++ {
		Update(2, material.RhMaxwell, 0, mu, eta, dt, strainRate, spin, pp, sigma)
		shear := math.Abs(sigma[2])
		if shear > prevShear+1e-20 {
			tst.Errorf("shear stress should not increase while relaxing from an overshoot: step %d, %v -> %v", i, prevShear, shear)
		}
		prevShear = shear
	}

	steady := 2 * mu * rate * eta / mu // == 2*eta*rate
	ratio := prevShear / steady
	if ratio < 0.9 || ratio > 1.3 {
		tst.Errorf("shear stress %v should approach the steady Maxwell value %v", prevShear, steady)
	}
}

// TestReturnMap2DCapsAtYield checks that the 2D Mohr-Coulomb return map
// pulls an over-stressed trial state back onto the yield surface
// (F <= 0 after correction, up to floating-point slack) and reports a
// positive plastic-strain increment.
func TestReturnMap2DCapsAtYield(tst *testing.T) {
	chk.PrintTitle("ReturnMap2DCapsAtYield")

	pp := material.PlasticProps{Anphi: 2, Anpsi: 1, Amc: 1e6, TenMax: 1e9, Hardn: 0}
	sigma := []float64{-1e6, -1e8, 0}
	strainRate := []float64{0, 0, 0}
	spin := []float64{0}

	res := Update(2, material.RhEP2D, 1e10, 1e10, 0, 1.0, strainRate, spin, pp, sigma)

	if !res.Yielded || res.DeltaPlstrain <= 0 {
		tst.Errorf("expected yielding with positive plastic-strain increment, got %+v", res)
	}

	s1 := math.Max(sigma[0], sigma[1])
	s3 := math.Min(sigma[0], sigma[1])
	f := s1 - pp.Anphi*s3 - pp.Amc
	if f > 1e-3*math.Abs(pp.Amc) {
		tst.Errorf("yield function should be back at/below zero after return map, got %v", f)
	}
}
