// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestStrainRateIIPureShear2D guards against folding the 2D Voigt
// shear slot into the trace: a pure-shear state {0,0,rate} must give
// back exactly rate, not sqrt(4/3)*rate.
func TestStrainRateIIPureShear2D(tst *testing.T) {
	chk.PrintTitle("StrainRateIIPureShear2D")

	rate := 3.5e-15
	sr := []float64{0, 0, rate}
	got := strainRateII(sr, 2)
	if math.Abs(got-rate) > 1e-9*rate {
		tst.Errorf("strainRateII(pure shear) = %v, want %v", got, rate)
	}
}

// TestStrainRateIIPureShear3D mirrors the 2D case for the 3D layout.
func TestStrainRateIIPureShear3D(tst *testing.T) {
	chk.PrintTitle("StrainRateIIPureShear3D")

	rate := 2e-15
	sr := []float64{0, 0, 0, rate, 0, 0}
	got := strainRateII(sr, 3)
	if math.Abs(got-rate) > 1e-9*rate {
		tst.Errorf("strainRateII(pure shear) = %v, want %v", got, rate)
	}
}
