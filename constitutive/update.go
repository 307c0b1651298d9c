// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constitutive performs the per-element stress update: trial
// elastic increment, Maxwell viscous relaxation, Drucker-Prager/2D
// Mohr-Coulomb return mapping, and objective (Jaumann) stress
// rotation. The return-mapping style (trial stress via the p,q
// invariants, then a scalar correction) follows msolid.DruckerPrager.Update,
// generalized from a single fixed yield surface to the bitmask-selected
// rheology, and from gosl/tsr's general-dimension invariants to the
// NSTR=3 (2D) or NSTR=6 (3D) Voigt layout used throughout this module.
package constitutive

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/tsr"

	"github.com/cpmech/dynearthsol/material"
)

// Result carries the per-element outputs of one Update call, besides
// the mutated stress/plstrain arrays, for the driver to log or
// accumulate.
type Result struct {
	DeltaPlstrain float64
	Yielded       bool
}

// Update advances one element's stress by one time step in place.
//
//   ndim        2 or 3
//   rheol       the run's rheology bitmask (material.Rh*)
//   k, g        bulk and shear moduli
//   eta         viscosity (ignored unless RhViscous is set)
//   dt          time step
//   strainRate  NSTR-length Voigt strain-rate vector for this element
//   spin        antisymmetric velocity-gradient components used for
//               Jaumann rotation: W_xy (2D) or W_xy,W_yz,W_zx (3D)
//   pp          plasticity parameters for the element's current
//               accumulated plastic strain (material.PlasticProps)
//   sigma       NSTR-length Voigt stress vector, updated in place
//
// Returns the plastic-strain increment and whether the element
// yielded this step.
func Update(ndim, rheol int, k, g, eta, dt float64, strainRate []float64, spin []float64, pp material.PlasticProps, sigma []float64) Result {
	nstr := len(sigma)
	if nstr != 3 && nstr != 6 {
		chk.Panic("constitutive: sigma must have length 3 or 6, got %d", nstr)
	}

	// 1. trial elastic stress increment (Hooke's law in rate form).
	// im marks which Voigt slots are normal (trace-bearing) components:
	// {xx,yy,xy} in 2D, {xx,yy,zz,xy,yz,zx} in 3D — gosl/tsr.Im assumes
	// a 4- or 6-component layout with zz present, which does not match
	// this module's 3-component 2D convention, so it is reserved for
	// the nstr==6 path only (see meanStress below).
	im := voigtIm(nstr)
	trial := make([]float64, nstr)
	trEps := strainRate[0] + strainRate[1]
	if nstr == 6 {
		trEps += strainRate[2]
	}
	for i := 0; i < nstr; i++ {
		devRate := strainRate[i] - trEps*im[i]/3.0
		trial[i] = sigma[i] + dt*(k*trEps*im[i] + 2.0*g*devRate)
	}

	// 2. Maxwell viscous relaxation: scale the deviatoric part, mean
	// stress untouched.
	if rheol&material.RhViscous != 0 && eta > 0 {
		p := meanStress(trial, nstr)
		relax := 1.0 / (1.0 + dt*g/eta)
		copy(trial, relaxDeviator(trial, p, relax, im))
	}

	res := Result{}

	// 3. plastic correction.
	if (rheol&material.RhPlastic != 0 || rheol&material.RhPlastic2D != 0) && pp.Anphi > 0 {
		var dpls float64
		// Drucker-Prager's p,q invariants assume a 6-component 3D Voigt
		// layout (see meanStress); 2D always returns through the direct
		// principal-stress Mohr-Coulomb map regardless of which plastic
		// bit is set, per spec.md's glossary ("Mohr-Coulomb used in 2D
		// via rh_plastic2d").
		if ndim == 2 {
			dpls = returnMap2D(trial, pp)
		} else {
			dpls = returnMapDP(trial, pp)
		}
		if dpls > 0 {
			res.DeltaPlstrain = dpls
			res.Yielded = true
		}
	}

	// cap tensile pressure: mean stress (tension positive in σ1 sense
	// here, i.e. -p) may not exceed ten_max.
	p := meanStress(trial, nstr)
	meanTension := -p
	if meanTension > pp.TenMax {
		excess := meanTension - pp.TenMax
		for i, flag := range im {
			trial[i] -= excess * flag
		}
	}

	copy(sigma, trial)

	// 6. objective (Jaumann) rotation, elastic rheologies only, every step.
	if rheol&material.RhElastic != 0 {
		jaumannRotate(ndim, sigma, spin, dt)
	}

	return res
}

// voigtIm is this module's normal-component indicator vector for the
// Voigt layouts used throughout (see sim.computeStrainRate): {xx,yy,xy}
// in 2D (shear last, no zz), {xx,yy,zz,xy,yz,zx} in 3D. It intentionally
// does not delegate to gosl/tsr.Im, which is sized for gofem's own
// 4-or-6-component layouts (zz always present) and would misclassify
// this module's 2D shear slot as a normal component.
func voigtIm(nstr int) []float64 {
	if nstr == 3 {
		return []float64{1, 1, 0}
	}
	return []float64{1, 1, 1, 0, 0, 0}
}

// meanStress is -trace(sigma)/3 over the normal components marked by
// voigtIm, matching gosl/tsr.M_p's sign convention (compression
// positive p) for the nstr==6 layout, and generalized to nstr==3.
func meanStress(sigma []float64, nstr int) float64 {
	im := voigtIm(nstr)
	trace := 0.0
	for i, flag := range im {
		trace += sigma[i] * flag
	}
	return -trace / 3.0
}

// relaxDeviator rebuilds the stress vector as (relaxed deviator) +
// (original mean stress), i.e. Maxwell relaxation acts only on the
// deviatoric part step 2.
func relaxDeviator(trial []float64, p, relax float64, im []float64) []float64 {
	out := make([]float64, len(trial))
	for i := range trial {
		dev := trial[i] + p*im[i]
		out[i] = dev*relax - p*im[i]
	}
	return out
}

// returnMapDP performs a Drucker-Prager-style return map using the
// p,q stress invariants: F = q - anphi_eff*p - amc_eff, scaled from
// the σ1,σ3 form via the standard p,q/principal-stress relation.
// Grounded on msolid.DruckerPrager.Update's trial/correct structure
// (gosl/tsr's M_p, M_q, Im), generalized to this module's cohesion/
// friction-derived amc/anphi instead of a fixed M,qy0.
func returnMapDP(trial []float64, pp material.PlasticProps) (dpls float64) {
	p := tsr.M_p(trial)
	q := tsr.M_q(trial)

	// convert the σ1-anphi·σ3-amc criterion into an equivalent p,q
	// surface: F = q - Mp*p - amc_q, with Mp chosen so the criterion
	// matches along the compression meridian.
	mp := 6 * math.Sin(math.Atan((pp.Anphi-1)/(pp.Anphi+1))) / denomOr1(3-math.Sin(math.Atan((pp.Anphi-1)/(pp.Anphi+1))))
	amcQ := pp.Amc * denomOr1(math.Sqrt(3))

	f := q - mp*(-p) - amcQ
	if f <= 0 {
		return 0
	}

	hp := denomOr1(mp*mp + pp.Hardn)
	dgam := f / hp

	if q <= 1e-12 {
		return 0
	}
	scale := 1 - dgam*3.0/denomOr1(q)
	if scale < 0 {
		scale = 0
	}
	for i := 0; i < 3; i++ {
		dev := trial[i] + p*tsr.Im[i]
		trial[i] = dev*scale - (p-dgam*mp)*tsr.Im[i]
	}
	for i := 3; i < len(trial); i++ {
		trial[i] *= scale
	}
	return dgam
}

// returnMap2D performs the direct 2D Mohr-Coulomb return map on
// principal stresses: F = σ1 - anphi·σ3 - amc, flow governed by anpsi,
// where σ1 ≥ σ3 are the in-plane principal stresses of the NSTR=3
// Voigt vector {σxx, σyy, σxy}.
func returnMap2D(trial []float64, pp material.PlasticProps) (dpls float64) {
	sxx, syy, sxy := trial[0], trial[1], trial[2]
	center := (sxx + syy) / 2
	radius := math.Hypot((sxx-syy)/2, sxy)
	s1 := center + radius // most tensile
	s3 := center - radius // most compressive

	f := s1 - pp.Anphi*s3 - pp.Amc
	if f <= 0 || radius < 1e-12 {
		return 0
	}

	// flow direction from anpsi (non-associated unless anpsi==anphi).
	denom := denomOr1(1 + pp.Anpsi)
	ds1 := 1.0
	ds3 := -pp.Anpsi

	hp := denomOr1((ds1-pp.Anphi*ds3)/denom + pp.Hardn)
	dgam := f / hp

	s1New := s1 - dgam*ds1/denom
	s3New := s3 - dgam*ds3/denom

	// a return that would cross the hydrostatic axis (s1 < s3) lands on
	// the apex of the yield surface instead, where s1 == s3 and F == 0.
	if s1New < s3New {
		apex := pp.Amc / denomOr1(1-pp.Anphi)
		s1New, s3New = apex, apex
	}

	newCenter := (s1New + s3New) / 2
	newRadius := (s1New - s3New) / 2
	scale := newRadius / denomOr1(radius)

	trial[0] = newCenter + (sxx-center)*scale
	trial[1] = newCenter + (syy-center)*scale
	trial[2] = sxy * scale

	return dgam
}

// jaumannRotate applies the objective stress-rate rotation using the
// antisymmetric part of the velocity gradient (the spin tensor) over
// dt: σ ← σ + dt·(W·σ - σ·W).
func jaumannRotate(ndim int, sigma []float64, spin []float64, dt float64) {
	if len(spin) == 0 {
		return
	}
	if ndim == 2 {
		w := spin[0] // W_xy
		sxx, syy, sxy := sigma[0], sigma[1], sigma[2]
		sigma[0] = sxx + dt*2*w*sxy
		sigma[1] = syy - dt*2*w*sxy
		sigma[2] = sxy + dt*w*(syy-sxx)
		return
	}
	// 3D: spin = {Wxy, Wyz, Wzx}; sigma Voigt order {xx,yy,zz,xy,yz,zx}.
	wxy, wyz, wzx := spin[0], spin[1], spin[2]
	s := sigma
	nsxx := s[0] + dt*2*(wxy*s[3]-wzx*s[5])
	nsyy := s[1] + dt*2*(wyz*s[4]-wxy*s[3])
	nszz := s[2] + dt*2*(wzx*s[5]-wyz*s[4])
	nsxy := s[3] + dt*(wxy*(s[1]-s[0])+wyz*s[5]-wzx*s[4])
	nsyz := s[4] + dt*(wyz*(s[2]-s[1])+wzx*s[3]-wxy*s[5])
	nszx := s[5] + dt*(wzx*(s[0]-s[2])+wxy*s[4]-wyz*s[3])
	s[0], s[1], s[2], s[3], s[4], s[5] = nsxx, nsyy, nszz, nsxy, nsyz, nszx
}

func denomOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
