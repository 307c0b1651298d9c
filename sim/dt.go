// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/cpmech/dynearthsol/material"
)

// dtCheckInterval is the cadence at which ComputeDt is re-evaluated:
// dt changes slowly relative to a step, so recomputing it every step
// would be wasted work.
const dtCheckInterval = 10

// ComputeDt derives the stability time step as the smallest of the
// elastic, thermal-diffusive, and viscous estimates, scaled by
// control.dt_fraction. Called once at Init and again every
// dtCheckInterval steps from the step loop.
func (v *Variables) ComputeDt() float64 {
	m, f := v.Mesh, v.Fields
	fraction := v.Cfg.Control.DtFraction
	if fraction <= 0 {
		fraction = 0.5
	}

	dtElastic := math.Inf(1)
	dtViscous := math.Inf(1)
	for e := range m.Connectivity {
		mat := f.Mat[e]
		k := v.Mat.BulkModulus(mat)
		g := v.Mat.ShearModulus(mat)
		kEff := k + 4.0/3.0*g
		massMin := elementMinNodeMass(m.Connectivity[e], f.Mass)
		if kEff > 0 && massMin > 0 {
			dtElastic = math.Min(dtElastic, math.Sqrt(massMin/kEff))
		}
		if v.Mat.Has(material.RhViscous) {
			srII := strainRateII(f.StrainRate[e], m.Ndim)
			eta := v.Mat.Visc(mat, avgTemperatureOf(m.Connectivity[e], f.Temperature), srII)
			if k > 0 && eta > 0 {
				dtViscous = math.Min(dtViscous, eta/k)
			}
		}
	}

	dtThermal := math.Inf(1)
	if v.Cfg.Control.HasThermalDiffusion {
		d := float64(m.Ndim)
		for e, vol := range f.Volume {
			kappa := v.representativeDiffusivityOf(f.Mat[e])
			if kappa <= 0 || vol <= 0 {
				continue
			}
			dtThermal = math.Min(dtThermal, math.Pow(vol, 2.0/d)/(2.0*d*kappa))
		}
	}

	dt := math.Min(dtElastic, math.Min(dtThermal, dtViscous))
	if math.IsInf(dt, 1) {
		return 0
	}
	return fraction * dt
}

func elementMinNodeMass(conn []int, mass []float64) float64 {
	m := math.Inf(1)
	for _, n := range conn {
		if mass[n] < m {
			m = mass[n]
		}
	}
	return m
}

// meanNormalStress averages only the normal Voigt components of sigma:
// {xx,yy} in 2D (sigma[2] is shear, not zz), {xx,yy,zz} in 3D.
func meanNormalStress(sigma []float64, ndim int) float64 {
	if ndim == 2 {
		return (sigma[0] + sigma[1]) / 2
	}
	return (sigma[0] + sigma[1] + sigma[2]) / 3
}

func avgTemperatureOf(conn []int, temperature []float64) float64 {
	sum := 0.0
	for _, n := range conn {
		sum += temperature[n]
	}
	return sum / float64(len(conn))
}

// strainRateII returns the second invariant (root mean square) of the
// deviatoric strain-rate Voigt vector. sr is {xx,yy,xy} in 2D (plane
// strain, zz implicitly zero) and {xx,yy,zz,xy,yz,zx} in 3D, matching
// computeStrainRate's own layout — sr[2] is shear in 2D, not a normal
// component, so it must never enter the trace/mean.
func strainRateII(sr []float64, ndim int) float64 {
	if ndim == 2 {
		mean := (sr[0] + sr[1]) / 3.0
		devXX := sr[0] - mean
		devYY := sr[1] - mean
		devZZ := -mean
		sum := devXX*devXX + devYY*devYY + devZZ*devZZ + 2*sr[2]*sr[2]
		return math.Sqrt(sum / 2.0)
	}
	trace := sr[0] + sr[1] + sr[2]
	mean := trace / 3.0
	sum := 0.0
	for i := 0; i < 3; i++ {
		dev := sr[i] - mean
		sum += dev * dev
	}
	sum += 2 * (sr[3]*sr[3] + sr[4]*sr[4] + sr[5]*sr[5])
	return math.Sqrt(sum / 2.0)
}

func (v *Variables) representativeDiffusivityOf(mat int) float64 {
	k := v.Mat.Conductivity(mat)
	rho := v.Mat.Rho(mat, 0)
	cp := v.Mat.HeatCapacity(mat)
	if rho <= 0 || cp <= 0 {
		return 0
	}
	kappa := k / (rho * cp)
	if v.Mat.ThermDiffMax > 0 && kappa > v.Mat.ThermDiffMax {
		return v.Mat.ThermDiffMax
	}
	return kappa
}
