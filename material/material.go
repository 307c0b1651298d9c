// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material evaluates per-element constitutive parameters:
// density, elastic moduli, viscosity, conductivity, and the
// plasticity parameters derived from accumulated plastic strain. It is
// a table-driven value type rather than a class wrapping aliased field
// references: every method takes the values it needs as arguments
// instead of reaching into a shared Variables record.
package material

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Rheology bitmask constants.
const (
	RhElastic  = 1 << 0
	RhViscous  = 1 << 1
	RhPlastic  = 1 << 2
	RhPlastic2D = RhPlastic | 1<<3

	RhMaxwell = RhElastic | RhViscous
	RhEP      = RhElastic | RhPlastic
	RhEP2D    = RhElastic | RhPlastic2D
	RhEVP     = RhElastic | RhViscous | RhPlastic
	RhEVP2D   = RhElastic | RhViscous | RhPlastic2D
)

// Prop holds the constant parameters of a single material, one entry
// per `mat.nmat` region: density/thermal-expansion, elastic moduli,
// power-law viscosity, thermal properties, and the plastic-weakening
// endpoints (pls0-1/cohesion0-1/friction_angle0-1/dilation_angle0-1).
type Prop struct {
	Rho0  float64
	Alpha float64

	BulkModulus  float64
	ShearModulus float64

	ViscExponent         float64
	ViscCoefficient      float64
	ViscActivationEnergy float64

	HeatCapacity float64
	ThermCond    float64

	Pls0, Pls1                   float64
	Cohesion0, Cohesion1         float64
	FrictionAngle0, FrictionAngle1 float64
	DilationAngle0, DilationAngle1 float64
}

// Table is the whole-run material database plus the rheology bitmask
// and the global clamps that apply to every material (visc_min/max,
// tension_max).
type Table struct {
	RheolType     int
	Props         []Prop
	ViscMin       float64
	ViscMax       float64
	TensionMax    float64
	ThermDiffMax  float64

	GasConstant float64 // R in the Arrhenius law; defaults to 8.314 if zero
}

func (t *Table) r() float64 {
	if t.GasConstant == 0 {
		return 8.314
	}
	return t.GasConstant
}

// Has reports whether the run's rheology bitmask includes the given
// component (RhElastic, RhViscous, RhPlastic, or RhPlastic2D).
func (t *Table) Has(component int) bool {
	return t.RheolType&component == component
}

func (t *Table) prop(m int) *Prop {
	if m < 0 || m >= len(t.Props) {
		chk.Panic("material: material index %d out of range [0,%d)", m, len(t.Props))
	}
	return &t.Props[m]
}

// Rho returns ρ(e,T) = ρ0·(1 - α·T).
func (t *Table) Rho(m int, temperature float64) float64 {
	p := t.prop(m)
	return p.Rho0 * (1 - p.Alpha*temperature)
}

// BulkModulus returns K(e).
func (t *Table) BulkModulus(m int) float64 { return t.prop(m).BulkModulus }

// ShearModulus returns μ(e).
func (t *Table) ShearModulus(m int) float64 { return t.prop(m).ShearModulus }

// Visc returns η(e,T,ε̇_II) from the power-law Arrhenius relation,
// clamped to [ViscMin, ViscMax].
func (t *Table) Visc(m int, temperature, strainRateII float64) float64 {
	p := t.prop(m)
	n := p.ViscExponent
	if n == 0 {
		n = 1
	}
	strainRateII = math.Max(strainRateII, 1e-30)
	eta := p.ViscCoefficient * math.Pow(strainRateII, (1-n)/n) *
		math.Exp(p.ViscActivationEnergy/(n*t.r()*math.Max(temperature, 1e-3)))
	return clamp(eta, t.ViscMin, t.ViscMax)
}

// Conductivity returns k(e).
func (t *Table) Conductivity(m int) float64 { return t.prop(m).ThermCond }

// HeatCapacity returns c_p(e).
func (t *Table) HeatCapacity(m int) float64 { return t.prop(m).HeatCapacity }

// PlasticProps linearly interpolates cohesion, friction angle, and
// dilation angle between the material's 0/1 endpoints over accumulated
// plastic strain pls, then derives the Drucker-Prager/Mohr-Coulomb
// coefficients used by the constitutive update.
type PlasticProps struct {
	Cohesion       float64
	FrictionAngle  float64
	DilationAngle  float64
	Anphi          float64
	Anpsi          float64
	Amc            float64
	TenMax         float64
	Hardn          float64 // d(amc)/d(pls), the hardening slope used by return mapping
}

func (t *Table) PlasticProps(m int, pls float64) PlasticProps {
	p := t.prop(m)
	frac := clamp((pls-p.Pls0)/denomOr1(p.Pls1-p.Pls0), 0, 1)

	cohesion := lerp(p.Cohesion0, p.Cohesion1, frac)
	phi := lerp(p.FrictionAngle0, p.FrictionAngle1, frac)
	psi := lerp(p.DilationAngle0, p.DilationAngle1, frac)

	sinPhi, sinPsi := math.Sin(phi), math.Sin(psi)
	anphi := (1 + sinPhi) / denomOr1(1-sinPhi)
	anpsi := (1 + sinPsi) / denomOr1(1-sinPsi)
	amc := 2 * cohesion * math.Sqrt(anphi)

	tenMax := t.TensionMax
	if phi > 0 {
		tenMax = math.Min(t.TensionMax, cohesion/math.Tan(phi))
	}

	// hardening slope: d(amc)/d(pls) via the chain rule across the
	// linear cohesion/friction-angle ramps; zero outside [pls0,pls1].
	var hardn float64
	if pls > p.Pls0 && pls < p.Pls1 && p.Pls1 != p.Pls0 {
		dcdp := (p.Cohesion1 - p.Cohesion0) / (p.Pls1 - p.Pls0)
		dphidp := (p.FrictionAngle1 - p.FrictionAngle0) / (p.Pls1 - p.Pls0)
		dsinphidp := math.Cos(phi) * dphidp
		danphidp := 2 * dsinphidp / (denomOr1(1 - sinPhi) * denomOr1(1-sinPhi))
		hardn = 2 * math.Sqrt(anphi) * dcdp + cohesion*danphidp/denomOr1(math.Sqrt(anphi))
	}

	return PlasticProps{
		Cohesion: cohesion, FrictionAngle: phi, DilationAngle: psi,
		Anphi: anphi, Anpsi: anpsi, Amc: amc, TenMax: tenMax, Hardn: hardn,
	}
}

func lerp(a, b, frac float64) float64 { return a + (b-a)*frac }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func denomOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
