// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func testTable() *Table {
	return &Table{
		RheolType: RhEVP,
		ViscMin:   1e18,
		ViscMax:   1e24,
		TensionMax: 10e6,
		Props: []Prop{
			{
				Rho0: 2700, Alpha: 3e-5,
				BulkModulus: 5e10, ShearModulus: 3e10,
				ViscExponent: 3, ViscCoefficient: 1e-20, ViscActivationEnergy: 2e5,
				HeatCapacity: 1000, ThermCond: 2.5,
				Pls0: 0, Pls1: 0.5,
				Cohesion0: 40e6, Cohesion1: 4e6,
				FrictionAngle0: 0.6, FrictionAngle1: 0.1,
				DilationAngle0: 0.1, DilationAngle1: 0,
			},
		},
	}
}

func TestHasRheology(tst *testing.T) {
	chk.PrintTitle("HasRheology")

	t := testTable()
	if !t.Has(RhElastic) || !t.Has(RhViscous) || !t.Has(RhPlastic) {
		tst.Fatalf("expected elastic, viscous and plastic all set for RhEVP")
	}
	if t.Has(RhPlastic2D) {
		tst.Fatalf("RhEVP must not satisfy the 2D plastic bit")
	}
}

func TestRhoDecreasesWithTemperature(tst *testing.T) {
	chk.PrintTitle("RhoDecreasesWithTemperature")

	t := testTable()
	r0 := t.Rho(0, 0)
	r1 := t.Rho(0, 1000)
	if r1 >= r0 {
		tst.Fatalf("expected density to drop with temperature: rho(0)=%g rho(1000)=%g", r0, r1)
	}
}

func TestViscClamped(tst *testing.T) {
	chk.PrintTitle("ViscClamped")

	t := testTable()
	eta := t.Visc(0, 1500, 1e-15)
	if eta < t.ViscMin || eta > t.ViscMax {
		tst.Fatalf("viscosity %g outside [%g,%g]", eta, t.ViscMin, t.ViscMax)
	}
}

func TestPlasticPropsEndpoints(tst *testing.T) {
	chk.PrintTitle("PlasticPropsEndpoints")

	t := testTable()
	p0 := t.PlasticProps(0, 0)
	if math.Abs(p0.Cohesion-40e6) > 1e-6 {
		tst.Fatalf("expected cohesion at pls=0 to equal cohesion0, got %g", p0.Cohesion)
	}
	p1 := t.PlasticProps(0, 0.5)
	if math.Abs(p1.Cohesion-4e6) > 1e-6 {
		tst.Fatalf("expected cohesion at pls=pls1 to equal cohesion1, got %g", p1.Cohesion)
	}
	pBeyond := t.PlasticProps(0, 10)
	if math.Abs(pBeyond.Cohesion-p1.Cohesion) > 1e-6 {
		tst.Fatalf("expected clamping beyond pls1, got %g vs %g", pBeyond.Cohesion, p1.Cohesion)
	}
}

func TestAmcPositive(tst *testing.T) {
	chk.PrintTitle("AmcPositive")

	t := testTable()
	p := t.PlasticProps(0, 0.1)
	if p.Amc <= 0 || p.Anphi <= 1 {
		tst.Fatalf("expected positive amc and anphi>1, got amc=%g anphi=%g", p.Amc, p.Anphi)
	}
}
