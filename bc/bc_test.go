// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bc

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestParseKind(tst *testing.T) {
	chk.PrintTitle("ParseKind")

	if ParseKind(0) != Free {
		tst.Errorf("code 0 should map to Free")
	}
	if ParseKind(1) != Fixed {
		tst.Errorf("code 1 should map to Fixed")
	}
	if ParseKind(2) != Prescribed {
		tst.Errorf("code 2 should map to Prescribed")
	}
}

func TestApply(tst *testing.T) {
	chk.PrintTitle("Apply")

	s := &Set{Ndim: 2}
	s.Face[X0].Component[0] = Fixed
	s.Face[X1].Component[0] = Prescribed
	s.Face[X1].Value[0] = 1e-9

	bnodes := [6][]int{
		X0: {0, 1},
		X1: {2, 3},
	}
	vel := [][]float64{
		{5, 5}, {5, 5}, {5, 5}, {5, 5},
	}
	s.Apply(bnodes, vel)

	chk.Vector(tst, "vel[0]", 1e-15, vel[0], []float64{0, 5})
	chk.Vector(tst, "vel[1]", 1e-15, vel[1], []float64{0, 5})
	chk.Vector(tst, "vel[2]", 1e-15, vel[2], []float64{1e-9, 5})
	chk.Vector(tst, "vel[3]", 1e-15, vel[3], []float64{1e-9, 5})
}

func TestMaxVbcVal(tst *testing.T) {
	chk.PrintTitle("MaxVbcVal")

	s := &Set{Ndim: 2}
	s.Face[X0].Component[0] = Prescribed
	s.Face[X0].Value[0] = -3.0
	s.Face[Y1].Component[1] = Prescribed
	s.Face[Y1].Value[1] = 2.0

	chk.Scalar(tst, "max_vbc_val", 1e-15, s.MaxVbcVal(), 3.0)
}

func TestApplyThermal(tst *testing.T) {
	chk.PrintTitle("ApplyThermal")

	s := &Set{Ndim: 2, SurfaceTemperature: 0, MantleTemperature: 1300}
	bnodes := [6][]int{
		Y1: {0},
		Y0: {1},
	}
	temperature := []float64{999, 999}
	s.ApplyThermal(bnodes, temperature)

	chk.Scalar(tst, "surface", 1e-15, temperature[0], 0)
	chk.Scalar(tst, "mantle", 1e-15, temperature[1], 1300)
}
