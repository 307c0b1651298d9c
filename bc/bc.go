// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bc implements the per-face velocity and thermal boundary
// conditions: a direct overwrite of the constrained velocity
// components on each of the (up to) six domain faces, plus Dirichlet
// surface/mantle temperature. This is deliberately simpler than a
// Lagrange-multiplier essential-BC machinery built for an implicit
// solve: an explicit scheme only ever overwrites already-computed
// nodal values, so boundary identification (Key) and value application
// (Eqs) stay separate concerns but the matrix machinery is dropped.
package bc

import "github.com/cpmech/gosl/chk"

// Kind enumerates the per-face, per-component velocity constraint
// codes (`vbc_{x0,x1,...}`).
type Kind int

const (
	Free        Kind = iota // component left untouched
	Fixed                   // component held at 0
	Prescribed              // component overwritten with a constant rate
)

// Face names, matching mesh.Faces order (X0,X1,Y0,Y1,Z0,Z1).
const (
	X0 = iota
	X1
	Y0
	Y1
	Z0
	Z1
)

// FaceBC holds the velocity constraint for one domain face: one Kind
// per component (Ndim of them) and, for Prescribed components, the
// value to overwrite with.
type FaceBC struct {
	Component [3]Kind
	Value     [3]float64
}

// Set collects every face's velocity BC plus the thermal BC values,
// and the Winkler/water-loading options that share the same per-face
// structure.
type Set struct {
	Ndim int
	Face [6]FaceBC

	SurfaceTemperature float64
	MantleTemperature  float64

	HasWrinklerFoundation bool
	WrinklerDeltaRho      float64
	HasWaterLoading       bool
}

// MaxVbcVal returns the maximum magnitude of every Prescribed value
// across all faces/components — the `find_max_vbc` fallback used when
// `control.characteristic_speed == 0`.
func (s *Set) MaxVbcVal() float64 {
	max := 0.0
	for _, f := range s.Face {
		for c := 0; c < s.Ndim; c++ {
			if f.Component[c] == Prescribed {
				v := f.Value[c]
				if v < 0 {
					v = -v
				}
				if v > max {
					max = v
				}
			}
		}
	}
	return max
}

// Apply overwrites vel[n] for every node on a constrained face,
// `apply_vbcs`: Fixed zeroes the component, Prescribed
// sets it to the face's constant rate, Free leaves it as computed by
// the dynamics update. bnodes[f] lists the nodes on face f (mesh.Bnodes).
func (s *Set) Apply(bnodes [6][]int, vel [][]float64) {
	for f := 0; f < 6; f++ {
		face := s.Face[f]
		for _, n := range bnodes[f] {
			for c := 0; c < s.Ndim; c++ {
				switch face.Component[c] {
				case Fixed:
					vel[n][c] = 0
				case Prescribed:
					vel[n][c] = face.Value[c]
				}
			}
		}
	}
}

// ApplyThermal overwrites temperature[n] at the top (Z1 in 3D, Y1 in
// 2D) and bottom (Z0/Y0) faces with the Dirichlet surface/mantle values.
func (s *Set) ApplyThermal(bnodes [6][]int, temperature []float64) {
	top, bottom := Y1, Y0
	if s.Ndim == 3 {
		top, bottom = Z1, Z0
	}
	for _, n := range bnodes[top] {
		temperature[n] = s.SurfaceTemperature
	}
	for _, n := range bnodes[bottom] {
		temperature[n] = s.MantleTemperature
	}
}

// ParseKind maps the integer vbc_* config codes onto Kind:
// 0 = free, 1 = fixed, 2 = prescribed.
func ParseKind(code int) Kind {
	switch code {
	case 0:
		return Free
	case 1:
		return Fixed
	case 2:
		return Prescribed
	}
	chk.Panic("bc: unknown vbc code %d", code)
	return Free
}
