// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/cpmech/dynearthsol/field"

// averagedFields accumulates a running sum of the output fields
// between averaged-output frames. When `sim.output_averaged_fields`
// is a nonzero N, a frame is emitted every N steps holding the mean
// over those N steps instead of the instantaneous snapshot taken by
// the ordinary interval-gated output.
type averagedFields struct {
	count int

	vel         [][]float64
	stress      [][]float64
	strainRate  [][]float64
	temperature []float64
	plstrain    []float64
}

// newAveragedFields allocates running sums sized to match f.
func newAveragedFields(f *field.Fields) *averagedFields {
	return &averagedFields{
		vel:         zero2(f.Nnode, f.Ndim),
		stress:      zero2(f.Nelem, f.Nstr),
		strainRate:  zero2(f.Nelem, f.Nstr),
		temperature: make([]float64, f.Nnode),
		plstrain:    make([]float64, f.Nelem),
	}
}

func zero2(n, m int) [][]float64 {
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, m)
	}
	return a
}

// accumulate adds one step's fields into the running sum.
func (a *averagedFields) accumulate(f *field.Fields) {
	for n := range a.vel {
		for c := range a.vel[n] {
			a.vel[n][c] += f.Vel[n][c]
		}
		a.temperature[n] += f.Temperature[n]
	}
	for e := range a.stress {
		for k := range a.stress[e] {
			a.stress[e][k] += f.Stress[e][k]
			a.strainRate[e][k] += f.StrainRate[e][k]
		}
		a.plstrain[e] += f.Plstrain[e]
	}
	a.count++
}

// ready reports whether a full averaging window has elapsed.
func (a *averagedFields) ready(window int) bool {
	return window > 0 && a.count >= window
}

// snapshot divides every running sum by the step count, returning a
// Fields-shaped set of means, and resets the accumulator for the next
// window. Non-averaged fields (Mass, Mat, Volume, ...) are left to the
// caller, who reads them directly off the live Fields.
func (a *averagedFields) snapshot() (vel, stress, strainRate [][]float64, temperature, plstrain []float64) {
	n := float64(a.count)
	vel = scaled2(a.vel, 1/n)
	stress = scaled2(a.stress, 1/n)
	strainRate = scaled2(a.strainRate, 1/n)
	temperature = scaled1(a.temperature, 1/n)
	plstrain = scaled1(a.plstrain, 1/n)

	for i := range a.vel {
		for c := range a.vel[i] {
			a.vel[i][c] = 0
		}
		a.temperature[i] = 0
	}
	for e := range a.stress {
		for k := range a.stress[e] {
			a.stress[e][k] = 0
			a.strainRate[e][k] = 0
		}
		a.plstrain[e] = 0
	}
	a.count = 0
	return
}

func scaled2(a [][]float64, s float64) [][]float64 {
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v * s
		}
	}
	return out
}

func scaled1(a []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = v * s
	}
	return out
}
