// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field owns the per-node and per-element arrays attached to a
// mesh: stress/strain tensors, lumped masses, velocities, temperature,
// and the scratch buffers the driver swaps between steps. It mirrors
// the array-ownership convention of a teacher fem.Domain: one struct
// holding every array sized to the current nnode/nelem, reallocated
// in place whenever the mesh changes.
package field

import "github.com/cpmech/gosl/chk"

// Fields holds every per-node and per-element array used by the
// driver, sized to a given mesh's nnode/nelem/NSTR. Nothing here knows
// about mesh topology; Alloc is handed the sizes directly so field
// stays independent of the mesh package.
type Fields struct {
	Ndim, Nstr int
	Nnode      int
	Nelem      int

	// per-element
	Volume        []float64
	VolumeOld     []float64
	Stress        [][]float64
	Strain        [][]float64
	StrainRate    [][]float64
	Plstrain      []float64
	DeltaPlstrain []float64
	Shpdx         [][]float64
	Shpdy         [][]float64
	Shpdz         [][]float64
	Edvoldt       []float64
	Elquality     []float64
	Mat           []int
	Elemmarkers   [][]int // [nelem][nmat]

	// per-node
	Vel         [][]float64
	Force       [][]float64
	Temperature []float64
	Ntmp        []float64
	Mass        []float64
	Tmass       []float64
	VolumeN     []float64

	// global scalars
	Time                 float64
	Dt                   float64
	Steps                int
	CompensationPressure float64
	MaxVbcVal            float64
}

// New allocates a Fields for a mesh of the given dimension, node
// count, element count, and material count.
func New(ndim, nnode, nelem, nmat int) *Fields {
	if ndim != 2 && ndim != 3 {
		chk.Panic("field: ndim must be 2 or 3, got %d", ndim)
	}
	nstr := 3
	if ndim == 3 {
		nstr = 6
	}
	f := &Fields{Ndim: ndim, Nstr: nstr}
	f.Realloc(nnode, nelem, nmat)
	return f
}

// Realloc resizes every array to match new node/element/material
// counts, zeroing all values. Called once at construction and again
// after every remesh.
func (f *Fields) Realloc(nnode, nelem, nmat int) {
	f.Nnode, f.Nelem = nnode, nelem

	f.Volume = make([]float64, nelem)
	f.VolumeOld = make([]float64, nelem)
	f.Stress = alloc2(nelem, f.Nstr)
	f.Strain = alloc2(nelem, f.Nstr)
	f.StrainRate = alloc2(nelem, f.Nstr)
	f.Plstrain = make([]float64, nelem)
	f.DeltaPlstrain = make([]float64, nelem)
	f.Shpdx = alloc2(nelem, f.Ndim+1)
	f.Shpdy = alloc2(nelem, f.Ndim+1)
	if f.Ndim == 3 {
		f.Shpdz = alloc2(nelem, f.Ndim+1)
	}
	f.Edvoldt = make([]float64, nelem)
	f.Elquality = make([]float64, nelem)
	f.Mat = make([]int, nelem)
	f.Elemmarkers = alloc2i(nelem, nmat)

	f.Vel = alloc2(nnode, f.Ndim)
	f.Force = alloc2(nnode, f.Ndim)
	f.Temperature = make([]float64, nnode)
	f.Ntmp = make([]float64, nnode)
	f.Mass = make([]float64, nnode)
	f.Tmass = make([]float64, nnode)
	f.VolumeN = make([]float64, nnode)
}

// DominantMat returns, for element e, the material index with the
// highest marker count, ties broken by lowest index.
func (f *Fields) DominantMat(e int) int {
	counts := f.Elemmarkers[e]
	best, bestCount := 0, -1
	for m, c := range counts {
		if c > bestCount {
			best, bestCount = m, c
		}
	}
	return best
}

// RefreshMat recomputes Mat[e] for every element from Elemmarkers.
func (f *Fields) RefreshMat() {
	for e := range f.Mat {
		f.Mat[e] = f.DominantMat(e)
	}
}

func alloc2(n, m int) [][]float64 {
	a := make([][]float64, n)
	buf := make([]float64, n*m)
	for i := range a {
		a[i] = buf[i*m : (i+1)*m : (i+1)*m]
	}
	return a
}

func alloc2i(n, m int) [][]int {
	a := make([][]int, n)
	buf := make([]int, n*m)
	for i := range a {
		a[i] = buf[i*m : (i+1)*m : (i+1)*m]
	}
	return a
}
