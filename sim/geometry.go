// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/cpmech/dynearthsol/mesh"

// computeVolumes refreshes Fields.Volume for every element from the
// current node coordinates.
func (v *Variables) computeVolumes() {
	m, f := v.Mesh, v.Fields
	forEachElement(m.Nelem(), v.Nthreads, func(e int) {
		f.Volume[e] = mesh.Volume(m.Ndim, vertsOf(m.Connectivity[e], m.Coord))
	})
}

// computeMassAndShapeGrads recomputes the constant-per-element shape
// gradients and lumps element mass onto the nodes, scaled by the
// configured inertial scaling factor (a direct density multiplier
// raising the effective quasi-static time step, per control.inertial_scaling).
func (v *Variables) computeMassAndShapeGrads() {
	m, f := v.Mesh, v.Fields
	scaling := v.Cfg.Control.InertialScaling
	if scaling <= 0 {
		scaling = 1
	}

	for n := range f.Mass {
		f.Mass[n] = 0
		f.Tmass[n] = 0
		f.VolumeN[n] = 0
	}

	forEachElement(m.Nelem(), v.Nthreads, func(e int) {
		x := vertsOf(m.Connectivity[e], m.Coord)
		dx, dy, dz := mesh.ShapeGrads(m.Ndim, x, f.Volume[e])
		copy(f.Shpdx[e], dx)
		copy(f.Shpdy[e], dy)
		if m.Ndim == 3 {
			copy(f.Shpdz[e], dz)
		}
	})

	np := m.NodesPerElem()
	for e, conn := range m.Connectivity {
		rho := v.Mat.Rho(f.Mat[e], 0)
		elemMass := rho * scaling * f.Volume[e] / float64(np)
		cp := v.Mat.HeatCapacity(f.Mat[e])
		elemTmass := rho * cp * f.Volume[e] / float64(np)
		share := f.Volume[e] / float64(np)
		for _, n := range conn {
			f.Mass[n] += elemMass
			f.Tmass[n] += elemTmass
			f.VolumeN[n] += share
		}
	}
}

// computeQuality refreshes Fields.Elquality for every element, the
// input to the remesh trigger's low-angle check.
func (v *Variables) computeQuality() {
	m, f := v.Mesh, v.Fields
	forEachElement(m.Nelem(), v.Nthreads, func(e int) {
		f.Elquality[e] = mesh.ElemQuality(m.Ndim, vertsOf(m.Connectivity[e], m.Coord), f.Volume[e])
	})
}

func vertsOf(conn []int, coord [][]float64) [][]float64 {
	x := make([][]float64, len(conn))
	for i, n := range conn {
		x[i] = coord[n]
	}
	return x
}
