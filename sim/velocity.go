// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/dynearthsol/bc"
	"github.com/cpmech/dynearthsol/mesh"
)

// updateVelocity advances nodal velocity by the mass-damped explicit
// rule `v <- v*(1-damping) + (force/mass)*dt`, then overwrites the
// constrained faces with apply_vbcs.
func (v *Variables) updateVelocity() {
	m, f := v.Mesh, v.Fields
	damping := v.Cfg.Control.DampingFactor
	dt := f.Dt
	forEachElement(m.Nnode(), v.Nthreads, func(n int) {
		if f.Mass[n] <= 0 {
			return
		}
		for c := 0; c < m.Ndim; c++ {
			f.Vel[n][c] = f.Vel[n][c]*(1-damping) + (f.Force[n][c]/f.Mass[n])*dt
		}
	})
	v.BC.Apply(m.Bnodes, f.Vel)
}

// updateCoordinates advances every node's position by `x <- x + v*dt`.
func (v *Variables) updateCoordinates() {
	m, f := v.Mesh, v.Fields
	dt := f.Dt
	forEachElement(m.Nnode(), v.Nthreads, func(n int) {
		for c := 0; c < m.Ndim; c++ {
			m.Coord[n][c] += f.Vel[n][c] * dt
		}
	})
}

// applySurfaceProcesses diffuses the vertical coordinate of the top
// boundary along the edges of its boundary segments, the discretized
// form of `surface_diffusivity`'s 1D/2D smoothing: each edge relaxes
// the elevation difference between its two endpoints.
func (v *Variables) applySurfaceProcesses() {
	if v.Cfg.Control.SurfaceProcessOption == 0 || v.Cfg.Control.SurfaceDiffusivity <= 0 {
		return
	}
	m, f := v.Mesh, v.Fields
	axis := v.verticalAxis()
	topIdx := bc.Y1
	if m.Ndim == 3 {
		topIdx = bc.Z1
	}
	topBit := mesh.Faces[topIdx]

	delta := make([]float64, m.Nnode())
	degree := make([]int, m.Nnode())
	for s, seg := range m.Segment {
		if m.Segflag[s]&topBit == 0 {
			continue
		}
		for _, edge := range segEdges(seg) {
			a, b := edge[0], edge[1]
			dz := m.Coord[b][axis] - m.Coord[a][axis]
			delta[a] += dz
			delta[b] -= dz
			degree[a]++
			degree[b]++
		}
	}

	kappa := v.Cfg.Control.SurfaceDiffusivity
	dt := f.Dt
	for _, n := range m.Bnodes[topIdx] {
		if degree[n] == 0 {
			continue
		}
		m.Coord[n][axis] += kappa * dt * delta[n] / float64(degree[n])
	}
}

// segEdges returns the undirected edges of a boundary segment: the
// single edge for a 2D segment (2 nodes), or the three sides of the
// triangle for a 3D segment (3 nodes).
func segEdges(seg []int) [][2]int {
	n := len(seg)
	if n == 2 {
		return [][2]int{{seg[0], seg[1]}}
	}
	edges := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edges = append(edges, [2]int{seg[i], seg[j]})
	}
	return edges
}

// diffuseTemperature advances the nodal temperature field one explicit
// FE diffusion step, `T <- T + dt*(k*div(grad T))/(rho*cp)`, assembled
// the same way as the internal force (shape-gradient contraction),
// then re-enforces the Dirichlet surface/mantle values.
func (v *Variables) diffuseTemperature() {
	if !v.Cfg.Control.HasThermalDiffusion {
		return
	}
	m, f := v.Mesh, v.Fields
	dt := f.Dt

	for n := range f.Ntmp {
		f.Ntmp[n] = 0
	}

	forEachBand(m.Egroups, func(e int) {
		conn := m.Connectivity[e]
		dx, dy, dz := f.Shpdx[e], f.Shpdy[e], f.Shpdz[e]
		k := v.Mat.Conductivity(f.Mat[e])
		vol := f.Volume[e]

		var gx, gy, gz float64
		for i, n := range conn {
			t := f.Temperature[n]
			gx += dx[i] * t
			gy += dy[i] * t
			if m.Ndim == 3 {
				gz += dz[i] * t
			}
		}
		for i, n := range conn {
			flux := dx[i]*gx + dy[i]*gy
			if m.Ndim == 3 {
				flux += dz[i] * gz
			}
			f.Ntmp[n] -= k * flux * vol
		}
	})

	for n := range f.Temperature {
		if f.Tmass[n] <= 0 {
			continue
		}
		f.Temperature[n] += dt * f.Ntmp[n] / f.Tmass[n]
	}
	v.BC.ApplyThermal(m.Bnodes, f.Temperature)
}
