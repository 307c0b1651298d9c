// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/cpmech/dynearthsol/bc"
)

// seaWaterDensity is the density used for the water-loading boundary
// traction; water_loading has no per-run density config, so a single
// representative seawater value is used throughout.
const seaWaterDensity = 1030.0

// resetNodeLevel captures every node's current vertical coordinate as
// the reference the Winkler foundation and water-loading tractions
// measure displacement against. Called once at Init and again after
// every remesh, since a remesh redefines what "undisplaced" means.
func (v *Variables) resetNodeLevel() {
	m := v.Mesh
	axis := v.verticalAxis()
	v.initNodeLevel = make([]float64, m.Nnode())
	for n, c := range m.Coord {
		v.initNodeLevel[n] = c[axis]
	}
}

// computeForce assembles Fields.Force from the internal stress
// divergence, gravity, and (when enabled) the Winkler foundation and
// water-loading boundary tractions, in place.
func (v *Variables) computeForce() {
	m, f := v.Mesh, v.Fields
	axis := v.verticalAxis()
	g := v.Cfg.Control.Gravity
	np := float64(m.NodesPerElem())

	for n := range f.Force {
		f.Force[n][0] = 0
		f.Force[n][1] = 0
		if m.Ndim == 3 {
			f.Force[n][2] = 0
		}
	}

	forEachBand(m.Egroups, func(e int) {
		conn := m.Connectivity[e]
		dx, dy, dz := f.Shpdx[e], f.Shpdy[e], f.Shpdz[e]
		sigma := f.Stress[e]
		vol := f.Volume[e]
		rho := v.Mat.Rho(f.Mat[e], avgTemperatureOf(conn, f.Temperature))
		weight := rho * g * vol / np

		for i, n := range conn {
			var fx, fy, fz float64
			if m.Ndim == 2 {
				fx = -(sigma[0]*dx[i] + sigma[2]*dy[i]) * vol
				fy = -(sigma[2]*dx[i] + sigma[1]*dy[i]) * vol
			} else {
				fx = -(sigma[0]*dx[i] + sigma[3]*dy[i] + sigma[5]*dz[i]) * vol
				fy = -(sigma[3]*dx[i] + sigma[1]*dy[i] + sigma[4]*dz[i]) * vol
				fz = -(sigma[5]*dx[i] + sigma[4]*dy[i] + sigma[2]*dz[i]) * vol
			}
			f.Force[n][0] += fx
			f.Force[n][1] += fy
			if m.Ndim == 3 {
				f.Force[n][2] += fz
			}
			f.Force[n][axis] -= weight
		}
	})

	v.applyBoundaryTractions()
}

// applyBoundaryTractions adds the Winkler foundation (bottom) and
// water loading (top) pressures, each proportional to a node's
// vertical displacement since the mesh was last (re)built, spread
// over the lumped area of the facets touching it.
func (v *Variables) applyBoundaryTractions() {
	if !v.BC.HasWrinklerFoundation && !v.BC.HasWaterLoading {
		return
	}
	m, f := v.Mesh, v.Fields
	axis := v.verticalAxis()
	top, bottom := bc.Y1, bc.Y0
	if m.Ndim == 3 {
		top, bottom = bc.Z1, bc.Z0
	}
	g := v.Cfg.Control.Gravity

	if v.BC.HasWrinklerFoundation {
		for _, facet := range m.Bfacets[bottom] {
			nodes := facetNodes(m.Connectivity[facet.Elem], facet.LocalV)
			share := facetArea(m.Ndim, m.Coord, nodes) / float64(len(nodes))
			for _, n := range nodes {
				disp := m.Coord[n][axis] - v.initNodeLevel[n]
				f.Force[n][axis] -= v.BC.WrinklerDeltaRho * g * disp * share
			}
		}
	}

	if v.BC.HasWaterLoading {
		for _, facet := range m.Bfacets[top] {
			nodes := facetNodes(m.Connectivity[facet.Elem], facet.LocalV)
			share := facetArea(m.Ndim, m.Coord, nodes) / float64(len(nodes))
			for _, n := range nodes {
				submergence := v.initNodeLevel[n] - m.Coord[n][axis]
				if submergence <= 0 {
					continue
				}
				f.Force[n][axis] -= seaWaterDensity * g * submergence * share
			}
		}
	}
}

// facetNodes returns the element's nodes other than the one opposite
// this facet: the facet's own vertex set.
func facetNodes(conn []int, localV int) []int {
	nodes := make([]int, 0, len(conn)-1)
	for i, n := range conn {
		if i != localV {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// facetArea returns a facet's length (2D) or triangle area (3D).
func facetArea(ndim int, coord [][]float64, nodes []int) float64 {
	if ndim == 2 {
		a, b := coord[nodes[0]], coord[nodes[1]]
		return math.Hypot(b[0]-a[0], b[1]-a[1])
	}
	a, b, c := coord[nodes[0]], coord[nodes[1]], coord[nodes[2]]
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	cx, cy, cz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}
