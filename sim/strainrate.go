// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// computeStrainRate fills Fields.StrainRate and Fields.Edvoldt (the
// volumetric strain rate, trace of the tensor) from the current nodal
// velocities and the element's shape gradients, and returns the spin
// tensor per element for the subsequent constitutive update.
func (v *Variables) computeStrainRate() [][3]float64 {
	m, f := v.Mesh, v.Fields
	spins := make([][3]float64, m.Nelem())
	forEachElement(m.Nelem(), v.Nthreads, func(e int) {
		conn := m.Connectivity[e]
		dx, dy, dz := f.Shpdx[e], f.Shpdy[e], f.Shpdz[e]

		var dvxdx, dvxdy, dvxdz float64
		var dvydx, dvydy, dvydz float64
		var dvzdx, dvzdy, dvzdz float64
		for i, n := range conn {
			vx, vy := f.Vel[n][0], f.Vel[n][1]
			dvxdx += dx[i] * vx
			dvxdy += dy[i] * vx
			dvydx += dx[i] * vy
			dvydy += dy[i] * vy
			if m.Ndim == 3 {
				vz := f.Vel[n][2]
				dvxdz += dz[i] * vx
				dvydz += dz[i] * vy
				dvzdx += dx[i] * vz
				dvzdy += dy[i] * vz
				dvzdz += dz[i] * vz
			}
		}

		sr := f.StrainRate[e]
		if m.Ndim == 2 {
			sr[0] = dvxdx
			sr[1] = dvydy
			sr[2] = 0.5 * (dvxdy + dvydx)
			f.Edvoldt[e] = sr[0] + sr[1]
			spins[e][0] = 0.5 * (dvxdy - dvydx)
		} else {
			sr[0] = dvxdx
			sr[1] = dvydy
			sr[2] = dvzdz
			sr[3] = 0.5 * (dvxdy + dvydx)
			sr[4] = 0.5 * (dvydz + dvzdy)
			sr[5] = 0.5 * (dvzdx + dvxdz)
			f.Edvoldt[e] = sr[0] + sr[1] + sr[2]
			spins[e][0] = 0.5 * (dvxdy - dvydx)
			spins[e][1] = 0.5 * (dvydz - dvzdy)
			spins[e][2] = 0.5 * (dvzdx - dvxdz)
		}
	})
	return spins
}
