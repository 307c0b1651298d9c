// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/dynearthsol/constitutive"
	"github.com/cpmech/dynearthsol/material"
)

// updateStress advances every element's stress one step via the
// constitutive update, accumulates plastic strain, and pushes the
// element's plastic-strain increment back onto its hosted markers so
// the history survives a future remesh.
func (v *Variables) updateStress(spins [][3]float64) {
	m, f := v.Mesh, v.Fields
	dt := f.Dt
	forEachElement(m.Nelem(), v.Nthreads, func(e int) {
		mat := f.Mat[e]
		k := v.Mat.BulkModulus(mat)
		g := v.Mat.ShearModulus(mat)
		var eta float64
		if v.Mat.Has(material.RhViscous) {
			eta = v.Mat.Visc(mat, avgTemperatureOf(m.Connectivity[e], f.Temperature), strainRateII(f.StrainRate[e], m.Ndim))
		}
		pp := v.Mat.PlasticProps(mat, f.Plstrain[e])
		res := constitutive.Update(m.Ndim, v.Mat.RheolType, k, g, eta, dt, f.StrainRate[e], spins[e][:], pp, f.Stress[e])
		f.DeltaPlstrain[e] = res.DeltaPlstrain
		if res.DeltaPlstrain > 0 {
			f.Plstrain[e] += res.DeltaPlstrain
		}
	})
	for e, d := range f.DeltaPlstrain {
		if d > 0 {
			v.Markers.Pushback(e, d)
		}
	}
}
