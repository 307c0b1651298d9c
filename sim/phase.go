// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// phaseChangeInterval mirrors dtCheckInterval: phase rules are only
// evaluated every 10th step.
const phaseChangeInterval = 10

// applyPhaseChanges evaluates every marker's phase-change rule against
// its hosting element's current temperature and pressure
// (compensation_pressure plus the element's mean stress) and, when the
// rule fires, rewrites the marker's material id. elemmarkers is
// rebuilt afterward since the per-element dominant material may have
// shifted.
func (v *Variables) applyPhaseChanges() {
	mat := v.Cfg.Mat
	if mat.PhaseChangeOption == 0 || len(mat.PhaseChangeTargetMat) == 0 {
		return
	}
	m, f := v.Mesh, v.Fields

	elemTemp := make([]float64, m.Nelem())
	elemPressure := make([]float64, m.Nelem())
	for e, conn := range m.Connectivity {
		elemTemp[e] = avgTemperatureOf(conn, f.Temperature)
		elemPressure[e] = f.CompensationPressure + meanNormalStress(f.Stress[e], m.Ndim)
	}

	changed := false
	for i := range v.Markers.Markers {
		mk := &v.Markers.Markers[i]
		if mk.Mat < 0 || mk.Mat >= len(mat.PhaseChangeTargetMat) {
			continue
		}
		target := mat.PhaseChangeTargetMat[mk.Mat]
		if target == mk.Mat {
			continue
		}
		if !phaseTriggered(mat.PhaseChangeTempTrigger, mk.Mat, elemTemp[mk.Elem]) {
			continue
		}
		if !phaseTriggered(mat.PhaseChangePressureTrigger, mk.Mat, elemPressure[mk.Elem]) {
			continue
		}
		mk.Mat = target
		changed = true
	}

	if changed {
		v.Markers.RebuildTallies(f.Elemmarkers)
		f.RefreshMat()
	}
}

// phaseTriggered reports whether value clears triggers[mat]; a
// trigger of zero or below, or an unconfigured index, means the axis
// is not checked for this material.
func phaseTriggered(triggers []float64, mat int, value float64) bool {
	if mat >= len(triggers) {
		return true
	}
	trigger := triggers[mat]
	if trigger <= 0 {
		return true
	}
	return value >= trigger
}
