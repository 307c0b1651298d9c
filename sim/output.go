// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/cpmech/dynearthsol/persist"

// writeFrame writes one `.save.NNNNNN` frame (averaged over the last
// output_averaged_fields steps when that option is set, else the
// instantaneous field values) and appends the matching `.info` line.
func (v *Variables) writeFrame(dir string, info *persist.InfoWriter, frame int) error {
	m, f := v.Mesh, v.Fields

	vel, stress, strainRate, temperature, plstrain := f.Vel, f.Stress, f.StrainRate, f.Temperature, f.Plstrain
	if v.Averaged != nil {
		vel, stress, strainRate, temperature, plstrain = v.Averaged.snapshot()
	}

	d := persist.SaveData{
		Coordinate:    m.Coord,
		Connectivity:  m.Connectivity,
		Velocity:      vel,
		Temperature:   temperature,
		StrainRate:    strainRate,
		Strain:        f.Strain,
		Stress:        stress,
		PlasticStrain: plstrain,
		MeshQuality:   f.Elquality,
		Force:         f.Force,
	}
	if err := persist.WriteSave(dir, v.Cfg.Sim.Modelname, frame, d); err != nil {
		return err
	}
	return info.WriteFrame(frame, f.Steps, f.Time, 0, 0, 0, m.Nnode(), m.Nelem(), m.Nseg())
}

// writeCheckpoint writes one `.chkpt.NNNNNN` frame sufficient to restart.
func (v *Variables) writeCheckpoint(dir string, frame int) error {
	m, f := v.Mesh, v.Fields
	md := persist.MarkerData{
		Elem:     make([]int, len(v.Markers.Markers)),
		Bary:     make([][]float64, len(v.Markers.Markers)),
		Mat:      make([]int, len(v.Markers.Markers)),
		Plstrain: make([]float64, len(v.Markers.Markers)),
	}
	for i, mk := range v.Markers.Markers {
		md.Elem[i] = mk.Elem
		md.Bary[i] = mk.Bary
		md.Mat[i] = mk.Mat
		md.Plstrain[i] = mk.Plstrain
	}
	d := persist.CheckpointData{
		Segment:              m.Segment,
		Segflag:              m.Segflag,
		VolumeOld:            f.VolumeOld,
		Time:                 f.Time,
		CompensationPressure: f.CompensationPressure,
		Markers:              md,
	}
	return persist.WriteCheckpoint(dir, v.Cfg.Sim.Modelname, frame, d)
}

// outputDue reports whether the current step should emit an output
// frame: either the averaging window has filled, or (absent averaging)
// the step/time interval has elapsed.
func (v *Variables) outputDue(lastOutputTime float64) bool {
	if v.Averaged != nil {
		return v.Averaged.ready(v.Cfg.Sim.OutputAveragedFields)
	}
	f := v.Fields
	if v.Cfg.Sim.OutputStepInterval > 0 && f.Steps%v.Cfg.Sim.OutputStepInterval == 0 {
		return true
	}
	if interval := v.Cfg.Sim.OutputTimeIntervalInYr; interval > 0 {
		return f.Time-lastOutputTime >= interval*YearToSec
	}
	return false
}
