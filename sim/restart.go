// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dynearthsol/field"
	"github.com/cpmech/dynearthsol/inp"
	"github.com/cpmech/dynearthsol/marker"
	"github.com/cpmech/dynearthsol/mesh"
	"github.com/cpmech/dynearthsol/persist"
)

// Restart rebuilds a Variables from the `.save`/`.chkpt`/`.info` frame
// named by cfg.Sim.RestartingFromModelname/RestartingFromFrame,
// reinstating mesh, fields, and markers exactly as they stood when the
// checkpoint was written, so the run loop can resume from there.
func Restart(cfg *inp.Config, mesher mesh.Mesher, nthreads int, dir string) (*Variables, error) {
	v := New(cfg, mesher, nthreads)

	modelname := cfg.Sim.RestartingFromModelname
	frame := cfg.Sim.RestartingFromFrame

	save, err := persist.ReadSave(dir, modelname, frame)
	if err != nil {
		return nil, err
	}
	chkpt, err := persist.ReadCheckpoint(dir, modelname, frame)
	if err != nil {
		return nil, err
	}
	frames, err := persist.ReadInfo(dir, modelname)
	if err != nil {
		return nil, err
	}
	steps := 0
	for _, fi := range frames {
		if fi.Frame == frame {
			steps = fi.Steps
			break
		}
	}

	m := &mesh.Mesh{
		Ndim:         ndim(cfg),
		Coord:        save.Coordinate,
		Connectivity: save.Connectivity,
		Segment:      chkpt.Segment,
		Segflag:      chkpt.Segflag,
	}
	m.Derive(nthreads)
	if m.Nnode() != len(save.Velocity) {
		chk.Panic("sim: restart mismatch: mesh has %d nodes, save frame has %d", m.Nnode(), len(save.Velocity))
	}
	v.Mesh = m
	v.medianVolume0 = medianOf(approxVolumes(m))

	f := field.New(m.Ndim, m.Nnode(), m.Nelem(), cfg.Mat.Nmat)
	copy(f.Vel, save.Velocity)
	copy(f.Temperature, save.Temperature)
	copy(f.StrainRate, save.StrainRate)
	copy(f.Strain, save.Strain)
	copy(f.Stress, save.Stress)
	copy(f.Plstrain, save.PlasticStrain)
	copy(f.Elquality, save.MeshQuality)
	copy(f.Force, save.Force)
	copy(f.VolumeOld, chkpt.VolumeOld)
	f.Time = chkpt.Time
	f.CompensationPressure = chkpt.CompensationPressure
	f.Steps = steps
	v.Fields = f

	v.Markers = marker.New(m.Ndim, cfg.Markers.MarkersPerElement/2)
	v.Markers.Markers = make([]marker.Marker, len(chkpt.Markers.Elem))
	for i := range v.Markers.Markers {
		v.Markers.Markers[i] = marker.Marker{
			Elem:     chkpt.Markers.Elem[i],
			Bary:     chkpt.Markers.Bary[i],
			Mat:      chkpt.Markers.Mat[i],
			Plstrain: chkpt.Markers.Plstrain[i],
		}
	}
	v.Markers.RebuildTallies(f.Elemmarkers)
	f.RefreshMat()

	v.computeVolumes()
	v.computeMassAndShapeGrads()
	v.computeQuality()
	v.resetNodeLevel()
	f.MaxVbcVal = v.findMaxVbc()
	f.Dt = v.ComputeDt()

	if cfg.Sim.OutputAveragedFields != 0 {
		v.Averaged = newAveragedFields(f)
	}

	return v, nil
}
