// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/cpmech/dynearthsol/persist"

// Step advances the simulation by one explicit time increment:
// temperature diffusion, strain-rate/volumetric-rate assembly, the
// constitutive stress update (with the objective rotation folded in
// for elastic rheologies), force assembly, velocity/VBC, coordinate
// update, surface processes, metric recomputation, marker advection,
// and the every-10-step dt/phase-change maintenance. This ordering is
// binding: each stage reads fields the previous stage just wrote.
func (v *Variables) Step() {
	v.requireFields()
	m, f := v.Mesh, v.Fields

	v.diffuseTemperature()
	spins := v.computeStrainRate()
	v.updateStress(spins)
	v.computeForce()
	v.updateVelocity()
	v.updateCoordinates()
	v.applySurfaceProcesses()
	v.computeVolumes()
	v.computeMassAndShapeGrads()
	v.computeQuality()

	v.Markers.Advect(m.Connectivity, m.Coord, m.Support, maxMarkerRelocateHops)
	v.Markers.RebuildTallies(f.Elemmarkers)
	v.Markers.Reseed(m.Nelem(), f.Elemmarkers, m.Support, m.Connectivity, int64(f.Steps)*1000003+7)
	f.RefreshMat()

	f.Steps++
	f.Time += f.Dt

	if f.Steps%dtCheckInterval == 0 {
		f.Dt = v.ComputeDt()
	}
	if f.Steps%phaseChangeInterval == 0 {
		v.applyPhaseChanges()
	}
	if v.Averaged != nil {
		v.Averaged.accumulate(f)
	}
}

// Run drives Step to max_steps/max_time_in_yr, writing `.info`/`.save`
// frames on the configured interval, `.chkpt` frames every
// checkpoint_frame_interval output frames, and remeshing whenever
// quality degrades past the configured floor.
func (v *Variables) Run(dir string) error {
	v.requireFields()
	cfg := v.Cfg.Sim

	info, err := persist.OpenInfo(dir, cfg.Modelname)
	if err != nil {
		return err
	}
	defer info.Close()

	maxTimeSec := cfg.MaxTimeInYr * YearToSec
	lastOutputTime := 0.0
	frame := 0

	for {
		if cfg.MaxSteps > 0 && v.Fields.Steps >= cfg.MaxSteps {
			break
		}
		if maxTimeSec > 0 && v.Fields.Time >= maxTimeSec {
			break
		}

		v.Step()

		if v.outputDue(lastOutputTime) {
			frame++
			if err := v.writeFrame(dir, info, frame); err != nil {
				return err
			}
			if cfg.CheckpointFrameInterval > 0 && frame%cfg.CheckpointFrameInterval == 0 {
				if err := v.writeCheckpoint(dir, frame); err != nil {
					return err
				}
			}
			lastOutputTime = v.Fields.Time
		}

		if v.needsRemesh() {
			if cfg.HasOutputDuringRemeshing {
				frame++
				if err := v.writeFrame(dir, info, frame); err != nil {
					return err
				}
			}
			if err := v.remesh(); err != nil {
				return err
			}
			if cfg.HasOutputDuringRemeshing {
				frame++
				if err := v.writeFrame(dir, info, frame); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
