// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim owns the explicit dynamics driver: Variables, the
// single mutable record tying together the mesh, field arrays,
// materials, markers and boundary conditions, and the per-step
// pipeline operating on it. Lifecycle naming (New/Init/Restart) follows
// the Start/Run/End shape used throughout this codebase.
//
// Variables is deliberately not a package-level global: it is a single
// value owned by main and passed by pointer into every per-step
// function, so test code can run several independent simulations in
// the same process.
package sim

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dynearthsol/bc"
	"github.com/cpmech/dynearthsol/field"
	"github.com/cpmech/dynearthsol/inp"
	"github.com/cpmech/dynearthsol/marker"
	"github.com/cpmech/dynearthsol/material"
	"github.com/cpmech/dynearthsol/mesh"
)

// YearToSec is the year-to-second conversion used throughout.
const YearToSec = 365.25 * 24 * 3600

// Variables is the single owning record of one run's state: the
// mesh, every per-node/per-element field, the materials database, the
// marker population, boundary conditions, and the scalars driving the
// step loop, always passed by pointer — never a package global.
type Variables struct {
	Cfg    *inp.Config
	Mesh   *mesh.Mesh
	Fields *field.Fields
	Mat    *material.Table
	Markers *marker.Set
	BC     *bc.Set
	Mesher mesh.Mesher

	Nthreads int

	// medianVolume0 is the reference median element volume of the
	// initial mesh, used by the degenerate-volume remesh trigger.
	medianVolume0 float64

	// initNodeLevel is each node's vertical coordinate as of the last
	// mesh (re)build, the reference the Winkler foundation and water
	// loading tractions measure displacement against.
	initNodeLevel []float64

	// Averaged accumulates running sums of output fields between
	// output ticks when Cfg.Sim.OutputAveragedFields is set; see average.go.
	Averaged *averagedFields
}

// New constructs an empty Variables for the given configuration and
// external mesher. Call Init (fresh run) or Restart (from a checkpoint)
// next.
func New(cfg *inp.Config, mesher mesh.Mesher, nthreads int) *Variables {
	v := &Variables{Cfg: cfg, Mesher: mesher, Nthreads: nthreads}
	v.Mat = v.buildMaterialTable()
	v.BC = v.buildBC()
	if cfg.Control.CharacteristicSpeed == 0 {
		v.Fields = nil // set after BC/mesh sizing; MaxVbcVal computed in Init/Restart
	}
	return v
}

func (v *Variables) buildMaterialTable() *material.Table {
	m := v.Cfg.Mat
	props := make([]material.Prop, m.Nmat)
	get := func(v []float64, i int) float64 {
		if len(v) == 0 {
			return 0
		}
		return v[i]
	}
	for i := 0; i < m.Nmat; i++ {
		props[i] = material.Prop{
			Rho0: get(m.Rho0, i), Alpha: get(m.Alpha, i),
			BulkModulus: get(m.BulkModulus, i), ShearModulus: get(m.ShearModulus, i),
			ViscExponent: get(m.ViscExponent, i), ViscCoefficient: get(m.ViscCoefficient, i),
			ViscActivationEnergy: get(m.ViscActivationEnergy, i),
			HeatCapacity:         get(m.HeatCapacity, i), ThermCond: get(m.ThermCond, i),
			Pls0: get(m.Pls0, i), Pls1: get(m.Pls1, i),
			Cohesion0: get(m.Cohesion0, i), Cohesion1: get(m.Cohesion1, i),
			FrictionAngle0: get(m.FrictionAngle0, i), FrictionAngle1: get(m.FrictionAngle1, i),
			DilationAngle0: get(m.DilationAngle0, i), DilationAngle1: get(m.DilationAngle1, i),
		}
	}
	return &material.Table{
		RheolType: m.RheolType, Props: props,
		ViscMin: m.ViscMin, ViscMax: m.ViscMax,
		TensionMax: m.TensionMax, ThermDiffMax: m.ThermDiffMax,
	}
}

func (v *Variables) buildBC() *bc.Set {
	c := v.Cfg.BC
	s := &bc.Set{Ndim: ndim(v.Cfg)}
	setFace := func(face *bc.FaceBC, code int, val float64, component int) {
		face.Component[component] = bc.ParseKind(code)
		face.Value[component] = val
	}
	setFace(&s.Face[bc.X0], c.VbcX0, c.VbcValX0, 0)
	setFace(&s.Face[bc.X1], c.VbcX1, c.VbcValX1, 0)
	setFace(&s.Face[bc.Y0], c.VbcY0, c.VbcValY0, 1)
	setFace(&s.Face[bc.Y1], c.VbcY1, c.VbcValY1, 1)
	if s.Ndim == 3 {
		setFace(&s.Face[bc.Z0], c.VbcZ0, c.VbcValZ0, 2)
		setFace(&s.Face[bc.Z1], c.VbcZ1, c.VbcValZ1, 2)
	}
	s.SurfaceTemperature = c.SurfaceTemperature
	s.MantleTemperature = c.MantleTemperature
	s.HasWrinklerFoundation = c.HasWrinklerFoundation
	s.WrinklerDeltaRho = c.WrinklerDeltaRho
	s.HasWaterLoading = c.HasWaterLoading
	return s
}

// ndim infers the space dimension from the config: zlength > 0 means 3D.
func ndim(cfg *inp.Config) int {
	if cfg.Mesh.Zlength > 0 {
		return 3
	}
	return 2
}

// findMaxVbc derives the characteristic velocity scale stored in
// Fields.MaxVbcVal: when CharacteristicSpeed is unset, it is the
// largest prescribed boundary velocity; otherwise it is used directly.
// The value is carried through remesh and restart; neither ComputeDt
// nor computeMassAndShapeGrads reads it (the mass scaling comes from
// control.inertial_scaling alone).
func (v *Variables) findMaxVbc() float64 {
	if v.Cfg.Control.CharacteristicSpeed != 0 {
		return v.Cfg.Control.CharacteristicSpeed
	}
	return v.BC.MaxVbcVal()
}

// Init builds a fresh run: mesh construction, derived indices, marker
// seeding, field allocation, initial mass/volume/shape-gradient
// metrics, boundary conditions, and initial temperature/stress/weak
// zone.
func (v *Variables) Init() error {
	m, err := v.buildInitialMesh()
	if err != nil {
		return err
	}
	// reorder the initial mesh for cache locality (remeshed meshes keep
	// the mesher's order), then rebuild every derived index over it.
	zlength := v.Cfg.Mesh.Zlength
	if m.Ndim == 2 {
		zlength = v.Cfg.Mesh.Ylength
	}
	m.Reindex(v.Cfg.Mesh.Xlength, zlength)
	m.Derive(v.Nthreads)
	v.Mesh = m
	v.medianVolume0 = medianOf(approxVolumes(m))

	v.Fields = field.New(m.Ndim, m.Nnode(), m.Nelem(), v.Cfg.Mat.Nmat)
	v.Fields.MaxVbcVal = v.findMaxVbc()

	v.Markers = marker.New(m.Ndim, v.Cfg.Markers.MarkersPerElement/2)
	jitter := v.Cfg.Markers.InitMarkerOption == inp.InitMarkerRandom
	v.Markers.Seed(m.Nelem(), v.Cfg.Markers.MarkersPerElement, nil, v.regionOf, jitter, 42)
	v.Markers.RebuildTallies(v.Fields.Elemmarkers)
	v.Fields.RefreshMat()

	v.computeVolumes()
	copy(v.Fields.VolumeOld, v.Fields.Volume)
	v.computeMassAndShapeGrads()

	v.BC.Apply(v.Mesh.Bnodes, v.Fields.Vel)
	v.resetNodeLevel()

	v.initialTemperature()
	v.initialStress()
	v.initialWeakZone()

	if v.Cfg.Sim.OutputAveragedFields != 0 {
		v.Averaged = newAveragedFields(v.Fields)
	}

	v.Fields.Dt = v.ComputeDt()
	return nil
}

// Init passes nil as marker.Seed's per-element region tags
// (buildInitialMesh does not read MeshResult.RegionOf), so Seed takes
// each element's material from matOf, which Init sets to v.regionOf
// (mesh_build.go): depth layering under mattype_option 1, material 0
// otherwise.

func medianOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sorted := append([]float64(nil), v...)
	insertionSort(sorted)
	return sorted[len(sorted)/2]
}

func insertionSort(a []float64) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

func approxVolumes(m *mesh.Mesh) []float64 {
	vols := make([]float64, m.Nelem())
	for e, conn := range m.Connectivity {
		x := make([][]float64, len(conn))
		for i, n := range conn {
			x[i] = m.Coord[n]
		}
		vols[e] = mesh.Volume(m.Ndim, x)
	}
	return vols
}

// requireFields panics with a diagnostic if Fields/Mesh are not yet
// built, guarding against step functions being called before Init/Restart.
func (v *Variables) requireFields() {
	if v.Mesh == nil || v.Fields == nil {
		chk.Panic("sim: Variables used before Init/Restart")
	}
}
