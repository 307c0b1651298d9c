// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dynearthsol/inp"
	"github.com/cpmech/dynearthsol/material"
	"github.com/cpmech/dynearthsol/mesh"
)

// elasticBoxConfig builds the scenario-1 setup from spec.md §8: a
// uniform 2D box, purely elastic, zero gravity, no boundary motion.
func elasticBoxConfig() *inp.Config {
	cfg := &inp.Config{}
	cfg.SetDefault()
	cfg.Sim.Modelname = "box2d"
	cfg.Sim.MaxSteps = 20
	cfg.Mesh.Xlength = 10000
	cfg.Mesh.Ylength = 10000
	cfg.Mesh.Resolution = 2500
	cfg.Control.DtFraction = 0.5
	cfg.Mat.RheolType = material.RhElastic
	cfg.Mat.Nmat = 1
	cfg.Mat.Rho0 = []float64{2700}
	cfg.Mat.Alpha = []float64{0}
	cfg.Mat.BulkModulus = []float64{5e10}
	cfg.Mat.ShearModulus = []float64{3e10}
	cfg.Mat.HeatCapacity = []float64{1000}
	cfg.Mat.ThermCond = []float64{2.5}
	cfg.Markers.MarkersPerElement = 6
	return cfg
}

func TestInitBuildsConsistentMesh(tst *testing.T) {
	chk.PrintTitle("InitBuildsConsistentMesh")

	v := New(elasticBoxConfig(), mesh.NewStructuredMesher(), 2)
	if err := v.Init(); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}

	if v.Mesh.Nelem() == 0 || v.Mesh.Nnode() == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}
	for e, vol := range v.Fields.Volume {
		if vol <= 0 {
			tst.Errorf("volume[%d] = %v, want > 0", e, vol)
		}
	}
	for n, m := range v.Fields.Mass {
		if m <= 0 {
			tst.Errorf("mass[%d] = %v, want > 0", n, m)
		}
	}
	for e, counts := range v.Fields.Elemmarkers {
		total := 0
		for _, c := range counts {
			total += c
		}
		if total < 1 {
			tst.Errorf("elemmarkers[%d] sums to %d, want >= 1", e, total)
		}
	}
}

// TestQuiescentElasticRunStaysNearZero exercises spec.md §8 scenario 1:
// a uniform mesh, zero gravity, no boundary motion, elastic only. Over
// many steps the stress should remain negligible and no remesh should
// fire.
func TestQuiescentElasticRunStaysNearZero(tst *testing.T) {
	chk.PrintTitle("QuiescentElasticRunStaysNearZero")

	cfg := elasticBoxConfig()
	v := New(cfg, mesh.NewStructuredMesher(), 2)
	if err := v.Init(); err != nil {
		tst.Fatalf("Init failed: %v", err)
	}
	initialQuality := minQuality(v.Fields.Elquality)

	for i := 0; i < cfg.Sim.MaxSteps; i++ {
		v.Step()
	}

	maxAbsStress := 0.0
	for _, s := range v.Fields.Stress {
		for _, c := range s {
			if math.Abs(c) > maxAbsStress {
				maxAbsStress = math.Abs(c)
			}
		}
	}
	mu := cfg.Mat.ShearModulus[0]
	if maxAbsStress > 1e-6*mu {
		tst.Errorf("max|stress| = %v, want < 1e-6*mu = %v", maxAbsStress, 1e-6*mu)
	}

	finalQuality := minQuality(v.Fields.Elquality)
	if finalQuality < initialQuality-1e-9 {
		tst.Errorf("mesh quality degraded: initial %v, final %v", initialQuality, finalQuality)
	}
	if v.needsRemesh() {
		tst.Errorf("a quiescent run should not trigger a remesh")
	}
}

func minQuality(q []float64) float64 {
	m := math.Inf(1)
	for _, x := range q {
		if x < m {
			m = x
		}
	}
	return m
}
