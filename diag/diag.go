// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag is an optional forensic aid: it records the dt and
// minimum-quality history of a run and plots it, for spotting why a
// run is remeshing often or why dt collapsed. Nothing in sim/ depends
// on this package; callers opt in explicitly.
package diag

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// History accumulates one (step, time, dt, min-quality) sample per
// call to Record. Call Record after each sim.Variables.Step.
type History struct {
	Step    []float64
	TimeYr  []float64
	Dt      []float64
	MinQual []float64
}

// Record appends one sample. timeYr is the simulation time in years,
// quality the per-element quality array for the step just taken.
func (h *History) Record(step int, timeYr, dt float64, quality []float64) {
	h.Step = append(h.Step, float64(step))
	h.TimeYr = append(h.TimeYr, timeYr)
	h.Dt = append(h.Dt, dt)
	h.MinQual = append(h.MinQual, minOf(quality))
}

func minOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Plot draws dt and minimum quality against step number on two
// stacked subplots and saves the figure as dirout/fnkey.png.
func (h *History) Plot(dirout, fnkey string) {
	plt.SplotGap(0.0, 0.35)
	plt.Subplot(2, 1, 1)
	plt.Plot(h.Step, h.Dt, "'b-', clip_on=0")
	plt.Gll("$step$", "$dt$", "")

	plt.Subplot(2, 1, 2)
	plt.Plot(h.Step, h.MinQual, "'r-', clip_on=0")
	plt.Gll("$step$", "$min(quality)$", "")

	plt.SaveD(dirout, io.Sf("%s_diag.png", fnkey))
}
