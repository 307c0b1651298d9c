// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestHistoryRecord(tst *testing.T) {
	chk.PrintTitle("HistoryRecord")

	var h History
	h.Record(0, 0, 100.0, []float64{0.9, 0.8, 0.95})
	h.Record(1, 100.0, 95.0, []float64{0.85, 0.7, 0.6})

	chk.Vector(tst, "dt", 1e-15, h.Dt, []float64{100.0, 95.0})
	chk.Vector(tst, "min(quality)", 1e-15, h.MinQual, []float64{0.8, 0.6})
	chk.Vector(tst, "step", 1e-15, h.Step, []float64{0, 1})
}
