// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewAllocatesToSize(tst *testing.T) {
	chk.PrintTitle("NewAllocatesToSize")

	f := New(2, 10, 14, 3)
	if len(f.Volume) != 14 || len(f.Mass) != 10 {
		tst.Fatalf("wrong sizes: nelem=%d nnode=%d", len(f.Volume), len(f.Mass))
	}
	if f.Nstr != 3 {
		tst.Fatalf("expected Nstr=3 for 2D, got %d", f.Nstr)
	}
	if len(f.Stress) != 14 || len(f.Stress[0]) != 3 {
		tst.Fatalf("wrong stress shape")
	}
	if f.Shpdz != nil {
		tst.Fatalf("expected nil Shpdz in 2D")
	}
}

func TestNew3D(tst *testing.T) {
	chk.PrintTitle("New3D")

	f := New(3, 5, 6, 2)
	if f.Nstr != 6 {
		tst.Fatalf("expected Nstr=6 for 3D, got %d", f.Nstr)
	}
	if f.Shpdz == nil || len(f.Shpdz) != 6 {
		tst.Fatalf("expected allocated Shpdz in 3D")
	}
}

func TestDominantMatTieBreak(tst *testing.T) {
	chk.PrintTitle("DominantMatTieBreak")

	f := New(2, 1, 1, 3)
	f.Elemmarkers[0] = []int{2, 2, 1}
	if got := f.DominantMat(0); got != 0 {
		tst.Fatalf("expected tie broken to lowest index 0, got %d", got)
	}
	f.Elemmarkers[0] = []int{0, 5, 1}
	if got := f.DominantMat(0); got != 1 {
		tst.Fatalf("expected material 1 to dominate, got %d", got)
	}
}

func TestRefreshMat(tst *testing.T) {
	chk.PrintTitle("RefreshMat")

	f := New(2, 1, 2, 2)
	f.Elemmarkers[0] = []int{3, 1}
	f.Elemmarkers[1] = []int{0, 4}
	f.RefreshMat()
	if f.Mat[0] != 0 || f.Mat[1] != 1 {
		tst.Fatalf("unexpected Mat after RefreshMat: %v", f.Mat)
	}
}

func TestReallocResets(tst *testing.T) {
	chk.PrintTitle("ReallocResets")

	f := New(2, 4, 3, 1)
	f.Stress[0][0] = 99
	f.Realloc(2, 1, 1)
	if f.Nelem != 1 || f.Nnode != 2 {
		tst.Fatalf("Realloc did not update sizes")
	}
	if f.Stress[0][0] != 0 {
		tst.Fatalf("Realloc did not zero Stress")
	}
}
