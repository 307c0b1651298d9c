// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package marker

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSeedFillsEveryElement(tst *testing.T) {
	chk.PrintTitle("SeedFillsEveryElement")

	s := New(2, 4)
	nelem := 5
	s.Seed(nelem, 4, nil, func(e int) int { return e % 2 }, false, 1)
	if len(s.Markers) != nelem*4 {
		tst.Fatalf("expected %d markers, got %d", nelem*4, len(s.Markers))
	}
	elemmarkers := make([][]int, nelem)
	for e := range elemmarkers {
		elemmarkers[e] = make([]int, 2)
	}
	s.RebuildTallies(elemmarkers)
	for e := 0; e < nelem; e++ {
		total := elemmarkers[e][0] + elemmarkers[e][1]
		if total < 1 {
			tst.Fatalf("element %d has zero markers", e)
		}
	}
}

func TestBarycentricOfTriangleVertex(tst *testing.T) {
	chk.PrintTitle("BarycentricOfTriangleVertex")

	verts := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	b, ok := barycentricOf(2, []float64{0, 0}, verts)
	if !ok {
		tst.Fatalf("expected ok")
	}
	chk.Vector(tst, "bary at vertex 0", 1e-12, b, []float64{1, 0, 0})
}

func TestBarycentricOfCentroid(tst *testing.T) {
	chk.PrintTitle("BarycentricOfCentroid")

	verts := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	c := []float64{1.0 / 3, 1.0 / 3}
	b, ok := barycentricOf(2, c, verts)
	if !ok {
		tst.Fatalf("expected ok")
	}
	for _, v := range b {
		if v < 0 {
			tst.Fatalf("centroid must have all-nonnegative barycentric coords, got %v", b)
		}
	}
}

func TestAdvectStaysInsideWithoutMotion(tst *testing.T) {
	chk.PrintTitle("AdvectStaysInsideWithoutMotion")

	// a single triangle; markers should never leave it when the mesh
	// is not moving.
	coord := [][]float64{{0, 0}, {1, 0}, {0, 1}}
	conn := [][]int{{0, 1, 2}}
	support := [][]int{{0}, {0}, {0}}

	s := New(2, 1)
	s.Seed(1, 3, nil, nil, false, 1)
	s.Advect(conn, coord, support, 3)
	if len(s.Markers) != 3 {
		tst.Fatalf("expected no markers lost, got %d/3", len(s.Markers))
	}
	for _, mk := range s.Markers {
		if mk.Elem != 0 {
			tst.Fatalf("marker left the only element")
		}
	}
}

func TestReseedTopsUpEmptyElement(tst *testing.T) {
	chk.PrintTitle("ReseedTopsUpEmptyElement")

	nelem := 2
	conn := [][]int{{0, 1, 2}, {1, 3, 2}}
	support := [][]int{{0}, {0, 1}, {0, 1}, {1}}
	elemmarkers := [][]int{{0, 0}, {3, 0}}

	s := New(2, 3)
	s.Reseed(nelem, elemmarkers, support, conn, 7)

	total0 := 0
	for _, mk := range s.Markers {
		if mk.Elem == 0 {
			total0++
		}
	}
	if total0 < 3 {
		tst.Fatalf("expected element 0 reseeded to >= 3 markers, got %d", total0)
	}
}

func TestPushbackAccumulatesPlstrain(tst *testing.T) {
	chk.PrintTitle("PushbackAccumulatesPlstrain")

	s := New(2, 1)
	s.Seed(2, 2, nil, nil, false, 1)
	s.Pushback(0, 0.01)
	s.Pushback(0, 0.02)
	for _, mk := range s.Markers {
		if mk.Elem == 0 && mk.Plstrain != 0.03 {
			tst.Fatalf("expected accumulated plstrain 0.03, got %g", mk.Plstrain)
		}
		if mk.Elem == 1 && mk.Plstrain != 0 {
			tst.Fatalf("pushback leaked into element 1")
		}
	}
}
