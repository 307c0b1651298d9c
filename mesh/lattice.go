// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"sort"
)

// triangulateLattice builds a regular triangle mesh over the bounding
// box of spec.Points: a structured grid of nx*ny nodes, each cell cut
// into 2 triangles. The lattice spacing is r = sqrt(MaxVolume/1.5)
// (area ~ 1.5*r^2 as in this module's uniform mode), so each triangle
// has an area of about r^2/2, a third of spec.MaxVolume. When spec carries a RefineMin/RefineMax
// sub-box (the "refined zone" mode, see BuildRefinedZone), the x/y
// axes are graded to a finer spacing inside that sub-box instead of
// staying uniform.
func triangulateLattice(spec MeshSpec) (MeshResult, error) {
	xmin, xmax, ymin, ymax := bbox2D(spec.Points)
	r := math.Sqrt(spec.MaxVolume / 1.5)
	if r <= 0 {
		r = (xmax - xmin) / 10
	}
	rf := 0.0
	if spec.RefineMaxVolume > 0 {
		rf = math.Sqrt(spec.RefineMaxVolume / 1.5)
	}

	var xs, ys []float64
	if rf > 0 && len(spec.RefineMin) >= 2 && len(spec.RefineMax) >= 2 {
		xs = gradedAxis(xmin, xmax, r, rf, spec.RefineMin[0], spec.RefineMax[0])
		ys = gradedAxis(ymin, ymax, r, rf, spec.RefineMin[1], spec.RefineMax[1])
	} else {
		xs = uniformAxis(xmin, xmax, r)
		ys = uniformAxis(ymin, ymax, r)
	}
	nx, ny := len(xs), len(ys)

	coord := make([][]float64, 0, nx*ny)
	idx := make([][]int, ny)
	for j := 0; j < ny; j++ {
		idx[j] = make([]int, nx)
		for i := 0; i < nx; i++ {
			idx[j][i] = len(coord)
			coord = append(coord, []float64{xs[i], ys[j]})
		}
	}

	var conn [][]int
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			a, b, c, d := idx[j][i], idx[j][i+1], idx[j+1][i+1], idx[j+1][i]
			conn = append(conn, []int{a, b, c})
			conn = append(conn, []int{a, c, d})
		}
	}

	var seg [][]int
	var segflag []int
	for i := 0; i < nx-1; i++ {
		seg = append(seg, []int{idx[0][i], idx[0][i+1]})
		segflag = append(segflag, Y0)
		seg = append(seg, []int{idx[ny-1][i], idx[ny-1][i+1]})
		segflag = append(segflag, Y1)
	}
	for j := 0; j < ny-1; j++ {
		seg = append(seg, []int{idx[j][0], idx[j+1][0]})
		segflag = append(segflag, X0)
		seg = append(seg, []int{idx[j][nx-1], idx[j+1][nx-1]})
		segflag = append(segflag, X1)
	}

	return MeshResult{Coord: coord, Connectivity: conn, Segment: seg, Segflag: segflag}, nil
}

// tetrahedralizeLattice builds a regular tetrahedral mesh over the
// bounding box of spec.Points: a structured grid of nx*ny*nz nodes,
// each cell cut into 6 tetrahedra (the standard Kuhn/Freudenthal
// triangulation of a cube). The lattice spacing is
// r = cbrt(MaxVolume/0.7) (volume ~ 0.7*r^3 as in this module's uniform
// mode), so each tet has a volume of about r^3/6.
func tetrahedralizeLattice(spec MeshSpec) (MeshResult, error) {
	xmin, xmax, ymin, ymax, zmin, zmax := bbox3D(spec.Points)
	r := math.Cbrt(spec.MaxVolume / 0.7)
	if r <= 0 {
		r = (xmax - xmin) / 6
	}
	rf := 0.0
	if spec.RefineMaxVolume > 0 {
		rf = math.Cbrt(spec.RefineMaxVolume / 0.7)
	}

	var xs, ys, zs []float64
	if rf > 0 && len(spec.RefineMin) >= 3 && len(spec.RefineMax) >= 3 {
		xs = gradedAxis(xmin, xmax, r, rf, spec.RefineMin[0], spec.RefineMax[0])
		ys = gradedAxis(ymin, ymax, r, rf, spec.RefineMin[1], spec.RefineMax[1])
		zs = gradedAxis(zmin, zmax, r, rf, spec.RefineMin[2], spec.RefineMax[2])
	} else {
		xs = uniformAxis(xmin, xmax, r)
		ys = uniformAxis(ymin, ymax, r)
		zs = uniformAxis(zmin, zmax, r)
	}
	nx, ny, nz := len(xs), len(ys), len(zs)

	idx := make([][][]int, nz)
	var coord [][]float64
	for k := 0; k < nz; k++ {
		idx[k] = make([][]int, ny)
		for j := 0; j < ny; j++ {
			idx[k][j] = make([]int, nx)
			for i := 0; i < nx; i++ {
				idx[k][j][i] = len(coord)
				coord = append(coord, []float64{xs[i], ys[j], zs[k]})
			}
		}
	}

	// Kuhn subdivision of the unit cube into 6 tets along the main diagonal.
	kuhn := [6][4][3]int{
		{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
		{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}, {1, 1, 1}},
		{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {1, 1, 1}},
		{{0, 0, 0}, {0, 1, 1}, {0, 0, 1}, {1, 1, 1}},
		{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}, {1, 1, 1}},
		{{0, 0, 0}, {1, 0, 1}, {1, 0, 0}, {1, 1, 1}},
	}
	var conn [][]int
	for k := 0; k < nz-1; k++ {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx-1; i++ {
				for _, tet := range kuhn {
					var v [4]int
					for t := 0; t < 4; t++ {
						v[t] = idx[k+tet[t][2]][j+tet[t][1]][i+tet[t][0]]
					}
					conn = append(conn, []int{v[0], v[1], v[2], v[3]})
				}
			}
		}
	}

	var seg [][]int
	var segflag []int
	addQuadFace := func(a, b, c, d int, flag int) {
		seg = append(seg, []int{a, b, c})
		segflag = append(segflag, flag)
		seg = append(seg, []int{a, c, d})
		segflag = append(segflag, flag)
	}
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			addQuadFace(idx[0][j][i], idx[0][j][i+1], idx[0][j+1][i+1], idx[0][j+1][i], Z0)
			addQuadFace(idx[nz-1][j][i], idx[nz-1][j][i+1], idx[nz-1][j+1][i+1], idx[nz-1][j+1][i], Z1)
		}
	}
	for k := 0; k < nz-1; k++ {
		for i := 0; i < nx-1; i++ {
			addQuadFace(idx[k][0][i], idx[k][0][i+1], idx[k+1][0][i+1], idx[k+1][0][i], Y0)
			addQuadFace(idx[k][ny-1][i], idx[k][ny-1][i+1], idx[k+1][ny-1][i+1], idx[k+1][ny-1][i], Y1)
		}
	}
	for k := 0; k < nz-1; k++ {
		for j := 0; j < ny-1; j++ {
			addQuadFace(idx[k][j][0], idx[k][j+1][0], idx[k+1][j+1][0], idx[k+1][j][0], X0)
			addQuadFace(idx[k][j][nx-1], idx[k][j+1][nx-1], idx[k+1][j+1][nx-1], idx[k+1][j][nx-1], X1)
		}
	}

	return MeshResult{Coord: coord, Connectivity: conn, Segment: seg, Segflag: segflag}, nil
}

func bbox2D(pts [][]float64) (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = pts[0][0], pts[0][0]
	ymin, ymax = pts[0][1], pts[0][1]
	for _, p := range pts {
		xmin, xmax = math.Min(xmin, p[0]), math.Max(xmax, p[0])
		ymin, ymax = math.Min(ymin, p[1]), math.Max(ymax, p[1])
	}
	return
}

func bbox3D(pts [][]float64) (xmin, xmax, ymin, ymax, zmin, zmax float64) {
	xmin, xmax = pts[0][0], pts[0][0]
	ymin, ymax = pts[0][1], pts[0][1]
	zmin, zmax = pts[0][2], pts[0][2]
	for _, p := range pts {
		xmin, xmax = math.Min(xmin, p[0]), math.Max(xmax, p[0])
		ymin, ymax = math.Min(ymin, p[1]), math.Max(ymax, p[1])
		zmin, zmax = math.Min(zmin, p[2]), math.Max(zmax, p[2])
	}
	return
}

// uniformAxis returns n evenly spaced coordinates from lo to hi with
// spacing as close to `spacing` as an integer split allows.
func uniformAxis(lo, hi, spacing float64) []float64 {
	if spacing <= 0 {
		spacing = (hi - lo) / 10
	}
	n := maxInt(2, int(math.Round((hi-lo)/spacing))+1)
	pts := make([]float64, n)
	for i := range pts {
		pts[i] = lo + float64(i)*(hi-lo)/float64(n-1)
	}
	return pts
}

// gradedAxis builds a 1D node coordinate list over [lo,hi] that is
// uniform at `coarse` spacing outside [rlo,rhi] and uniform at `fine`
// spacing inside it, so a structured background lattice can still
// locally refine around a sub-box (spec.md §4.1's "refined zone"
// mode) without a real unstructured remesher. Falls back to a single
// uniform axis when the refine window is degenerate or not actually
// finer than the background spacing.
func gradedAxis(lo, hi, coarse, fine, rlo, rhi float64) []float64 {
	if rlo > rhi {
		rlo, rhi = rhi, rlo
	}
	if rlo < lo {
		rlo = lo
	}
	if rhi > hi {
		rhi = hi
	}
	if fine <= 0 || fine >= coarse || rhi-rlo <= 0 {
		return uniformAxis(lo, hi, coarse)
	}
	var pts []float64
	if rlo > lo {
		pts = append(pts, uniformAxis(lo, rlo, coarse)...)
	}
	pts = append(pts, uniformAxis(rlo, rhi, fine)...)
	if rhi < hi {
		pts = append(pts, uniformAxis(rhi, hi, coarse)...)
	}
	return dedupeSorted(pts)
}

// dedupeSorted sorts pts ascending and collapses near-duplicate
// values (the shared endpoints between adjacent graded segments).
func dedupeSorted(pts []float64) []float64 {
	sort.Float64s(pts)
	out := pts[:0]
	const tol = 1e-9
	for _, p := range pts {
		if len(out) == 0 || p-out[len(out)-1] > tol*(1+abs(p)) {
			out = append(out, p)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
