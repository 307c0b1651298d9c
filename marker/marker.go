// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package marker implements the Lagrangian material-point population
// that carries material identity and plastic strain across remeshing:
// seeding, barycentric advection with neighbor search, reseeding of
// under-populated elements, and the remesh transfer/host-relocation
// walk. Restyled in the value-semantics, pre-allocated-slice idiom of
// msolid.State (GetCopy/Set) rather than a pointer-heavy class.
package marker

import (
	"math/rand"

	"github.com/cpmech/gosl/chk"
)

// Marker is one Lagrangian material point: its host element and
// barycentric coordinates within that element, its material tag, and
// its accumulated plastic strain.
type Marker struct {
	Elem     int       // host element index; -1 marks a removed/lost marker
	Bary     []float64 // Ndim+1 barycentric coordinates, sum == 1
	Mat      int
	Plstrain float64
}

// Set owns the live marker population plus the per-worker scratch used
// during advection; it has no knowledge of mesh/field internals beyond
// the plain slices it is handed.
type Set struct {
	Ndim           int
	Markers        []Marker
	MinPerElem     int // minimum marker count per element after reseed
	lost           int // running count of markers dropped (diagnostics)
}

// New allocates an empty marker Set.
func New(ndim, minPerElem int) *Set {
	return &Set{Ndim: ndim, MinPerElem: minPerElem}
}

// Lost returns the cumulative count of markers dropped by a failed
// containment search.
func (s *Set) Lost() int { return s.lost }

// barySimplex returns perElem points in barycentric space: random
// normalized barycentric vectors when jitter is requested (with a
// non-nil rng), otherwise deterministic perturbations of the centroid.
func barySimplex(ndim, perElem int, rng *rand.Rand, jitter bool) [][]float64 {
	out := make([][]float64, 0, perElem)
	n := ndim + 1
	for i := 0; i < perElem; i++ {
		b := make([]float64, n)
		if jitter && rng != nil {
			sum := 0.0
			for j := range b {
				b[j] = rng.Float64()
				sum += b[j]
			}
			for j := range b {
				b[j] /= sum
			}
		} else {
			// perturb the centroid by an offset that depends on
			// i mod (ndim+1): the first ndim+1 markers of an element
			// are distinct, later ones repeat those positions.
			for j := range b {
				b[j] = 1.0 / float64(n)
			}
			b[i%n] += 0.3 / float64(n)
			b[(i+1)%n] -= 0.15 / float64(n)
			b[(i+2)%n] -= 0.15 / float64(n)
		}
		out = append(out, b)
	}
	return out
}

// Seed places markersPerElem markers in every element of a freshly
// constructed mesh, in barycentric space. regionOf,
// if non-nil, assigns the material id of element e from a region tag
// (e.g. the polyfile/refined-zone region marker); otherwise matOf is
// consulted (a caller-supplied rule, e.g. depth-based layering).
//
// jitter selects the jittered-random placement; with jitter==false a
// deterministic regular lattice in barycentric space is used (this is
// the "regular lattice" interpretation chosen for the unset/legacy
// init_marker_option case, see DESIGN.md).
func (s *Set) Seed(nelem, markersPerElem int, regionOf []int, matOf func(elem int) int, jitter bool, seed int64) {
	var rng *rand.Rand
	if jitter {
		rng = rand.New(rand.NewSource(seed))
	}
	s.Markers = s.Markers[:0]
	for e := 0; e < nelem; e++ {
		mat := 0
		if regionOf != nil {
			mat = regionOf[e]
		} else if matOf != nil {
			mat = matOf(e)
		}
		for _, b := range barySimplex(s.Ndim, markersPerElem, rng, jitter) {
			s.Markers = append(s.Markers, Marker{Elem: e, Bary: b, Mat: mat})
		}
	}
}

// Physical returns the current physical position of marker m, given the
// coordinates of its host element's vertices.
func Physical(ndim int, bary []float64, vertCoord [][]float64) []float64 {
	x := make([]float64, ndim)
	for i, b := range bary {
		for k := 0; k < ndim; k++ {
			x[k] += b * vertCoord[i][k]
		}
	}
	return x
}

// RebuildTallies recomputes elemmarkers[e][m] = count of live markers
// of material m currently hosted by element e. elemmarkers must already be sized [nelem][nmat].
func (s *Set) RebuildTallies(elemmarkers [][]int) {
	for _, row := range elemmarkers {
		for m := range row {
			row[m] = 0
		}
	}
	for _, mk := range s.Markers {
		if mk.Elem < 0 {
			continue
		}
		elemmarkers[mk.Elem][mk.Mat]++
	}
}

// Advect recomputes each live marker's barycentric coordinates after
// the node coordinates have moved, walking to a neighboring element via
// support[] when the marker has left its host element.
// connectivity/coord are the post-update mesh arrays; support[n] lists
// elements incident on node n.
//
// A marker is dropped (removed from the slice and s.lost incremented) if no neighbor search finds a containing element
// within maxHops attempts.
func (s *Set) Advect(connectivity [][]int, coord [][]float64, support [][]int, maxHops int) {
	kept := s.Markers[:0]
	for _, mk := range s.Markers {
		ok := s.relocate(&mk, connectivity, coord, support, maxHops)
		if ok {
			kept = append(kept, mk)
		} else {
			s.lost++
		}
	}
	s.Markers = kept
}

// relocate recomputes mk.Bary in its current host element; if any
// coordinate goes sufficiently negative, it walks to a neighbor
// sharing the vertex opposite that negative coordinate,
// and retries there, up to maxHops times.
func (s *Set) relocate(mk *Marker, connectivity [][]int, coord [][]float64, support [][]int, maxHops int) bool {
	const tol = -1e-9
	x := Physical(s.Ndim, mk.Bary, vertsOf(connectivity[mk.Elem], coord))
	for hop := 0; hop <= maxHops; hop++ {
		bary, ok := barycentricOf(s.Ndim, x, vertsOf(connectivity[mk.Elem], coord))
		if !ok {
			return false // degenerate element; cannot locate
		}
		mk.Bary = bary
		negIdx := -1
		for i, b := range bary {
			if b < tol {
				negIdx = i
				break
			}
		}
		if negIdx < 0 {
			return true
		}
		if hop == maxHops {
			break
		}
		// vertex opposite the negative barycentric coordinate is the
		// local vertex itself (barycentric coordinate i is 1 at local
		// vertex i); search its support for a containing element.
		vertex := connectivity[mk.Elem][negIdx]
		next := -1
		for _, cand := range support[vertex] {
			if cand == mk.Elem {
				continue
			}
			if b, ok := barycentricOf(s.Ndim, x, vertsOf(connectivity[cand], coord)); ok && allNonNegative(b, tol) {
				next = cand
				mk.Bary = b
				break
			}
		}
		if next < 0 {
			// no strictly-containing neighbor; take the least-negative
			// candidate among the support as a best-effort host so the
			// marker is not lost on a one-step overshoot, matching the
			// tolerant containment test used throughout (barycentric
			// coordinates allowed to be slightly negative, down to -1e-9).
			next = bestCandidate(s.Ndim, x, support[vertex], connectivity, coord, mk.Elem)
			if next < 0 {
				return false
			}
		}
		mk.Elem = next
	}
	return false
}

func bestCandidate(ndim int, x []float64, cands []int, connectivity [][]int, coord [][]float64, exclude int) int {
	best, bestMin := -1, -1e300
	for _, cand := range cands {
		if cand == exclude {
			continue
		}
		b, ok := barycentricOf(ndim, x, vertsOf(connectivity[cand], coord))
		if !ok {
			continue
		}
		m := minOf(b)
		if m > bestMin {
			best, bestMin = cand, m
		}
	}
	return best
}

func minOf(b []float64) float64 {
	m := b[0]
	for _, v := range b[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func allNonNegative(b []float64, tol float64) bool {
	for _, v := range b {
		if v < tol {
			return false
		}
	}
	return true
}

func vertsOf(conn []int, coord [][]float64) [][]float64 {
	v := make([][]float64, len(conn))
	for i, n := range conn {
		v[i] = coord[n]
	}
	return v
}

// barycentricOf solves for the barycentric coordinates of x within the
// simplex given by verts (Ndim+1 vertices), returning ok=false if the
// simplex is degenerate (zero or near-zero volume).
func barycentricOf(ndim int, x []float64, verts [][]float64) ([]float64, bool) {
	switch ndim {
	case 2:
		x0, y0 := verts[0][0], verts[0][1]
		x1, y1 := verts[1][0], verts[1][1]
		x2, y2 := verts[2][0], verts[2][1]
		det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
		if det == 0 {
			return nil, false
		}
		l0 := ((y1-y2)*(x[0]-x2) + (x2-x1)*(x[1]-y2)) / det
		l1 := ((y2-y0)*(x[0]-x2) + (x0-x2)*(x[1]-y2)) / det
		l2 := 1 - l0 - l1
		return []float64{l0, l1, l2}, true
	case 3:
		return barycentric3D(x, verts)
	}
	chk.Panic("marker: barycentricOf: ndim must be 2 or 3, got %d", ndim)
	return nil, false
}

// barycentric3D solves the 4x4 (homogeneous) linear system for tet
// barycentric coordinates via Cramer's rule over sub-tet volumes.
func barycentric3D(x []float64, v [][]float64) ([]float64, bool) {
	vol := func(a, b, c, d []float64) float64 {
		ax, ay, az := b[0]-a[0], b[1]-a[1], b[2]-a[2]
		bx, by, bz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
		cx, cy, cz := d[0]-a[0], d[1]-a[1], d[2]-a[2]
		return ax*(by*cz-bz*cy) - ay*(bx*cz-bz*cx) + az*(bx*cy-by*cx)
	}
	v0, v1, v2, v3 := v[0], v[1], v[2], v[3]
	total := vol(v0, v1, v2, v3)
	if total == 0 {
		return nil, false
	}
	l0 := vol(x, v1, v2, v3) / total
	l1 := vol(v0, x, v2, v3) / total
	l2 := vol(v0, v1, x, v3) / total
	l3 := 1 - l0 - l1 - l2
	return []float64{l0, l1, l2, l3}, true
}

// Reseed tops up any element whose live marker count is below
// MinPerElem with new markers at its barycenter/jittered positions,
// inheriting the dominant material id of the element (or, if the
// element currently has zero markers — which can happen right after a
// remesh — the majority material of an expanded one-ring neighborhood
// via support).
func (s *Set) Reseed(nelem int, elemmarkers [][]int, support [][]int, connectivity [][]int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for e := 0; e < nelem; e++ {
		count := 0
		for _, c := range elemmarkers[e] {
			count += c
		}
		if count >= s.MinPerElem {
			continue
		}
		mat := dominant(elemmarkers[e])
		if count == 0 {
			mat = neighborhoodMajority(e, elemmarkers, support, connectivity)
		}
		need := s.MinPerElem - count
		for _, b := range barySimplex(s.Ndim, need, rng, true) {
			s.Markers = append(s.Markers, Marker{Elem: e, Bary: b, Mat: mat})
			elemmarkers[e][mat]++
		}
	}
}

func dominant(counts []int) int {
	best, bestCount := 0, -1
	for m, c := range counts {
		if c > bestCount {
			best, bestCount = m, c
		}
	}
	return best
}

// neighborhoodMajority scans the elements sharing a vertex with e and
// returns the material with the most markers among them, falling back
// to material 0 if the whole neighborhood is empty too.
func neighborhoodMajority(e int, elemmarkers [][]int, support [][]int, connectivity [][]int) int {
	nmat := len(elemmarkers[e])
	totals := make([]int, nmat)
	for _, n := range connectivity[e] {
		for _, nb := range support[n] {
			if nb == e {
				continue
			}
			for m, c := range elemmarkers[nb] {
				totals[m] += c
			}
		}
	}
	return dominant(totals)
}

// Pushback adds deltaPlstrain to the plastic strain carried by every
// live marker currently hosted by element e, so the increment survives
// a future remesh transfer.
func (s *Set) Pushback(e int, deltaPlstrain float64) {
	for i := range s.Markers {
		if s.Markers[i].Elem == e {
			s.Markers[i].Plstrain += deltaPlstrain
		}
	}
}

// TransferToNewMesh relocates every marker's physical position (computed
// from its old host+barycentric coords) into the new mesh, starting the
// containment walk from seedElem(physicalPos) — typically a spatial
// hash or nearest-centroid lookup supplied by the caller. Material id
// and plastic strain are preserved; barycentric coordinates are
// recomputed in the new host.
//
// oldConn/oldCoord describe the mesh the markers are currently hosted
// in; newConn/newCoord/newSupport describe the mesh being transferred
// into. seedElem must return a plausible starting element index for a
// given physical position (e.g. nearest region centroid).
func (s *Set) TransferToNewMesh(oldConn [][]int, oldCoord [][]float64,
	newConn [][]int, newCoord [][]float64, newSupport [][]int,
	seedElem func(pos []float64) int, maxHops int) {

	kept := make([]Marker, 0, len(s.Markers))
	for _, mk := range s.Markers {
		pos := Physical(s.Ndim, mk.Bary, vertsOf(oldConn[mk.Elem], oldCoord))
		start := seedElem(pos)
		if start < 0 || start >= len(newConn) {
			s.lost++
			continue
		}
		nm := Marker{Elem: start, Mat: mk.Mat, Plstrain: mk.Plstrain}
		if b, ok := barycentricOf(s.Ndim, pos, vertsOf(newConn[start], newCoord)); ok && allNonNegative(b, -1e-6) {
			nm.Bary = b
			kept = append(kept, nm)
			continue
		}
		if s.relocate(&nm, newConn, newCoord, newSupport, maxHops) {
			kept = append(kept, nm)
		} else {
			s.lost++
		}
	}
	s.Markers = kept
}
