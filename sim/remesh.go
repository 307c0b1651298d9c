// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/cpmech/dynearthsol/field"
	"github.com/cpmech/dynearthsol/mesh"
)

// maxMarkerRelocateHops bounds the neighbor search both Advect and the
// post-remesh transfer use to relocate a marker that left its seed
// element.
const maxMarkerRelocateHops = 8

// needsRemesh reports whether the current mesh has degraded past the
// configured quality floor or the degenerate-volume floor (a fraction
// of the initial median element volume).
func (v *Variables) needsRemesh() bool {
	q := v.Cfg.Mesh.MinQuality
	minVolume := 0.0
	if v.medianVolume0 > 0 {
		minVolume = 0.01 * v.medianVolume0
	}
	reason, _ := mesh.BadQuality(v.Fields.Elquality, v.Fields.Volume, q, minVolume)
	return reason != mesh.QualityOK
}

// remesh regenerates the interior mesh from the current deformed
// boundary, keeping the boundary nodes and facet flags, then transfers
// state forward: markers carry material id and plastic strain,
// velocity and temperature are interpolated from the old mesh's shape
// functions, and every derived index (support, egroups, bfacets,
// bcflag) is rebuilt from scratch by Derive. Stress, strain and strain
// rate are not transferred; they start from zero on the new mesh.
func (v *Variables) remesh() error {
	oldMesh, oldFields := v.Mesh, v.Fields
	points, facets := extractBoundary(oldMesh)

	cfg := v.Cfg.Mesh
	maxVolume := elementVolumeFromResolution(oldMesh.Ndim, cfg.Resolution)
	minAngle := cfg.MinAngle
	if oldMesh.Ndim == 3 {
		minAngle = cfg.MinTetAngle
	}

	newMesh, err := mesh.BuildFromPolyfile(v.Mesher, oldMesh.Ndim, points, facets, maxVolume, minAngle, v.Nthreads)
	if err != nil {
		return err
	}

	newFields := field.New(newMesh.Ndim, newMesh.Nnode(), newMesh.Nelem(), v.Cfg.Mat.Nmat)

	oldSeed := nearestElemSeed(oldMesh)
	newSeed := nearestElemSeed(newMesh)
	v.Markers.TransferToNewMesh(oldMesh.Connectivity, oldMesh.Coord,
		newMesh.Connectivity, newMesh.Coord, newMesh.Support, newSeed, maxMarkerRelocateHops)
	v.Markers.RebuildTallies(newFields.Elemmarkers)
	newFields.RefreshMat()
	v.averageMarkerPlstrain(newFields)

	interpolateNodal(oldMesh, oldFields.Vel, newMesh.Coord, newFields.Vel, oldSeed)
	interpolateNodalScalar(oldMesh, oldFields.Temperature, newMesh.Coord, newFields.Temperature, oldSeed)

	newFields.Time = oldFields.Time
	newFields.Steps = oldFields.Steps
	newFields.CompensationPressure = oldFields.CompensationPressure
	newFields.MaxVbcVal = oldFields.MaxVbcVal

	v.Mesh = newMesh
	v.Fields = newFields

	v.computeVolumes()
	copy(v.Fields.VolumeOld, v.Fields.Volume)
	v.computeMassAndShapeGrads()
	v.resetNodeLevel()
	v.Fields.Dt = v.ComputeDt()
	return nil
}

// averageMarkerPlstrain sets each new element's Plstrain to the mean
// plastic strain of the markers it now hosts.
func (v *Variables) averageMarkerPlstrain(f *field.Fields) {
	sums := make([]float64, f.Nelem)
	counts := make([]int, f.Nelem)
	for _, mk := range v.Markers.Markers {
		if mk.Elem < 0 {
			continue
		}
		sums[mk.Elem] += mk.Plstrain
		counts[mk.Elem]++
	}
	for e := range f.Plstrain {
		if counts[e] > 0 {
			f.Plstrain[e] = sums[e] / float64(counts[e])
		}
	}
}

// extractBoundary builds the point/facet input for the mesher from the
// current mesh's boundary segments: every node referenced by Segment,
// reindexed to a dense local range, plus the segment's domain-face flag.
func extractBoundary(m *mesh.Mesh) ([][]float64, []mesh.BoundaryFacetSpec) {
	idx := make(map[int]int)
	points := make([][]float64, 0)
	facets := make([]mesh.BoundaryFacetSpec, len(m.Segment))
	for i, seg := range m.Segment {
		nodes := make([]int, len(seg))
		for j, n := range seg {
			ni, ok := idx[n]
			if !ok {
				ni = len(points)
				idx[n] = ni
				points = append(points, append([]float64(nil), m.Coord[n]...))
			}
			nodes[j] = ni
		}
		facets[i] = mesh.BoundaryFacetSpec{Nodes: nodes, Flag: m.Segflag[i]}
	}
	return points, facets
}

// nearestElemSeed returns a closure giving the index of m's element
// whose centroid is nearest a physical position — a plain linear scan,
// good enough at the element counts this module targets.
func nearestElemSeed(m *mesh.Mesh) func(pos []float64) int {
	centroids := make([][]float64, m.Nelem())
	for e, conn := range m.Connectivity {
		centroids[e] = mesh.Centroid(m.Ndim, vertsOf(conn, m.Coord))
	}
	return func(pos []float64) int {
		best, bestDist := -1, math.Inf(1)
		for e, c := range centroids {
			d := 0.0
			for k := range pos {
				dx := pos[k] - c[k]
				d += dx * dx
			}
			if d < bestDist {
				best, bestDist = e, d
			}
		}
		return best
	}
}

// interpolateNodal fills newVal at every new-mesh node by locating the
// nearest old-mesh element (via seed) and linearly interpolating
// oldVal through that element's (clamped, renormalized) barycentric
// coordinates — the "old element shape functions" of the transfer step.
func interpolateNodal(oldMesh *mesh.Mesh, oldVal [][]float64, newCoord [][]float64, newVal [][]float64, seed func(pos []float64) int) {
	for n, pos := range newCoord {
		e := seed(pos)
		bary := clampedBarycentric(oldMesh.Ndim, pos, vertsOf(oldMesh.Connectivity[e], oldMesh.Coord))
		for i, w := range bary {
			if w == 0 {
				continue
			}
			v := oldVal[oldMesh.Connectivity[e][i]]
			for c := range newVal[n] {
				newVal[n][c] += w * v[c]
			}
		}
	}
}

// interpolateNodalScalar is interpolateNodal for a single-component field.
func interpolateNodalScalar(oldMesh *mesh.Mesh, oldVal []float64, newCoord [][]float64, newVal []float64, seed func(pos []float64) int) {
	for n, pos := range newCoord {
		e := seed(pos)
		bary := clampedBarycentric(oldMesh.Ndim, pos, vertsOf(oldMesh.Connectivity[e], oldMesh.Coord))
		sum := 0.0
		for i, w := range bary {
			sum += w * oldVal[oldMesh.Connectivity[e][i]]
		}
		newVal[n] = sum
	}
}

// clampedBarycentric solves for pos's barycentric coordinates in the
// simplex verts, clamps every component to [0,1], and renormalizes —
// a node slightly outside its seed element (common right at the
// boundary) still gets a sensible interpolated value instead of an
// extrapolated one.
func clampedBarycentric(ndim int, pos []float64, verts [][]float64) []float64 {
	var b []float64
	switch ndim {
	case 2:
		x0, y0 := verts[0][0], verts[0][1]
		x1, y1 := verts[1][0], verts[1][1]
		x2, y2 := verts[2][0], verts[2][1]
		det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
		if det == 0 {
			return []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
		}
		l0 := ((y1-y2)*(pos[0]-x2) + (x2-x1)*(pos[1]-y2)) / det
		l1 := ((y2-y0)*(pos[0]-x2) + (x0-x2)*(pos[1]-y2)) / det
		b = []float64{l0, l1, 1 - l0 - l1}
	case 3:
		vol := func(a, c, d, e []float64) float64 {
			ax, ay, az := c[0]-a[0], c[1]-a[1], c[2]-a[2]
			bx, by, bz := d[0]-a[0], d[1]-a[1], d[2]-a[2]
			cx, cy, cz := e[0]-a[0], e[1]-a[1], e[2]-a[2]
			return ax*(by*cz-bz*cy) - ay*(bx*cz-bz*cx) + az*(bx*cy-by*cx)
		}
		v0, v1, v2, v3 := verts[0], verts[1], verts[2], verts[3]
		total := vol(v0, v1, v2, v3)
		if total == 0 {
			return []float64{0.25, 0.25, 0.25, 0.25}
		}
		l0 := vol(pos, v1, v2, v3) / total
		l1 := vol(v0, pos, v2, v3) / total
		l2 := vol(v0, v1, pos, v3) / total
		b = []float64{l0, l1, l2, 1 - l0 - l1 - l2}
	}
	sum := 0.0
	for i, w := range b {
		if w < 0 {
			b[i] = 0
		}
		sum += b[i]
	}
	if sum <= 0 {
		for i := range b {
			b[i] = 1.0 / float64(len(b))
		}
		return b
	}
	for i := range b {
		b[i] /= sum
	}
	return b
}
