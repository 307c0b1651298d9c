// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"math/rand"

	"github.com/cpmech/gosl/chk"
)

// BoxSpec describes an axis-aligned box domain for the built-in
// construction modes.
type BoxSpec struct {
	Ndim        int
	Xmin, Xmax  float64
	Ymin, Ymax  float64
	Zmin, Zmax  float64
	MaxVolume   float64
	JitterFrac  float64 // fraction of the nominal spacing, e.g. 0.1
}

// corners returns the box's corner points, used as the minimal point
// set handed to the Mesher when no interior seeding is requested.
func (b BoxSpec) corners() [][]float64 {
	if b.Ndim == 2 {
		return [][]float64{
			{b.Xmin, b.Ymin}, {b.Xmax, b.Ymin},
			{b.Xmax, b.Ymax}, {b.Xmin, b.Ymax},
		}
	}
	return [][]float64{
		{b.Xmin, b.Ymin, b.Zmin}, {b.Xmax, b.Ymin, b.Zmin},
		{b.Xmax, b.Ymax, b.Zmin}, {b.Xmin, b.Ymax, b.Zmin},
		{b.Xmin, b.Ymin, b.Zmax}, {b.Xmax, b.Ymin, b.Zmax},
		{b.Xmax, b.Ymax, b.Zmax}, {b.Xmin, b.Ymax, b.Zmax},
	}
}

// BuildUniform constructs a mesh filling a box with a regular (or
// lightly jittered) simplex lattice, then derives every index via
// Derive. This is the default way to get a runnable mesh without an
// external mesher or a polygon boundary file.
//
// jitterSeed selects the math/rand source deterministically; pass the
// same seed to reproduce a run bit-for-bit.
func BuildUniform(mesher Mesher, box BoxSpec, nthreads int, jitterSeed int64) (*Mesh, error) {
	spec := MeshSpec{
		Ndim:      box.Ndim,
		Points:    box.corners(),
		MaxVolume: box.MaxVolume,
		MinAngle:  20,
	}
	var res MeshResult
	var err error
	if box.Ndim == 2 {
		res, err = mesher.Triangulate(spec)
	} else {
		res, err = mesher.Tetrahedralize(spec)
	}
	if err != nil {
		return nil, err
	}
	if box.JitterFrac > 0 {
		jitterInterior(res.Coord, box, jitterSeed)
	}
	m := fromResult(box.Ndim, res)
	m.Derive(nthreads)
	return m, nil
}

// BuildRefinedZone is the "refined zone" construction mode: a
// rectangular/box sub-region (spec.md §4.1) populated with its own
// jittered regular lattice of seed nodes at spacing resolution/√2, fed
// to the Mesher both as embedded seed points (so a PSLG-aware external
// mesher such as Triangle/TetGen locally refines around them for
// free) and as an explicit RefineMin/RefineMax/RefineMaxVolume box (so
// the built-in structuredMesher, which only looks at Points' bounding
// box, still grades its own background lattice instead of silently
// degenerating to the uniform mode).
func BuildRefinedZone(mesher Mesher, box BoxSpec, refine BoxSpec, resolution float64, nthreads int, jitterSeed int64) (*Mesh, error) {
	zoneSeeds := refinedZoneLattice(refine, resolution, box.JitterFrac, jitterSeed+1)
	points := append(append([][]float64{}, box.corners()...), zoneSeeds...)
	spec := MeshSpec{
		Ndim:      box.Ndim,
		Points:    points,
		MaxVolume: box.MaxVolume,
		MinAngle:  20,
		Regions: []PointSpec{
			{X: centroidOf(refine), MaxVolume: refine.MaxVolume},
		},
		RefineMin:       boxMin(refine),
		RefineMax:       boxMax(refine),
		RefineMaxVolume: refine.MaxVolume,
	}
	var res MeshResult
	var err error
	if box.Ndim == 2 {
		res, err = mesher.Triangulate(spec)
	} else {
		res, err = mesher.Tetrahedralize(spec)
	}
	if err != nil {
		return nil, err
	}
	if box.JitterFrac > 0 {
		jitterInterior(res.Coord, box, jitterSeed)
	}
	m := fromResult(box.Ndim, res)
	m.Derive(nthreads)
	return m, nil
}

// refinedZoneLattice builds the seed lattice spec.md §4.1 requires for
// the refined-zone mode: a regular lattice at spacing resolution/√2
// filling zone, each node displaced by 0.1·±uniform(0.5)·spacing per
// axis. Unlike jitterInterior (which preserves the outer domain
// boundary of an already-built mesh), every lattice node here is a
// fresh interior seed, so all of them are jittered.
func refinedZoneLattice(zone BoxSpec, resolution, jitterFrac float64, seed int64) [][]float64 {
	if resolution <= 0 {
		return nil
	}
	spacing := resolution / math.Sqrt2
	if jitterFrac <= 0 {
		jitterFrac = 0.1
	}
	amp := jitterFrac * spacing
	rng := rand.New(rand.NewSource(seed))

	axis := func(lo, hi float64) []float64 {
		n := maxInt(2, int(math.Round((hi-lo)/spacing))+1)
		pts := make([]float64, n)
		for i := range pts {
			pts[i] = lo + float64(i)*(hi-lo)/float64(n-1)
		}
		return pts
	}
	jitter := func() float64 { return amp * (rng.Float64() - 0.5) }

	xs, ys := axis(zone.Xmin, zone.Xmax), axis(zone.Ymin, zone.Ymax)
	var pts [][]float64
	if zone.Ndim == 2 {
		for _, y := range ys {
			for _, x := range xs {
				pts = append(pts, []float64{x + jitter(), y + jitter()})
			}
		}
		return pts
	}
	zs := axis(zone.Zmin, zone.Zmax)
	for _, z := range zs {
		for _, y := range ys {
			for _, x := range xs {
				pts = append(pts, []float64{x + jitter(), y + jitter(), z + jitter()})
			}
		}
	}
	return pts
}

func boxMin(b BoxSpec) []float64 {
	if b.Ndim == 2 {
		return []float64{b.Xmin, b.Ymin}
	}
	return []float64{b.Xmin, b.Ymin, b.Zmin}
}

func boxMax(b BoxSpec) []float64 {
	if b.Ndim == 2 {
		return []float64{b.Xmax, b.Ymax}
	}
	return []float64{b.Xmax, b.Ymax, b.Zmax}
}

// BuildFromPolyfile is the "polyfile" construction mode: the caller
// supplies an already-parsed boundary polygon (points plus flagged
// facets), and this function forwards it to the Mesher
// unchanged. Loading and parsing the polyfile format itself is an
// inp/ concern (see inp/polyfile.go), not mesh's.
func BuildFromPolyfile(mesher Mesher, ndim int, points [][]float64, facets []BoundaryFacetSpec, maxVolume, minAngle float64, nthreads int) (*Mesh, error) {
	spec := MeshSpec{
		Ndim:      ndim,
		Points:    points,
		Facets:    facets,
		MaxVolume: maxVolume,
		MinAngle:  minAngle,
	}
	var res MeshResult
	var err error
	if ndim == 2 {
		res, err = mesher.Triangulate(spec)
	} else {
		res, err = mesher.Tetrahedralize(spec)
	}
	if err != nil {
		return nil, err
	}
	m := fromResult(ndim, res)
	m.Derive(nthreads)
	return m, nil
}

func fromResult(ndim int, res MeshResult) *Mesh {
	m := &Mesh{
		Ndim:         ndim,
		Coord:        res.Coord,
		Connectivity: res.Connectivity,
		Segment:      res.Segment,
		Segflag:      res.Segflag,
	}
	if len(m.Connectivity) == 0 {
		chk.Panic("mesh: build produced an empty element set")
	}
	return m
}

func centroidOf(b BoxSpec) []float64 {
	if b.Ndim == 2 {
		return []float64{(b.Xmin + b.Xmax) / 2, (b.Ymin + b.Ymax) / 2}
	}
	return []float64{(b.Xmin + b.Xmax) / 2, (b.Ymin + b.Ymax) / 2, (b.Zmin + b.Zmax) / 2}
}

// jitterInterior displaces every node strictly inside the box by up to
// JitterFrac of the box's nominal element spacing, leaving boundary
// nodes (on any face) untouched so the domain outline is preserved.
// Grounded on "0.1 * uniform(-0.5,0.5) * spacing" rule.
func jitterInterior(coord [][]float64, box BoxSpec, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	spacing := boxSpacing(box)
	amp := box.JitterFrac * spacing
	for _, c := range coord {
		if onBoundary(c, box) {
			continue
		}
		for k := range c {
			c[k] += amp * (rng.Float64() - 0.5)
		}
	}
}

func boxSpacing(box BoxSpec) float64 {
	if box.Ndim == 2 {
		area := (box.Xmax - box.Xmin) * (box.Ymax - box.Ymin)
		n := area / box.MaxVolume
		if n <= 0 {
			return box.Xmax - box.Xmin
		}
		return (box.Xmax - box.Xmin) / n
	}
	vol := (box.Xmax - box.Xmin) * (box.Ymax - box.Ymin) * (box.Zmax - box.Zmin)
	n := vol / box.MaxVolume
	if n <= 0 {
		return box.Xmax - box.Xmin
	}
	return (box.Xmax - box.Xmin) / n
}

func onBoundary(c []float64, box BoxSpec) bool {
	const tol = 1e-9
	if abs(c[0]-box.Xmin) < tol || abs(c[0]-box.Xmax) < tol {
		return true
	}
	if abs(c[1]-box.Ymin) < tol || abs(c[1]-box.Ymax) < tol {
		return true
	}
	if box.Ndim == 3 && (abs(c[2]-box.Zmin) < tol || abs(c[2]-box.Zmax) < tol) {
		return true
	}
	return false
}
