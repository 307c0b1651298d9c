// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// PointSpec is one seed point fed to the mesher: a location, an
// optional material tag (for region seeds), and a maximum element
// size governing local refinement.
type PointSpec struct {
	X        []float64
	MatTag   int
	MaxVolume float64
}

// BoundaryFacetSpec is one input boundary facet (edge in 2D, triangle
// in 3D) with its domain-face flag.
type BoundaryFacetSpec struct {
	Nodes []int
	Flag  int
}

// MeshSpec is everything the core hands to an external mesher: the
// point list, the boundary facets with per-facet flag, region seeds,
// and the global sizing/quality controls forwarded verbatim — these
// thresholds are not part of the core's own logic.
type MeshSpec struct {
	Ndim         int
	Points       [][]float64
	Facets       []BoundaryFacetSpec
	Regions      []PointSpec
	MaxVolume    float64
	MinAngle     float64 // 2D
	MinTetAngle  float64 // 3D
	MaxRatio     float64 // 3D
	Verbosity    int
	TetgenOptLvl int

	// RefineMin/RefineMax/RefineMaxVolume describe a sub-box of local
	// refinement (spec.md's "refined zone" mode): non-nil RefineMin/Max
	// bound the sub-box and RefineMaxVolume is its target element size.
	// A PSLG-embedding external mesher gets the same effect for free
	// from the jittered seed points already present in Points; these
	// three fields exist so the built-in structuredMesher (which never
	// looks at individual Points, only their bounding box) can still
	// grade its background lattice instead of ignoring the zone.
	RefineMin       []float64
	RefineMax       []float64
	RefineMaxVolume float64
}

// MeshResult is what the mesher hands back: new, owned arrays.
type MeshResult struct {
	Coord        [][]float64
	Connectivity [][]int
	Segment      [][]int
	Segflag      []int
	// RegionOf, when non-nil, gives the region/material tag attributed
	// to each new element (e.g. by point-in-region containment),
	// consumed by marker seeding after a remesh.
	RegionOf []int
}

// Mesher is the external collaborator that turns a point/facet/region
// specification into a simplicial mesh. The core never triangulates
// or tetrahedralizes itself; it only consumes this interface. A real
// deployment links an external library (e.g. Triangle/TetGen) behind
// this seam. Two methods, matching the 2D/3D duality of the domain.
type Mesher interface {
	Triangulate(spec MeshSpec) (MeshResult, error)
	Tetrahedralize(spec MeshSpec) (MeshResult, error)
}

// structuredMesher is a concrete, deterministic Mesher that produces a
// simplex mesh by regular subdivision of the axis-aligned bounding box
// of the given points (the points themselves are not embedded), good enough to run the module
// standalone without linking a native triangulation library. It
// satisfies Mesher fully but is meant to be swappable: real runs with
// irregular domains or polyfile boundaries should supply a Mesher
// backed by an actual triangulation/tetrahedralization library.
type structuredMesher struct{}

// NewStructuredMesher returns the built-in default Mesher.
func NewStructuredMesher() Mesher {
	return &structuredMesher{}
}

// Triangulate builds a 2D mesh of 2 triangles per lattice cell over
// the bounding box of spec.Points (expected to be the four corners of
// a rectangle, or a jittered interior lattice plus corners).
func (o *structuredMesher) Triangulate(spec MeshSpec) (MeshResult, error) {
	return triangulateLattice(spec)
}

// Tetrahedralize builds a 3D mesh of 6 tetrahedra per lattice cell
// over the bounding box of spec.Points.
func (o *structuredMesher) Tetrahedralize(spec MeshSpec) (MeshResult, error) {
	return tetrahedralizeLattice(spec)
}
