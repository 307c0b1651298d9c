// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the unstructured simplicial mesh container:
// node coordinates, element connectivity, boundary segments/facets,
// and the derived index structures (support, boundary flags, element
// groups) used by the explicit dynamics driver.
package mesh

import "github.com/cpmech/gosl/chk"

// boundary face bits.
const (
	X0 = 1 << iota
	X1
	Y0
	Y1
	Z0
	Z1
)

// Faces holds the bit for each of the (up to) six domain faces, in
// the fixed order used by bnodes/bfacets.
var Faces = [6]int{X0, X1, Y0, Y1, Z0, Z1}

// Mesh holds the topology and geometry of the current simplicial mesh.
//
// All relationships are stored as flat, integer-indexed slices (never
// pointers) so that remeshing can swap out whole arrays without
// leaving dangling cross references.
type Mesh struct {
	Ndim int // 2 or 3

	// primary data
	Coord        [][]float64 // [nnode][Ndim]
	Connectivity [][]int     // [nelem][Ndim+1]
	Segment      [][]int     // [nseg][Ndim]
	Segflag      []int       // [nseg] bitmask over Faces

	// derived indices, rebuilt by Derive()
	Bcflag  []int       // [nnode]
	Bnodes  [6][]int    // per-face node lists
	Bfacets [6][]Facet  // per-face (element,local-facet) lists
	Support [][]int     // [nnode] -> incident elements
	Egroups []int       // 2T+1 band boundaries into [0,nelem)

	// extents, set by Derive()
	Xmin, Xmax float64
	Ymin, Ymax float64
	Zmin, Zmax float64
}

// Facet identifies a local facet of an element: the (Ndim) vertices
// opposite local vertex LocalV on the simplex.
type Facet struct {
	Elem   int // element index
	LocalV int // local facet index == local vertex opposite it
}

// Nnode returns the number of nodes.
func (o *Mesh) Nnode() int { return len(o.Coord) }

// Nelem returns the number of elements.
func (o *Mesh) Nelem() int { return len(o.Connectivity) }

// Nseg returns the number of boundary segments/facets.
func (o *Mesh) Nseg() int { return len(o.Segment) }

// NSTR returns the number of independent (Voigt) stress components.
func (o *Mesh) NSTR() int {
	if o.Ndim == 2 {
		return 3
	}
	return 6
}

// NodesPerElem returns Ndim+1, the simplex vertex count.
func (o *Mesh) NodesPerElem() int { return o.Ndim + 1 }

// checkDims panics if the mesh is inconsistent; called after
// construction and after every remesh.
func (o *Mesh) checkDims() {
	if o.Ndim != 2 && o.Ndim != 3 {
		chk.Panic("mesh: Ndim must be 2 or 3, got %d", o.Ndim)
	}
	for i, c := range o.Coord {
		if len(c) != o.Ndim {
			chk.Panic("mesh: node %d has %d coordinates, want %d", i, len(c), o.Ndim)
		}
	}
	for e, c := range o.Connectivity {
		if len(c) != o.Ndim+1 {
			chk.Panic("mesh: element %d has %d vertices, want %d", e, len(c), o.Ndim+1)
		}
	}
}
