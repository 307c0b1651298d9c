// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"runtime"

	"github.com/cpmech/gosl/chk"
)

// Derive (re)builds every index derived from Coord/Connectivity/
// Segment/Segflag: Bcflag, Bnodes, Bfacets, Support, Egroups, and the
// coordinate extents. It must be called once after construction and
// again after every remesh.
func (o *Mesh) Derive(nthreads int) {
	o.checkDims()
	o.computeExtents()
	o.buildBcflag()
	o.buildBnodes()
	o.buildBfacets()
	o.buildSupport()
	o.buildEgroups(nthreads)
}

func (o *Mesh) computeExtents() {
	o.Xmin, o.Xmax = o.Coord[0][0], o.Coord[0][0]
	o.Ymin, o.Ymax = o.Coord[0][1], o.Coord[0][1]
	if o.Ndim == 3 {
		o.Zmin, o.Zmax = o.Coord[0][2], o.Coord[0][2]
	}
	for _, c := range o.Coord {
		o.Xmin, o.Xmax = min(o.Xmin, c[0]), max(o.Xmax, c[0])
		o.Ymin, o.Ymax = min(o.Ymin, c[1]), max(o.Ymax, c[1])
		if o.Ndim == 3 {
			o.Zmin, o.Zmax = min(o.Zmin, c[2]), max(o.Zmax, c[2])
		}
	}
}

// buildBcflag OR-accumulates Segflag over each facet's nodes.
func (o *Mesh) buildBcflag() {
	o.Bcflag = make([]int, o.Nnode())
	for i, seg := range o.Segment {
		flag := o.Segflag[i]
		for _, n := range seg {
			o.Bcflag[n] |= flag
		}
	}
}

// buildBnodes scans Bcflag for each face bit.
func (o *Mesh) buildBnodes() {
	for f := range o.Bnodes {
		o.Bnodes[f] = o.Bnodes[f][:0]
	}
	for n, f := range o.Bcflag {
		for j, bit := range Faces {
			if f&bit != 0 {
				o.Bnodes[j] = append(o.Bnodes[j], n)
			}
		}
	}
}

// localFacetNodes returns, for a simplex of the given dimension, the
// local vertex indices making up local facet i (the facet opposite
// local vertex i).
func localFacetNodes(ndim, i int) []int {
	n := ndim + 1
	nodes := make([]int, 0, ndim)
	for v := 0; v < n; v++ {
		if v != i {
			nodes = append(nodes, v)
		}
	}
	return nodes
}

// buildBfacets scans each element's Ndim+1 local facets: a local facet
// belongs to face f iff the AND of its nodes' Bcflag is exactly a
// single bit (one of Faces).
func (o *Mesh) buildBfacets() {
	for f := range o.Bfacets {
		o.Bfacets[f] = o.Bfacets[f][:0]
	}
	allBits := X0 | X1 | Y0 | Y1 | Z0 | Z1
	n := o.NodesPerElem()
	for e, conn := range o.Connectivity {
		for i := 0; i < n; i++ {
			flag := allBits
			for _, lv := range localFacetNodes(o.Ndim, i) {
				flag &= o.Bcflag[conn[lv]]
			}
			if flag == 0 {
				continue
			}
			for j, bit := range Faces {
				if flag == bit {
					o.Bfacets[j] = append(o.Bfacets[j], Facet{Elem: e, LocalV: i})
					break
				}
			}
		}
	}
}

// buildSupport inverts Connectivity: Support[n] lists every element
// incident on node n.
func (o *Mesh) buildSupport() {
	o.Support = make([][]int, o.Nnode())
	for e, conn := range o.Connectivity {
		for _, n := range conn {
			o.Support[n] = append(o.Support[n], e)
		}
	}
}

// buildEgroups splits [0,nelem) into 2*nthreads contiguous bands.
//
// Bands are contiguous ranges over the element order as stored: sim's
// Init reorders the initial mesh with Reindex (see reindex.go), while a
// remeshed mesh keeps the order the mesher returned. Band boundaries
// alone do not guarantee disjointness of same-colored bands, so
// validateDisjoint is called immediately afterward to catch a
// violation loudly.
func (o *Mesh) buildEgroups(nthreads int) {
	if nthreads < 1 {
		nthreads = runtime.GOMAXPROCS(0)
	}
	ngroups := 2 * nthreads
	nelem := o.Nelem()
	if ngroups > nelem {
		ngroups = 2
		if nelem < 2 {
			ngroups = 1
		}
	}
	perGroup := nelem / ngroups
	o.Egroups = make([]int, 0, ngroups+1)
	for i := 0; i < ngroups; i++ {
		o.Egroups = append(o.Egroups, i*perGroup)
	}
	o.Egroups = append(o.Egroups, nelem)
	o.validateDisjoint()
}

// validateDisjoint checks that no node is touched by two bands of the
// same color (even-indexed bands among themselves, odd-indexed bands
// among themselves), panicking loudly if violated. The invariant is
// validated at every group creation, which in this module means after
// initial construction and after every remesh (see sim/remesh.go),
// since Derive rebuilds Egroups each time.
func (o *Mesh) validateDisjoint() {
	ngroups := len(o.Egroups) - 1
	for color := 0; color < 2 && color < ngroups; color++ {
		seen := make(map[int]int) // node -> band index that first claimed it
		for band := color; band < ngroups; band += 2 {
			for e := o.Egroups[band]; e < o.Egroups[band+1]; e++ {
				for _, n := range o.Connectivity[e] {
					if prev, ok := seen[n]; ok && prev != band {
						chk.Panic("mesh: egroups disjointness violated: node %d shared by bands %d and %d (color %d)", n, prev, band, color)
					}
					seen[n] = band
				}
			}
		}
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
