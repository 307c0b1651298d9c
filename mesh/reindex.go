// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "sort"

// Reindex reorders nodes and elements by the linear score
// w = x - eps*z (eps = 1e-6*xlength/zlength) to improve cache
// locality, and rewrites Connectivity/Segment accordingly. It is only
// meant to be applied to the freshly constructed initial mesh: fields
// computed before reindexing are not preserved.
func (o *Mesh) Reindex(xlength, zlength float64) {
	nnode, nelem, nseg := o.Nnode(), o.Nelem(), o.Nseg()

	eps := 1.0
	if zlength != 0 {
		eps = 1e-6 * xlength / zlength
	}

	zIdx := o.Ndim - 1
	wn := make([]float64, nnode)
	for i, c := range o.Coord {
		wn[i] = c[0] - eps*c[zIdx]
	}

	we := make([]float64, nelem)
	for e, conn := range o.Connectivity {
		s := 0.0
		for _, n := range conn {
			s += wn[n]
		}
		we[e] = s
	}

	ndIdx := sortIndex(wn)
	elIdx := sortIndex(we)

	// old node id -> new node id
	newOf := make([]int, nnode)
	for newID, oldID := range ndIdx {
		newOf[oldID] = newID
	}

	coord2 := make([][]float64, nnode)
	for i, oldID := range ndIdx {
		coord2[i] = o.Coord[oldID]
	}
	o.Coord = coord2

	conn2 := make([][]int, nelem)
	for i, oldID := range elIdx {
		old := o.Connectivity[oldID]
		nc := make([]int, len(old))
		for j, k := range old {
			nc[j] = newOf[k]
		}
		conn2[i] = nc
	}
	o.Connectivity = conn2

	seg2 := make([][]int, nseg)
	for i, seg := range o.Segment {
		ns := make([]int, len(seg))
		for j, k := range seg {
			ns[j] = newOf[k]
		}
		seg2[i] = ns
	}
	o.Segment = seg2
}

// sortIndex returns the permutation that would sort w ascending: if
// idx[i] = k, the i-th smallest value of w is w[k].
func sortIndex(w []float64) []int {
	idx := make([]int, len(w))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return w[idx[a]] < w[idx[b]] })
	return idx
}
