// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/dynearthsol/mesh"
)

// polyfileRecord is the on-disk JSON shape of a poly_filename boundary
// description: a point list plus flagged boundary facets (edges in 2D,
// triangles in 3D). Only the outer boundary is read from file, since
// the interior triangulation/tetrahedralization is always delegated to
// a mesh.Mesher.
type polyfileRecord struct {
	Points [][]float64 `json:"points"`
	Facets []struct {
		Nodes []int `json:"nodes"`
		Flag  int   `json:"flag"`
	} `json:"facets"`
}

// ReadPolyfile loads a boundary polygon/polyhedron description for the
// poly_filename meshing mode: a point list and a set of flagged
// boundary facets, ready to hand to a mesh.Mesher via mesh.BuildFromPolyfile.
func ReadPolyfile(path string) ([][]float64, []mesh.BoundaryFacetSpec, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, nil, chk.Err("inp: cannot open poly file %s: %v", path, err)
	}
	var rec polyfileRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, nil, chk.Err("inp: cannot parse poly file %s: %v", path, err)
	}
	if len(rec.Points) == 0 {
		return nil, nil, chk.Err("inp: poly file %s has no points", path)
	}
	facets := make([]mesh.BoundaryFacetSpec, len(rec.Facets))
	for i, f := range rec.Facets {
		facets[i] = mesh.BoundaryFacetSpec{Nodes: f.Nodes, Flag: f.Flag}
	}
	return rec.Points, facets, nil
}
