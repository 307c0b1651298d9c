// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dynearthsol/inp"
	"github.com/cpmech/dynearthsol/mesh"
)

// buildInitialMesh constructs the starting mesh according to the
// configured meshing_option: uniform box, box with a locally refined
// zone, or an externally supplied boundary polygon/polyhedron. All
// three modes delegate triangulation/tetrahedralization to v.Mesher.
func (v *Variables) buildInitialMesh() (*mesh.Mesh, error) {
	cfg := v.Cfg.Mesh
	box := mesh.BoxSpec{
		Ndim:       ndim(v.Cfg),
		Xmax:       cfg.Xlength,
		Ymax:       cfg.Ylength,
		Zmax:       cfg.Zlength,
		MaxVolume:  elementVolumeFromResolution(ndim(v.Cfg), cfg.Resolution),
		JitterFrac: 0.1,
	}
	switch cfg.MeshingOption {
	case inp.MeshUniform:
		m, err := mesh.BuildUniform(v.Mesher, box, v.Nthreads, 1)
		return checkMesherResult(m, err)

	case inp.MeshRefined:
		refine := box
		refine.Xmin, refine.Xmax = cfg.RefinedZoneX[0], cfg.RefinedZoneX[1]
		refine.Ymin, refine.Ymax = cfg.RefinedZoneY[0], cfg.RefinedZoneY[1]
		if box.Ndim == 3 {
			refine.Zmin, refine.Zmax = cfg.RefinedZoneZ[0], cfg.RefinedZoneZ[1]
		}
		zoneResolution := cfg.Resolution
		if cfg.SmallestSize > 0 {
			zoneResolution = cfg.SmallestSize
			refine.MaxVolume = elementVolumeFromResolution(box.Ndim, cfg.SmallestSize)
		}
		m, err := mesh.BuildRefinedZone(v.Mesher, box, refine, zoneResolution, v.Nthreads, 1)
		return checkMesherResult(m, err)

	case inp.MeshPolyfile:
		points, facets, err := inp.ReadPolyfile(cfg.PolyFilename)
		if err != nil {
			return nil, err
		}
		minAngle := cfg.MinAngle
		if box.Ndim == 3 {
			minAngle = cfg.MinTetAngle
		}
		m, err := mesh.BuildFromPolyfile(v.Mesher, box.Ndim, points, facets, box.MaxVolume, minAngle, v.Nthreads)
		return checkMesherResult(m, err)
	}
	chk.Panic("sim: unknown meshing_option %d", cfg.MeshingOption)
	return nil, nil
}

// checkMesherResult turns a mesher that silently returned zero
// elements into the fatal "mesher failure" error spec.md §7 requires,
// rather than letting an empty mesh flow into field allocation.
func checkMesherResult(m *mesh.Mesh, err error) (*mesh.Mesh, error) {
	if err != nil {
		return nil, err
	}
	if m.Nelem() == 0 {
		return nil, chk.Err("mesh: mesher returned zero elements")
	}
	return m, nil
}

// elementVolumeFromResolution turns the config's target edge length
// into a target simplex volume/area: an equilateral triangle of side r
// has area (sqrt(3)/4) r^2; a regular tetrahedron of side r has volume
// (r^3)/(6*sqrt(2)). Neither mesher enforces equilateral shape, so this
// is only a sizing hint, matching how resolution is used as a coarse
// target rather than an exact constraint.
func elementVolumeFromResolution(ndim int, resolution float64) float64 {
	if resolution <= 0 {
		resolution = 1
	}
	if ndim == 2 {
		return 0.4330127018922193 * resolution * resolution
	}
	return resolution * resolution * resolution / 8.485281374238571
}

// regionOf assigns the initial material id of element e. With
// mattype_option==0 every element starts as material 0; with
// mattype_option==1 materials are layered by depth, material index
// increasing with depth below the surface, clamped to [0,nmat).
func (v *Variables) regionOf(e int) int {
	if v.Cfg.IC.MattypeOption == 0 || v.Cfg.Mat.Nmat <= 1 {
		return 0
	}
	top := v.surfaceLevel()
	depth := top - v.elemCentroidVertical(e)
	span := v.domainVerticalSpan()
	if span <= 0 {
		return 0
	}
	frac := depth / span
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	mat := int(frac * float64(v.Cfg.Mat.Nmat))
	if mat >= v.Cfg.Mat.Nmat {
		mat = v.Cfg.Mat.Nmat - 1
	}
	return mat
}

// verticalAxis is the index of the "up" coordinate: Y in 2D, Z in 3D.
func (v *Variables) verticalAxis() int {
	if v.Mesh.Ndim == 3 {
		return 2
	}
	return 1
}

func (v *Variables) surfaceLevel() float64 {
	axis := v.verticalAxis()
	if axis == 2 {
		return v.Mesh.Zmax
	}
	return v.Mesh.Ymax
}

func (v *Variables) domainVerticalSpan() float64 {
	axis := v.verticalAxis()
	if axis == 2 {
		return v.Mesh.Zmax - v.Mesh.Zmin
	}
	return v.Mesh.Ymax - v.Mesh.Ymin
}

func (v *Variables) elemCentroidVertical(e int) float64 {
	axis := v.verticalAxis()
	conn := v.Mesh.Connectivity[e]
	sum := 0.0
	for _, n := range conn {
		sum += v.Mesh.Coord[n][axis]
	}
	return sum / float64(len(conn))
}
