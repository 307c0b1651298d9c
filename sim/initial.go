// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/cpmech/dynearthsol/marker"
)

// initialTemperature sets the nodal temperature field either from a
// half-space-cooling oceanic geotherm (when ic.oceanic_plate_age_in_yr
// is set) or a linear gradient between the surface and mantle Dirichlet
// values.
func (v *Variables) initialTemperature() {
	m, f := v.Mesh, v.Fields
	surface := v.surfaceLevel()
	span := v.domainVerticalSpan()
	axis := v.verticalAxis()

	age := v.Cfg.IC.OceanicPlateAgeInYr
	kappa := v.representativeDiffusivity()

	for n, c := range m.Coord {
		depth := surface - c[axis]
		if depth < 0 {
			depth = 0
		}
		var t float64
		if age > 0 && kappa > 0 {
			denom := 2 * math.Sqrt(kappa*age*YearToSec)
			t = v.BC.SurfaceTemperature + (v.BC.MantleTemperature-v.BC.SurfaceTemperature)*math.Erf(depth/denom)
		} else if span > 0 {
			frac := depth / span
			if frac > 1 {
				frac = 1
			}
			t = v.BC.SurfaceTemperature + (v.BC.MantleTemperature-v.BC.SurfaceTemperature)*frac
		} else {
			t = v.BC.SurfaceTemperature
		}
		f.Temperature[n] = t
	}
	v.BC.ApplyThermal(m.Bnodes, f.Temperature)
}

// representativeDiffusivity returns a single thermal diffusivity used
// to scale the half-space cooling geotherm, taken from material 0.
func (v *Variables) representativeDiffusivity() float64 {
	if len(v.Mat.Props) == 0 {
		return 0
	}
	return v.representativeDiffusivityOf(0)
}

// initialStress sets every element's stress tensor to an isotropic
// compressive pressure consistent with ref_pressure_option: 0 selects a
// lithostatic column using each element's own depth and local density;
// any other value leaves stress at zero (a "no initial stress" run).
// Compression is negative, matching the sign convention used throughout
// the constitutive update.
func (v *Variables) initialStress() {
	if v.Cfg.Control.RefPressureOption != 0 {
		return
	}
	m, f := v.Mesh, v.Fields
	surface := v.surfaceLevel()
	axis := v.verticalAxis()
	g := v.Cfg.Control.Gravity
	for e, conn := range m.Connectivity {
		depth := 0.0
		for _, n := range conn {
			depth += surface - m.Coord[n][axis]
		}
		depth /= float64(len(conn))
		if depth < 0 {
			depth = 0
		}
		rho := v.Mat.Rho(f.Mat[e], v.avgTemperature(conn))
		p := rho * g * depth
		nnorm := 3
		if m.Ndim == 2 {
			nnorm = 2
		}
		for k := 0; k < nnorm; k++ {
			f.Stress[e][k] = -p
		}
	}
}

func (v *Variables) avgTemperature(conn []int) float64 {
	sum := 0.0
	for _, n := range conn {
		sum += v.Fields.Temperature[n]
	}
	return sum / float64(len(conn))
}

// initialWeakZone seeds markers with an elevated plastic strain inside
// a planar (weakzone_option==1) or ellipsoidal (weakzone_option==2)
// region. Elements whose seeded markers fall in the region start
// pre-weakened so a shear band nucleates there instead of from
// numerical noise.
func (v *Variables) initialWeakZone() {
	ic := v.Cfg.IC
	if ic.WeakzoneOption == 0 {
		return
	}
	m := v.Mesh
	for i := range v.Markers.Markers {
		mk := &v.Markers.Markers[i]
		pos := marker.Physical(m.Ndim, mk.Bary, vertsOf(m.Connectivity[mk.Elem], m.Coord))
		in := false
		switch ic.WeakzoneOption {
		case 1:
			in = v.inPlanarWeakZone(pos)
		case 2:
			in = v.inEllipsoidalWeakZone(pos)
		}
		if in {
			mk.Plstrain = ic.WeakzonePlstrain
		}
	}
}

// inPlanarWeakZone reports whether pos lies within weakzone_halfwidth of
// an inclined plane through (x=domain-centered, y in [y_min,y_max]),
// oriented by weakzone_azimuth/weakzone_inclination (2D uses azimuth
// only, as a dip angle from vertical).
func (v *Variables) inPlanarWeakZone(pos []float64) bool {
	ic := v.Cfg.IC
	axis := v.verticalAxis()
	surface := v.surfaceLevel()
	depth := surface - pos[axis]
	if ic.WeakzoneDepthMax > 0 && (depth < ic.WeakzoneDepthMin || depth > ic.WeakzoneDepthMax) {
		return false
	}
	if v.Mesh.Ndim == 2 {
		dip := ic.WeakzoneAzimuth * math.Pi / 180
		// perpendicular distance from pos to a line through the domain
		// center inclined by dip from vertical.
		cx := (v.Mesh.Xmin + v.Mesh.Xmax) / 2
		dx := pos[0] - cx
		perp := dx*math.Cos(dip) - depth*math.Sin(dip)
		return math.Abs(perp) <= ic.WeakzoneHalfwidth
	}
	azimuth := ic.WeakzoneAzimuth * math.Pi / 180
	inclination := ic.WeakzoneInclination * math.Pi / 180
	cx := (v.Mesh.Xmin + v.Mesh.Xmax) / 2
	cy := (v.Mesh.Ymin + v.Mesh.Ymax) / 2
	dx, dy := pos[0]-cx, pos[1]-cy
	along := dx*math.Sin(azimuth) + dy*math.Cos(azimuth)
	perp := dx*math.Cos(azimuth) - dy*math.Sin(azimuth)
	planeOffset := depth * math.Tan(inclination)
	return math.Abs(perp-planeOffset) <= ic.WeakzoneHalfwidth && along >= ic.WeakzoneYMin && along <= ic.WeakzoneYMax
}

// inEllipsoidalWeakZone reports whether pos lies inside the ellipsoid
// centered at (weakzone_xcenter,weakzone_ycenter,weakzone_zcenter) with
// semi-axes (weakzone_xsemi_axis,weakzone_ysemi_axis,weakzone_zsemi_axis).
func (v *Variables) inEllipsoidalWeakZone(pos []float64) bool {
	ic := v.Cfg.IC
	dx := (pos[0] - ic.WeakzoneXcenter) / denomOr1(ic.WeakzoneXsemiAxis)
	sum := dx * dx
	if v.Mesh.Ndim == 2 {
		dy := (pos[1] - ic.WeakzoneYcenter) / denomOr1(ic.WeakzoneYsemiAxis)
		sum += dy * dy
	} else {
		dy := (pos[1] - ic.WeakzoneYcenter) / denomOr1(ic.WeakzoneYsemiAxis)
		dz := (pos[2] - ic.WeakzoneZcenter) / denomOr1(ic.WeakzoneZsemiAxis)
		sum += dy*dy + dz*dz
	}
	return sum <= 1
}

func denomOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
