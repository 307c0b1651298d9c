// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "math"

// Reason codes returned by BadQuality.
const (
	QualityOK         = 0
	QualityLowAngle   = 1
	QualityTinyVolume = 2
)

// ElemQuality computes a normalized quality scalar for the simplex
// with the given vertex coordinates and volume: the volume divided by
// that of a regular simplex whose edge is the element's RMS edge
// length, capped at 1.0. It is 1.0 for the equilateral case and -> 0
// as the element degenerates.
func ElemQuality(ndim int, x [][]float64, volume float64) float64 {
	if volume <= 0 {
		return 0
	}
	// sum of squared edge lengths, used as a cheap proxy for the
	// circumradius in both 2D and 3D.
	sumSq := 0.0
	n := len(x)
	nedges := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := 0.0
			for k := 0; k < ndim; k++ {
				dx := x[i][k] - x[j][k]
				d += dx * dx
			}
			sumSq += d
			nedges++
		}
	}
	rmsEdge := math.Sqrt(sumSq / float64(nedges))
	if ndim == 2 {
		// equilateral triangle of edge a has area sqrt(3)/4 * a^2
		ideal := math.Sqrt(3) / 4 * rmsEdge * rmsEdge
		return math.Min(volume/ideal, 1.0)
	}
	// regular tetrahedron of edge a has volume a^3/(6*sqrt(2))
	ideal := rmsEdge * rmsEdge * rmsEdge / (6 * math.Sqrt2)
	return math.Min(volume/ideal, 1.0)
}

// BadQuality reports whether any element's quality or volume has
// degraded below the given thresholds, returning the failing element
// index (or -1 if none) and a reason code.
//
// minQuality and minVolume (an absolute volume, which the caller
// derives as a fraction of the initial median volume) are supplied by
// the caller (sim package), which tracks the
// reference median; mesh itself does not remember simulation history.
func BadQuality(elquality []float64, volume []float64, minQuality, minVolume float64) (bad int, elem int) {
	for e, q := range elquality {
		if q < minQuality {
			return QualityLowAngle, e
		}
		if volume[e] < minVolume {
			return QualityTinyVolume, e
		}
	}
	return QualityOK, -1
}
