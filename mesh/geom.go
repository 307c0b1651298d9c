// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/gosl/la"

// Volume computes the unsigned volume (area in 2D) of the simplex with
// the given vertex coordinates, via the determinant of edge vectors
// divided by Ndim!.
func Volume(ndim int, x [][]float64) float64 {
	switch ndim {
	case 2:
		// area = 0.5 * |(x1-x0) x (x2-x0)|
		ax, ay := x[1][0]-x[0][0], x[1][1]-x[0][1]
		bx, by := x[2][0]-x[0][0], x[2][1]-x[0][1]
		return 0.5 * abs(ax*by-ay*bx)
	case 3:
		// volume = |det[x1-x0, x2-x0, x3-x0]| / 6
		a := [3]float64{x[1][0] - x[0][0], x[1][1] - x[0][1], x[1][2] - x[0][2]}
		b := [3]float64{x[2][0] - x[0][0], x[2][1] - x[0][1], x[2][2] - x[0][2]}
		c := [3]float64{x[3][0] - x[0][0], x[3][1] - x[0][1], x[3][2] - x[0][2]}
		det := a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])
		return abs(det) / 6.0
	}
	panic("mesh: Volume: ndim must be 2 or 3")
}

// SignedVolume is Volume without the absolute value; a negative result
// indicates an inverted (badly-wound) element.
func SignedVolume(ndim int, x [][]float64) float64 {
	switch ndim {
	case 2:
		ax, ay := x[1][0]-x[0][0], x[1][1]-x[0][1]
		bx, by := x[2][0]-x[0][0], x[2][1]-x[0][1]
		return 0.5 * (ax*by - ay*bx)
	case 3:
		a := [3]float64{x[1][0] - x[0][0], x[1][1] - x[0][1], x[1][2] - x[0][2]}
		b := [3]float64{x[2][0] - x[0][0], x[2][1] - x[0][1], x[2][2] - x[0][2]}
		c := [3]float64{x[3][0] - x[0][0], x[3][1] - x[0][1], x[3][2] - x[0][2]}
		return (a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])) / 6.0
	}
	panic("mesh: SignedVolume: ndim must be 2 or 3")
}

// Centroid returns the arithmetic mean of the simplex's vertices.
func Centroid(ndim int, x [][]float64) []float64 {
	c := make([]float64, ndim)
	n := float64(len(x))
	for _, v := range x {
		for j := 0; j < ndim; j++ {
			c[j] += v[j] / n
		}
	}
	return c
}

// ShapeGrads computes the spatial gradient of each of the Ndim+1 P1
// shape functions, constant over the element. For vertex i the
// gradient is the outward normal of the facet opposite i, scaled by
// 1/(Ndim*volume); dsdx/dsdy/dsdz collect the components.
//
// This is the Go rendition of the Jacobian-inverse algebra used by
// shp.Shape.CalcAtIp (dxdR, dRdx, G = dSdR*dRdx) specialised to the
// constant-gradient P1 case, where a direct geometric formula is both
// simpler and avoids a matrix inversion per element.
func ShapeGrads(ndim int, x [][]float64, volume float64) (dsdx, dsdy, dsdz []float64) {
	n := ndim + 1
	dsdx = make([]float64, n)
	dsdy = make([]float64, n)
	if ndim == 3 {
		dsdz = make([]float64, n)
	}
	switch ndim {
	case 2:
		// classic CST gradients: dN_i/dx = (y_j - y_k) / (2A), dN_i/dy = (x_k - x_j) / (2A)
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			k := (i + 2) % 3
			dsdx[i] = (x[j][1] - x[k][1]) / (2.0 * volume)
			dsdy[i] = (x[k][0] - x[j][0]) / (2.0 * volume)
		}
	case 3:
		// dN_i/dx_m = cofactor of row i, column m of the edge-vector
		// matrix, divided by 6*volume; computed via the Jacobian
		// inverse for clarity, mirroring shp.Shape.CalcAtIp.
		dxdR := la.MatAlloc(3, 3)
		for m := 0; m < 3; m++ {
			for j := 0; j < 3; j++ {
				dxdR[m][j] = x[j+1][m] - x[0][m]
			}
		}
		dRdx := la.MatAlloc(3, 3)
		_, err := la.MatInv(dRdx, dxdR, 1e-14)
		if err != nil {
			panic(err)
		}
		// dN_0/dx_m = -sum_j dRdx[j][m]; dN_{j+1}/dx_m = dRdx[j][m]
		for m := 0; m < 3; m++ {
			s := 0.0
			for j := 0; j < 3; j++ {
				s += dRdx[j][m]
			}
			setGrad(dsdx, dsdy, dsdz, 0, m, -s)
			for j := 0; j < 3; j++ {
				setGrad(dsdx, dsdy, dsdz, j+1, m, dRdx[j][m])
			}
		}
	}
	return
}

func setGrad(dsdx, dsdy, dsdz []float64, i, m int, v float64) {
	switch m {
	case 0:
		dsdx[i] = v
	case 1:
		dsdy[i] = v
	case 2:
		dsdz[i] = v
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
