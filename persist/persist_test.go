// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNamedArrayRoundTrip(tst *testing.T) {
	chk.PrintTitle("NamedArrayRoundTrip")

	dir := tst.TempDir()
	path := dir + "/test.bin"

	w, err := Create(path)
	if err != nil {
		tst.Fatalf("Create failed: %v", err)
	}
	floats := []float64{1.5, -2.25, 3.0}
	mat := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	ints := []int{7, -8, 9}
	if err := w.WriteFloat64Array("scalars", floats); err != nil {
		tst.Fatalf("write scalars: %v", err)
	}
	if err := w.WriteFloat64Matrix("coord", mat); err != nil {
		tst.Fatalf("write coord: %v", err)
	}
	if err := w.WriteIntArray("flags", ints); err != nil {
		tst.Fatalf("write flags: %v", err)
	}
	w.Close()

	r, err := Open(path)
	if err != nil {
		tst.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	gotFloats, err := r.ReadFloat64Array("scalars")
	if err != nil {
		tst.Fatalf("read scalars: %v", err)
	}
	chk.Vector(tst, "scalars", 1e-15, gotFloats, floats)

	gotMat, err := r.ReadFloat64Matrix("coord")
	if err != nil {
		tst.Fatalf("read coord: %v", err)
	}
	for i := range mat {
		chk.Vector(tst, "coord row", 1e-15, gotMat[i], mat[i])
	}

	gotInts, err := r.ReadIntArray("flags")
	if err != nil {
		tst.Fatalf("read flags: %v", err)
	}
	for i := range ints {
		if gotInts[i] != ints[i] {
			tst.Fatalf("flags[%d]: got %d want %d", i, gotInts[i], ints[i])
		}
	}

	if r.Has("nonexistent") {
		tst.Fatalf("Has reported a name that was never written")
	}
}

func TestInfoWriterAppendsFrames(tst *testing.T) {
	chk.PrintTitle("InfoWriterAppendsFrames")

	dir := tst.TempDir()
	w, err := OpenInfo(dir, "run1")
	if err != nil {
		tst.Fatalf("OpenInfo failed: %v", err)
	}
	if err := w.WriteFrame(0, 0, 0, 0, 0, 0, 10, 5, 4); err != nil {
		tst.Fatalf("WriteFrame: %v", err)
	}
	if err := w.WriteFrame(1, 100, 1.5e6, 0, 0, 0, 10, 5, 4); err != nil {
		tst.Fatalf("WriteFrame: %v", err)
	}
	w.Close()

	frames, err := ReadInfo(dir, "run1")
	if err != nil {
		tst.Fatalf("ReadInfo: %v", err)
	}
	if len(frames) != 2 {
		tst.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1].Steps != 100 {
		tst.Fatalf("expected steps=100, got %d", frames[1].Steps)
	}
}

func TestCheckpointRoundTrip(tst *testing.T) {
	chk.PrintTitle("CheckpointRoundTrip")

	dir := tst.TempDir()
	d := CheckpointData{
		Segment:              [][]int{{0, 1}, {1, 2}},
		Segflag:              []int{1, 2},
		VolumeOld:            []float64{0.5, 0.6},
		Time:                 123.456,
		CompensationPressure: 7.89,
		Markers: MarkerData{
			Elem:     []int{0, 0, 1},
			Bary:     [][]float64{{0.3, 0.3, 0.4}, {0.2, 0.4, 0.4}, {0.5, 0.25, 0.25}},
			Mat:      []int{0, 0, 1},
			Plstrain: []float64{0, 0.01, 0.02},
		},
	}
	if err := WriteCheckpoint(dir, "run1", 5, d); err != nil {
		tst.Fatalf("WriteCheckpoint: %v", err)
	}
	got, err := ReadCheckpoint(dir, "run1", 5)
	if err != nil {
		tst.Fatalf("ReadCheckpoint: %v", err)
	}
	if got.Time != d.Time || got.CompensationPressure != d.CompensationPressure {
		tst.Fatalf("scalar mismatch: got %+v", got)
	}
	chk.Vector(tst, "volume_old", 1e-15, got.VolumeOld, d.VolumeOld)
	if len(got.Markers.Elem) != 3 {
		tst.Fatalf("expected 3 markers, got %d", len(got.Markers.Elem))
	}
}
