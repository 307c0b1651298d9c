// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

// MarkerData is the flattened marker-set payload stored in a
// checkpoint: parallel arrays indexed by marker, since marker.Marker
// itself is not known to this package (persist must not import sim/
// marker to avoid a cycle — sim imports persist, not the reverse).
type MarkerData struct {
	Elem     []int
	Bary     [][]float64 // [nmarkers][ndim+1]
	Mat      []int
	Plstrain []float64
}

// CheckpointData is the set of named arrays written to `M.chkpt.NNNNNN`:
// the data needed to restart, excluding what is already in `.save`
// (velocity, temperature, stress, ...).
type CheckpointData struct {
	Segment              [][]int
	Segflag              []int
	VolumeOld            []float64
	Time                 float64
	CompensationPressure float64
	Markers              MarkerData
}

// WriteCheckpoint writes one `.chkpt.NNNNNN` frame.
func WriteCheckpoint(dir, modelname string, frame int, d CheckpointData) error {
	w, err := Create(chkptFilename(dir, modelname, frame))
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.WriteIntMatrix("segment", d.Segment); err != nil {
		return err
	}
	if err := w.WriteIntArray("segflag", d.Segflag); err != nil {
		return err
	}
	if err := w.WriteFloat64Array("volume_old", d.VolumeOld); err != nil {
		return err
	}
	if err := w.WriteFloat64Array("time compensation_pressure", []float64{d.Time, d.CompensationPressure}); err != nil {
		return err
	}
	if err := w.WriteIntArray("marker_elem", d.Markers.Elem); err != nil {
		return err
	}
	if err := w.WriteFloat64Matrix("marker_bary", d.Markers.Bary); err != nil {
		return err
	}
	if err := w.WriteIntArray("marker_mat", d.Markers.Mat); err != nil {
		return err
	}
	return w.WriteFloat64Array("marker_plstrain", d.Markers.Plstrain)
}

// ReadCheckpoint reads back a `.chkpt.NNNNNN` frame in full.
func ReadCheckpoint(dir, modelname string, frame int) (d CheckpointData, err error) {
	r, err := Open(chkptFilename(dir, modelname, frame))
	if err != nil {
		return
	}
	defer r.Close()
	if d.Segment, err = r.ReadIntMatrix("segment"); err != nil {
		return
	}
	if d.Segflag, err = r.ReadIntArray("segflag"); err != nil {
		return
	}
	if d.VolumeOld, err = r.ReadFloat64Array("volume_old"); err != nil {
		return
	}
	var tc []float64
	if tc, err = r.ReadFloat64Array("time compensation_pressure"); err != nil {
		return
	}
	d.Time, d.CompensationPressure = tc[0], tc[1]
	if d.Markers.Elem, err = r.ReadIntArray("marker_elem"); err != nil {
		return
	}
	if d.Markers.Bary, err = r.ReadFloat64Matrix("marker_bary"); err != nil {
		return
	}
	if d.Markers.Mat, err = r.ReadIntArray("marker_mat"); err != nil {
		return
	}
	d.Markers.Plstrain, err = r.ReadFloat64Array("marker_plstrain")
	return
}
