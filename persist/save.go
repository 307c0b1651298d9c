// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import "fmt"

// SaveData is the set of named arrays written to `M.save.NNNNNN`:
// full-field snapshots for replay/visualization.
type SaveData struct {
	Coordinate   [][]float64
	Connectivity [][]int
	Velocity     [][]float64
	Temperature  []float64
	StrainRate   [][]float64
	Strain       [][]float64
	Stress       [][]float64
	PlasticStrain []float64
	MeshQuality  []float64
	Force        [][]float64
}

// saveFilename formats `M.save.NNNNNN` with a zero-padded 6-digit frame.
func saveFilename(dir, modelname string, frame int) string {
	return fmt.Sprintf("%s/%s.save.%06d", dir, modelname, frame)
}

// chkptFilename formats `M.chkpt.NNNNNN`.
func chkptFilename(dir, modelname string, frame int) string {
	return fmt.Sprintf("%s/%s.chkpt.%06d", dir, modelname, frame)
}

// WriteSave writes one `.save.NNNNNN` frame.
func WriteSave(dir, modelname string, frame int, d SaveData) error {
	w, err := Create(saveFilename(dir, modelname, frame))
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.WriteFloat64Matrix("coordinate", d.Coordinate); err != nil {
		return err
	}
	if err := w.WriteIntMatrix("connectivity", d.Connectivity); err != nil {
		return err
	}
	if err := w.WriteFloat64Matrix("velocity", d.Velocity); err != nil {
		return err
	}
	if err := w.WriteFloat64Array("temperature", d.Temperature); err != nil {
		return err
	}
	if err := w.WriteFloat64Matrix("strain-rate", d.StrainRate); err != nil {
		return err
	}
	if err := w.WriteFloat64Matrix("strain", d.Strain); err != nil {
		return err
	}
	if err := w.WriteFloat64Matrix("stress", d.Stress); err != nil {
		return err
	}
	if err := w.WriteFloat64Array("plastic strain", d.PlasticStrain); err != nil {
		return err
	}
	if err := w.WriteFloat64Array("mesh quality", d.MeshQuality); err != nil {
		return err
	}
	return w.WriteFloat64Matrix("force", d.Force)
}

// ReadSave reads back a `.save.NNNNNN` frame in full.
func ReadSave(dir, modelname string, frame int) (d SaveData, err error) {
	r, err := Open(saveFilename(dir, modelname, frame))
	if err != nil {
		return
	}
	defer r.Close()
	if d.Coordinate, err = r.ReadFloat64Matrix("coordinate"); err != nil {
		return
	}
	if d.Connectivity, err = r.ReadIntMatrix("connectivity"); err != nil {
		return
	}
	if d.Velocity, err = r.ReadFloat64Matrix("velocity"); err != nil {
		return
	}
	if d.Temperature, err = r.ReadFloat64Array("temperature"); err != nil {
		return
	}
	if d.StrainRate, err = r.ReadFloat64Matrix("strain-rate"); err != nil {
		return
	}
	if d.Strain, err = r.ReadFloat64Matrix("strain"); err != nil {
		return
	}
	if d.Stress, err = r.ReadFloat64Matrix("stress"); err != nil {
		return
	}
	if d.PlasticStrain, err = r.ReadFloat64Array("plastic strain"); err != nil {
		return
	}
	if d.MeshQuality, err = r.ReadFloat64Array("mesh quality"); err != nil {
		return
	}
	d.Force, err = r.ReadFloat64Matrix("force")
	return
}
