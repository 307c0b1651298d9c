// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const sampleConfig = `{
  "sim": {"modelname": "box2d", "max_steps": 100, "max_time_in_yr": 1e6},
  "mesh": {"meshing_option": 1, "xlength": 10000, "ylength": 5000, "resolution": 500},
  "control": {"gravity": 10, "dt_fraction": 0.5},
  "bc": {"vbc_x0": 2, "vbc_val_x0": -1e-9, "vbc_x1": 2, "vbc_val_x1": 1e-9},
  "mat": {"rheol_type": 7, "nmat": 2,
    "rho0": [2700, 3300], "alpha": [3e-5, 3e-5],
    "bulk_modulus": [5e10, 1.3e11], "shear_modulus": [3e10, 6e10],
    "visc_exponent": [3, 3], "visc_coefficient": [1e20, 1e20], "visc_activation_energy": [0, 0],
    "heat_capacity": [1000, 1000], "therm_cond": [2.5, 3.0],
    "pls0": [0, 0], "pls1": [0.5, 0.5],
    "cohesion0": [4e7, 4e7], "cohesion1": [4e6, 4e6],
    "friction_angle0": [30, 30], "friction_angle1": [10, 10],
    "dilation_angle0": [0, 0], "dilation_angle1": [0, 0]},
  "markers": {"markers_per_element": 9}
}`

func writeTempConfig(tst *testing.T, content string) string {
	f, err := os.CreateTemp(tst.TempDir(), "cfg-*.json")
	if err != nil {
		tst.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		tst.Fatalf("WriteString: %v", err)
	}
	return f.Name()
}

func TestReadConfigPopulatesSections(tst *testing.T) {
	chk.PrintTitle("ReadConfigPopulatesSections")

	path := writeTempConfig(tst, sampleConfig)
	cfg, err := ReadConfig(path)
	if err != nil {
		tst.Fatalf("ReadConfig failed: %v", err)
	}
	if cfg.Sim.Modelname != "box2d" {
		tst.Fatalf("expected modelname box2d, got %q", cfg.Sim.Modelname)
	}
	if cfg.Mat.Nmat != 2 || len(cfg.Mat.Rho0) != 2 {
		tst.Fatalf("expected nmat=2 with 2 rho0 entries, got nmat=%d len(rho0)=%d", cfg.Mat.Nmat, len(cfg.Mat.Rho0))
	}
	if cfg.Markers.MarkersPerElement != 9 {
		tst.Fatalf("expected markers_per_element=9, got %d", cfg.Markers.MarkersPerElement)
	}
	if cfg.Sim.CheckpointFrameInterval != 1 {
		tst.Fatalf("expected default checkpoint_frame_interval=1, got %d", cfg.Sim.CheckpointFrameInterval)
	}
}

func TestReadConfigRejectsBadNmat(tst *testing.T) {
	chk.PrintTitle("ReadConfigRejectsBadNmat")

	bad := `{"sim": {"modelname": "x"}, "mat": {"nmat": 2, "rho0": [1,2,3]}}`
	path := writeTempConfig(tst, bad)
	if _, err := ReadConfig(path); err == nil {
		tst.Fatalf("expected an error for mismatched nmat vs rho0 length")
	}
}

func TestReadConfigRejectsMissingModelname(tst *testing.T) {
	chk.PrintTitle("ReadConfigRejectsMissingModelname")

	bad := `{"mat": {"nmat": 1}}`
	path := writeTempConfig(tst, bad)
	if _, err := ReadConfig(path); err == nil {
		tst.Fatalf("expected an error for missing modelname")
	}
}

func TestReadConfigRejectsPolyfileWithoutFilename(tst *testing.T) {
	chk.PrintTitle("ReadConfigRejectsPolyfileWithoutFilename")

	bad := `{"sim": {"modelname": "x"}, "mesh": {"meshing_option": 90}, "mat": {"nmat": 1}}`
	path := writeTempConfig(tst, bad)
	if _, err := ReadConfig(path); err == nil {
		tst.Fatalf("expected an error for polyfile option without poly_filename")
	}
}
