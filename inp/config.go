// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the configuration record read from a JSON
// config file: the `sim`, `mesh`, `control`, `bc`, `ic`, `mat`,
// `markers` sections. Struct shape, the `SetDefault`/`PostProcess`
// pattern, and the JSON-via-gosl/io decoding idiom follow the same
// read-defaults-then-decode-then-validate shape used throughout this
// module's configuration handling.
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Sim holds simulation-control options.
type Sim struct {
	Modelname                 string  `json:"modelname"`
	MaxTimeInYr               float64 `json:"max_time_in_yr"`
	MaxSteps                  int     `json:"max_steps"`
	OutputTimeIntervalInYr    float64 `json:"output_time_interval_in_yr"`
	OutputStepInterval        int     `json:"output_step_interval"`
	OutputAveragedFields      int     `json:"output_averaged_fields"`
	CheckpointFrameInterval   int     `json:"checkpoint_frame_interval"`
	IsRestarting              bool    `json:"is_restarting"`
	RestartingFromModelname   string  `json:"restarting_from_modelname"`
	RestartingFromFrame       int     `json:"restarting_from_frame"`
	HasOutputDuringRemeshing  bool    `json:"has_output_during_remeshing"`
}

// SetDefault fills in the sim section's defaults.
func (o *Sim) SetDefault() {
	o.CheckpointFrameInterval = 1
	o.OutputStepInterval = 1000
}

// Meshing-option codes.
const (
	MeshUniform  = 1
	MeshRefined  = 2
	MeshPolyfile = 90
)

// Mesh holds mesh-construction options.
type Mesh struct {
	MeshingOption          int     `json:"meshing_option"`
	Xlength                float64 `json:"xlength"`
	Ylength                float64 `json:"ylength"`
	Zlength                float64 `json:"zlength"`
	Resolution             float64 `json:"resolution"`
	SmallestSize           float64 `json:"smallest_size"`
	LargestSize            float64 `json:"largest_size"`
	MinAngle               float64 `json:"min_angle"`
	MinTetAngle            float64 `json:"min_tet_angle"`
	MaxRatio               float64 `json:"max_ratio"`
	MinQuality             float64 `json:"min_quality"`
	QualityCheckStepInterval int   `json:"quality_check_step_interval"`
	RefinedZoneX           [2]float64 `json:"refined_zonex"`
	RefinedZoneY           [2]float64 `json:"refined_zoney"`
	RefinedZoneZ           [2]float64 `json:"refined_zonez"`
	PolyFilename           string  `json:"poly_filename"`
	RemeshingOption        int     `json:"remeshing_option"`
	MeshingVerbosity       int     `json:"meshing_verbosity"`
	TetgenOptlevel         int     `json:"tetgen_optlevel"`
}

// SetDefault fills in the mesh section's defaults.
func (o *Mesh) SetDefault() {
	o.MeshingOption = MeshUniform
	o.MinAngle = 20
	o.MinQuality = 0.3
	o.QualityCheckStepInterval = 100
}

// Control holds the explicit-dynamics control options.
type Control struct {
	Gravity             float64 `json:"gravity"`
	CharacteristicSpeed float64 `json:"characteristic_speed"`
	InertialScaling     float64 `json:"inertial_scaling"`
	DtFraction          float64 `json:"dt_fraction"`
	DampingFactor       float64 `json:"damping_factor"`
	RefPressureOption   int     `json:"ref_pressure_option"`
	SurfaceProcessOption int    `json:"surface_process_option"`
	SurfaceDiffusivity  float64 `json:"surface_diffusivity"`
	IsQuasiStatic       bool    `json:"is_quasi_static"`
	HasThermalDiffusion bool    `json:"has_thermal_diffusion"`
}

// SetDefault fills in the control section's defaults.
func (o *Control) SetDefault() {
	o.DtFraction = 0.5
	o.DampingFactor = 0.8
}

// BC holds boundary-condition options. The
// six `vbc_*`/`vbc_val_*` pairs are mapped onto bc.Face[mesh.X0..Z1]
// by sim.Variables.buildBC when sim.New builds a run.
type BC struct {
	VbcX0 int `json:"vbc_x0"`
	VbcX1 int `json:"vbc_x1"`
	VbcY0 int `json:"vbc_y0"`
	VbcY1 int `json:"vbc_y1"`
	VbcZ0 int `json:"vbc_z0"`
	VbcZ1 int `json:"vbc_z1"`

	VbcValX0 float64 `json:"vbc_val_x0"`
	VbcValX1 float64 `json:"vbc_val_x1"`
	VbcValY0 float64 `json:"vbc_val_y0"`
	VbcValY1 float64 `json:"vbc_val_y1"`
	VbcValZ0 float64 `json:"vbc_val_z0"`
	VbcValZ1 float64 `json:"vbc_val_z1"`

	SurfaceTemperature float64 `json:"surface_temperature"`
	MantleTemperature  float64 `json:"mantle_temperature"`
	HasWrinklerFoundation bool `json:"has_wrinkler_foundation"`
	WrinklerDeltaRho   float64 `json:"wrinkler_delta_rho"`
	HasWaterLoading    bool    `json:"has_water_loading"`
}

// IC holds initial-condition options, plus the weak-zone and
// oceanic-plate-age geotherm fields.
type IC struct {
	MattypeOption int `json:"mattype_option"`

	WeakzoneOption       int     `json:"weakzone_option"`
	WeakzonePlstrain     float64 `json:"weakzone_plstrain"`
	WeakzoneAzimuth      float64 `json:"weakzone_azimuth"`
	WeakzoneInclination  float64 `json:"weakzone_inclination"`
	WeakzoneHalfwidth    float64 `json:"weakzone_halfwidth"`
	WeakzoneYMin         float64 `json:"weakzone_y_min"`
	WeakzoneYMax         float64 `json:"weakzone_y_max"`
	WeakzoneDepthMin     float64 `json:"weakzone_depth_min"`
	WeakzoneDepthMax     float64 `json:"weakzone_depth_max"`
	WeakzoneXcenter      float64 `json:"weakzone_xcenter"`
	WeakzoneYcenter      float64 `json:"weakzone_ycenter"`
	WeakzoneZcenter      float64 `json:"weakzone_zcenter"`
	WeakzoneXsemiAxis    float64 `json:"weakzone_xsemi_axis"`
	WeakzoneYsemiAxis    float64 `json:"weakzone_ysemi_axis"`
	WeakzoneZsemiAxis    float64 `json:"weakzone_zsemi_axis"`

	OceanicPlateAgeInYr float64 `json:"oceanic_plate_age_in_yr"`
}

// Mat holds the materials database: rheology bitmask, global clamps,
// and one vector per material parameter, indexed by material id (a
// struct-of-vectors layout rather than an array-of-structs, so it
// decodes directly from the JSON arrays a `.mat` config is expected to
// carry).
type Mat struct {
	RheolType         int     `json:"rheol_type"`
	PhaseChangeOption int     `json:"phase_change_option"`
	Nmat              int     `json:"nmat"`
	ViscMin           float64 `json:"visc_min"`
	ViscMax           float64 `json:"visc_max"`
	TensionMax        float64 `json:"tension_max"`
	ThermDiffMax      float64 `json:"therm_diff_max"`

	Rho0  []float64 `json:"rho0"`
	Alpha []float64 `json:"alpha"`

	BulkModulus  []float64 `json:"bulk_modulus"`
	ShearModulus []float64 `json:"shear_modulus"`

	ViscExponent         []float64 `json:"visc_exponent"`
	ViscCoefficient      []float64 `json:"visc_coefficient"`
	ViscActivationEnergy []float64 `json:"visc_activation_energy"`

	HeatCapacity []float64 `json:"heat_capacity"`
	ThermCond    []float64 `json:"therm_cond"`

	Pls0           []float64 `json:"pls0"`
	Pls1           []float64 `json:"pls1"`
	Cohesion0      []float64 `json:"cohesion0"`
	Cohesion1      []float64 `json:"cohesion1"`
	FrictionAngle0 []float64 `json:"friction_angle0"`
	FrictionAngle1 []float64 `json:"friction_angle1"`
	DilationAngle0 []float64 `json:"dilation_angle0"`
	DilationAngle1 []float64 `json:"dilation_angle1"`

	// per-material phase-change rule, consulted every 10th step when
	// phase_change_option != 0: material m becomes PhaseChangeTargetMat[m]
	// once the hosting element's temperature and pressure both clear
	// their trigger (a trigger <= 0 is not checked).
	PhaseChangeTempTrigger     []float64 `json:"phase_change_temp_trigger"`
	PhaseChangePressureTrigger []float64 `json:"phase_change_pressure_trigger"`
	PhaseChangeTargetMat       []int     `json:"phase_change_target_mat"`
}

// SetDefault fills in the mat section's defaults.
func (o *Mat) SetDefault() {
	o.ViscMin = 1e18
	o.ViscMax = 1e24
}

// validate checks nmat is consistent with every per-material vector.
func (o *Mat) validate() error {
	check := func(name string, v []float64) error {
		if len(v) != 0 && len(v) != o.Nmat {
			return chk.Err("inp: mat.%s has %d entries, want nmat=%d", name, len(v), o.Nmat)
		}
		return nil
	}
	for name, v := range map[string][]float64{
		"rho0": o.Rho0, "alpha": o.Alpha,
		"bulk_modulus": o.BulkModulus, "shear_modulus": o.ShearModulus,
		"visc_exponent": o.ViscExponent, "visc_coefficient": o.ViscCoefficient,
		"visc_activation_energy": o.ViscActivationEnergy,
		"heat_capacity":          o.HeatCapacity, "therm_cond": o.ThermCond,
		"pls0": o.Pls0, "pls1": o.Pls1,
		"cohesion0": o.Cohesion0, "cohesion1": o.Cohesion1,
		"friction_angle0": o.FrictionAngle0, "friction_angle1": o.FrictionAngle1,
		"dilation_angle0": o.DilationAngle0, "dilation_angle1": o.DilationAngle1,
	} {
		if err := check(name, v); err != nil {
			return err
		}
	}
	return nil
}

// InitMarkerOption codes for markers.init_marker_option.
// 0 is treated as "unset/legacy", decided in DESIGN.md to mean a
// regular (non-jittered) lattice in barycentric space.
const (
	InitMarkerRegular = 0
	InitMarkerRandom  = 1
)

// Markers holds the marker-seeding options.
type Markers struct {
	InitMarkerOption  int     `json:"init_marker_option"`
	MarkersPerElement int     `json:"markers_per_element"`
	InitMarkerSpacing float64 `json:"init_marker_spacing"`
}

// SetDefault fills in the markers section's defaults.
func (o *Markers) SetDefault() {
	o.MarkersPerElement = 8
}

// Config is the fully populated configuration record the core
// consumes: one struct per section, matching the section names below.
type Config struct {
	Sim     Sim     `json:"sim"`
	Mesh    Mesh    `json:"mesh"`
	Control Control `json:"control"`
	BC      BC      `json:"bc"`
	IC      IC      `json:"ic"`
	Mat     Mat     `json:"mat"`
	Markers Markers `json:"markers"`
}

// SetDefault fills in every section's defaults.
func (o *Config) SetDefault() {
	o.Sim.SetDefault()
	o.Mesh.SetDefault()
	o.Control.SetDefault()
	o.Mat.SetDefault()
	o.Markers.SetDefault()
}

// PostProcess validates cross-section consistency after decoding.
func (o *Config) PostProcess() error {
	if o.Sim.Modelname == "" {
		return chk.Err("inp: sim.modelname is required")
	}
	if o.Mat.Nmat < 1 {
		return chk.Err("inp: mat.nmat must be >= 1, got %d", o.Mat.Nmat)
	}
	if err := o.Mat.validate(); err != nil {
		return err
	}
	if o.Mesh.MeshingOption != MeshUniform && o.Mesh.MeshingOption != MeshRefined && o.Mesh.MeshingOption != MeshPolyfile {
		return chk.Err("inp: mesh.meshing_option %d is not one of {1,2,90}", o.Mesh.MeshingOption)
	}
	if o.Mesh.MeshingOption == MeshPolyfile && o.Mesh.PolyFilename == "" {
		return chk.Err("inp: mesh.poly_filename is required when meshing_option==90")
	}
	return nil
}

// ReadConfig reads and validates a JSON config file, mirroring
// inp.ReadMat/inp.Data's read-then-PostProcess pattern.
func ReadConfig(path string) (*Config, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("inp: cannot open config file %s: %v", path, err)
	}
	var cfg Config
	cfg.SetDefault()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, chk.Err("inp: cannot parse config file %s: %v", path, err)
	}
	if err := cfg.PostProcess(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
