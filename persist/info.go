// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"fmt"
	"os"
)

// InfoWriter appends one line per frame to the `M.info` text ledger:
// `frame steps time x y z nnode nelem nseg`.
type InfoWriter struct {
	f *os.File
}

// OpenInfo opens (creating if needed, appending if present) the .info
// file for model name modelname in dir.
func OpenInfo(dir, modelname string) (*InfoWriter, error) {
	f, err := os.OpenFile(dir+"/"+modelname+".info", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &InfoWriter{f: f}, nil
}

// Close closes the underlying file.
func (w *InfoWriter) Close() error { return w.f.Close() }

// WriteFrame appends one frame's summary line. x,y,z are reserved
// summary scalars; pass zero when unused.
func (w *InfoWriter) WriteFrame(frame, steps int, t, x, y, z float64, nnode, nelem, nseg int) error {
	_, err := fmt.Fprintf(w.f, "%d %d %.16e %.16e %.16e %.16e %d %d %d\n",
		frame, steps, t, x, y, z, nnode, nelem, nseg)
	return err
}

// FrameInfo is one parsed line of a .info file.
type FrameInfo struct {
	Frame, Steps             int
	Time, X, Y, Z            float64
	Nnode, Nelem, Nseg       int
}

// ReadInfo parses every frame line of the .info file for modelname in
// dir, used by restart to locate the frame requested by
// `restarting_from_frame`.
func ReadInfo(dir, modelname string) ([]FrameInfo, error) {
	f, err := os.Open(dir + "/" + modelname + ".info")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var frames []FrameInfo
	for {
		var fi FrameInfo
		n, err := fmt.Fscanf(f, "%d %d %e %e %e %e %d %d %d\n",
			&fi.Frame, &fi.Steps, &fi.Time, &fi.X, &fi.Y, &fi.Z, &fi.Nnode, &fi.Nelem, &fi.Nseg)
		if n != 9 || err != nil {
			break
		}
		frames = append(frames, fi)
	}
	return frames, nil
}
