// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package persist implements the on-disk layout: the `.info` text
// ledger and the `.save`/`.chkpt` binary named-array files. The
// named-array framing (NUL-padded name, element count, element width
// in bytes, raw little-endian payload) keeps persistence a thin,
// scoped encode/decode over arrays the caller owns, using a concrete
// binary layout rather than gob/json so checkpoints are bit-exact and
// readable by an external, language-agnostic visualizer. See DESIGN.md.
package persist

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
)

func toBits(v float64) uint64    { return math.Float64bits(v) }
func fromBits(b uint64) float64  { return math.Float64frombits(b) }

// nameWidth is the fixed width, in bytes, of a named-array record's
// NUL-padded name field.
const nameWidth = 32

// Writer appends named-array records to an open file in sequence.
type Writer struct {
	f *os.File
}

// Create creates (truncating) the named-array file at path for writing.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f}, nil
}

// Close closes the underlying file.
func (w *Writer) Close() error { return w.f.Close() }

// WriteFloat64Array writes one named array record for a flat []float64
// payload (element width 8).
func (w *Writer) WriteFloat64Array(name string, data []float64) error {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], toBits(v))
	}
	return w.writeRecord(name, len(data), 8, buf)
}

// WriteFloat64Matrix writes a [][]float64 as a flattened named array
// of width rowLen*8 per logical row (count == number of rows).
func (w *Writer) WriteFloat64Matrix(name string, data [][]float64) error {
	if len(data) == 0 {
		return w.writeRecord(name, 0, 0, nil)
	}
	rowLen := len(data[0])
	buf := make([]byte, 8*rowLen*len(data))
	for i, row := range data {
		for j, v := range row {
			off := (i*rowLen + j) * 8
			binary.LittleEndian.PutUint64(buf[off:], toBits(v))
		}
	}
	return w.writeRecord(name, len(data), 8*rowLen, buf)
}

// WriteIntMatrix writes a [][]int as a flattened named array of width
// rowLen*4 per logical row, each element a little-endian int32.
func (w *Writer) WriteIntMatrix(name string, data [][]int) error {
	if len(data) == 0 {
		return w.writeRecord(name, 0, 0, nil)
	}
	rowLen := len(data[0])
	buf := make([]byte, 4*rowLen*len(data))
	for i, row := range data {
		for j, v := range row {
			off := (i*rowLen + j) * 4
			binary.LittleEndian.PutUint32(buf[off:], uint32(int32(v)))
		}
	}
	return w.writeRecord(name, len(data), 4*rowLen, buf)
}

// WriteIntArray writes a flat []int named array, each element a
// little-endian int32.
func (w *Writer) WriteIntArray(name string, data []int) error {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v)))
	}
	return w.writeRecord(name, len(data), 4, buf)
}

func (w *Writer) writeRecord(name string, count, width int, payload []byte) error {
	if len(name) > nameWidth {
		chk.Panic("persist: array name %q exceeds %d bytes", name, nameWidth)
	}
	header := make([]byte, nameWidth+8)
	copy(header, name)
	binary.LittleEndian.PutUint32(header[nameWidth:], uint32(count))
	binary.LittleEndian.PutUint32(header[nameWidth+4:], uint32(width))
	if _, err := w.f.Write(header); err != nil {
		return err
	}
	_, err := w.f.Write(payload)
	return err
}

// Reader indexes every named-array record in a file by name, read
// once at Open time.
type Reader struct {
	f       *os.File
	entries map[string]entry
}

type entry struct {
	offset int64
	count  int
	width  int
}

// Open reads the full header table of the named-array file at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{f: f, entries: map[string]entry{}}
	var offset int64
	header := make([]byte, nameWidth+8)
	for {
		_, err := io.ReadFull(f, header)
		if err == io.EOF {
			break
		}
		if err != nil {
			f.Close()
			return nil, err
		}
		name := cstring(header[:nameWidth])
		count := int(binary.LittleEndian.Uint32(header[nameWidth:]))
		width := int(binary.LittleEndian.Uint32(header[nameWidth+4:]))
		offset += int64(len(header))
		r.entries[name] = entry{offset: offset, count: count, width: width}
		payload := int64(count) * int64(width)
		if _, err := f.Seek(payload, io.SeekCurrent); err != nil {
			f.Close()
			return nil, err
		}
		offset += payload
	}
	return r, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error { return r.f.Close() }

// ReadFloat64Array reads a flat []float64 named array.
func (r *Reader) ReadFloat64Array(name string) ([]float64, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, chk.Err("persist: array %q not found", name)
	}
	buf := make([]byte, e.count*e.width)
	if _, err := r.f.ReadAt(buf, e.offset); err != nil {
		return nil, err
	}
	out := make([]float64, e.count)
	for i := range out {
		out[i] = fromBits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return out, nil
}

// ReadFloat64Matrix reads a named array back into rows of rowLen
// float64s (rowLen = width/8).
func (r *Reader) ReadFloat64Matrix(name string) ([][]float64, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, chk.Err("persist: array %q not found", name)
	}
	if e.count == 0 {
		return nil, nil
	}
	rowLen := e.width / 8
	buf := make([]byte, e.count*e.width)
	if _, err := r.f.ReadAt(buf, e.offset); err != nil {
		return nil, err
	}
	out := make([][]float64, e.count)
	for i := range out {
		row := make([]float64, rowLen)
		for j := range row {
			off := (i*rowLen + j) * 8
			row[j] = fromBits(binary.LittleEndian.Uint64(buf[off:]))
		}
		out[i] = row
	}
	return out, nil
}

// ReadIntMatrix reads a named array back into rows of rowLen int32s
// widened to int (rowLen = width/4).
func (r *Reader) ReadIntMatrix(name string) ([][]int, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, chk.Err("persist: array %q not found", name)
	}
	if e.count == 0 {
		return nil, nil
	}
	rowLen := e.width / 4
	buf := make([]byte, e.count*e.width)
	if _, err := r.f.ReadAt(buf, e.offset); err != nil {
		return nil, err
	}
	out := make([][]int, e.count)
	for i := range out {
		row := make([]int, rowLen)
		for j := range row {
			off := (i*rowLen + j) * 4
			row[j] = int(int32(binary.LittleEndian.Uint32(buf[off:])))
		}
		out[i] = row
	}
	return out, nil
}

// ReadIntArray reads a flat []int named array (4-byte elements).
func (r *Reader) ReadIntArray(name string) ([]int, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, chk.Err("persist: array %q not found", name)
	}
	buf := make([]byte, e.count*e.width)
	if _, err := r.f.ReadAt(buf, e.offset); err != nil {
		return nil, err
	}
	out := make([]int, e.count)
	for i := range out {
		out[i] = int(int32(binary.LittleEndian.Uint32(buf[i*4:])))
	}
	return out, nil
}

// Has reports whether the file's header table contains an array with
// the given name, without reading its payload.
func (r *Reader) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
