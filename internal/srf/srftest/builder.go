// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package srftest synthesizes SRF buffers for tests.
package srftest

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const (
	headerSize   = 64
	preambleSize = 12
)

// Header mirrors the header fields of an SRF file.
type Header struct {
	BinsPerSweep uint32
	BinSize      float64
	Offset       float64
	TickDuration float64
}

// Sweep is a raw sweep record: a start tick and its event ticks.
type Sweep struct {
	StartTick uint32
	Ticks     []uint32
}

// Builder assembles an SRF buffer record by record.
type Builder struct {
	buf []byte
}

// NewBuilder returns a builder holding a 64-byte header block.
func NewBuilder(hdr Header) *Builder {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[8:], hdr.BinsPerSweep)
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(hdr.BinSize))
	binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(hdr.Offset))
	binary.LittleEndian.PutUint64(buf[40:], math.Float64bits(hdr.TickDuration))
	return &Builder{buf: buf}
}

// Sweep appends a record with the current sentinel layout.
func (b *Builder) Sweep(startTick uint32, ticks ...uint32) *Builder {
	return b.record(startTick, Signature(), ticks)
}

// LegacySweep appends a record whose sentinel carries the given bytes in the
// two positions left unconstrained by the legacy layout.
func (b *Builder) LegacySweep(wildcard [2]byte, startTick uint32, ticks ...uint32) *Builder {
	sig := Signature()
	copy(sig[32:34], wildcard[:])
	return b.record(startTick, sig, ticks)
}

// Raw appends arbitrary bytes.
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Bytes returns a copy of the assembled buffer.
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf...)
}

// WriteFile writes the buffer to a file in a temporary directory and returns its path.
func (b *Builder) WriteFile(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.srf")
	if err := os.WriteFile(path, b.buf, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func (b *Builder) record(startTick uint32, sig []byte, ticks []uint32) *Builder {
	var preamble [preambleSize]byte
	binary.LittleEndian.PutUint32(preamble[:], startTick)

	b.buf = append(b.buf, preamble[:]...)
	b.buf = append(b.buf, sig...)
	for _, tick := range ticks {
		b.buf = binary.LittleEndian.AppendUint32(b.buf, tick)
	}
	return b
}

// Signature returns the 68-byte sentinel of the current layout.
func Signature() []byte {
	sig := make([]byte, 68)
	for i := 0; i < 16; i++ {
		sig[i] = 0xFF
		sig[len(sig)-1-i] = 0xFF
	}
	return sig
}

// Build assembles a buffer from a header and a list of sweeps.
func Build(hdr Header, sweeps ...Sweep) []byte {
	b := NewBuilder(hdr)
	for _, s := range sweeps {
		b.Sweep(s.StartTick, s.Ticks...)
	}
	return b.Bytes()
}
