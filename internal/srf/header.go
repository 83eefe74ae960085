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
package srf

import (
	"encoding/binary"
	"math"
)

const (
	HeaderSize = 48 // Minimum number of bytes holding the header fields
	DataStart  = 64 // Offset where the sweep records may begin
)

// Header field offsets.
const (
	binsPerSweepOff = 8
	binSizeOff      = 16
	offsetOff       = 24
	tickDurationOff = 40
)

// Metadata holds the global parameters stored in the file header.
type Metadata struct {
	BinsPerSweep uint32  // Number of histogram bins per sweep
	BinSize      float64 // Width of a histogram bin in seconds
	Offset       float64 // Time of the first bin edge relative to the sweep start, in seconds
	TickDuration float64 // Duration of one instrument tick in seconds
}

// DecodeHeader reads the header fields from the first HeaderSize bytes of buf.
func DecodeHeader(buf []byte) (Metadata, error) {
	if len(buf) < HeaderSize {
		return Metadata{}, &TruncatedHeaderError{Size: len(buf)}
	}

	return Metadata{
		BinsPerSweep: binary.LittleEndian.Uint32(buf[binsPerSweepOff:]),
		BinSize:      readFloat64(buf[binSizeOff:]),
		Offset:       readFloat64(buf[offsetOff:]),
		TickDuration: readFloat64(buf[tickDurationOff:]),
	}, nil
}

// BinEdges returns the BinsPerSweep+1 histogram edges described by the header,
// Offset + k*BinSize for k in [0, BinsPerSweep].
func (m Metadata) BinEdges() []float64 {
	edges := make([]float64, int(m.BinsPerSweep)+1)
	for k := range edges {
		edges[k] = m.Offset + float64(k)*m.BinSize
	}
	return edges
}

func readFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
