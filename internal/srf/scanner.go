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
	"log/slog"
)

const (
	PreambleSize     = 12
	RecordHeaderSize = PreambleSize + SignatureSize
	ChunkSize        = 4 // Width of a tick count
)

// Record is the raw byte span of one sweep record.
// Preamble and Body alias the scanned buffer.
type Record struct {
	Offset   int    // Offset of the preamble in the buffer
	Preamble []byte // PreambleSize bytes preceding the signature
	Body     []byte // Event ticks, a multiple of ChunkSize bytes
}

// StartTick returns the raw sweep start tick stored in the preamble.
func (r Record) StartTick() uint32 {
	return binary.LittleEndian.Uint32(r.Preamble)
}

// NumTicks returns the number of event ticks in the body.
func (r Record) NumTicks() int {
	return len(r.Body) / ChunkSize
}

// Ticks returns the raw event ticks in file order.
func (r Record) Ticks() []uint32 {
	ticks := make([]uint32, r.NumTicks())
	for i := range ticks {
		ticks[i] = binary.LittleEndian.Uint32(r.Body[i*ChunkSize:])
	}
	return ticks
}

// Scanner splits the data region of an SRF buffer into sweep records.
//
// Records are anchored at ChunkSize-aligned offsets from DataStart: a record
// starts at pos when the signature is found at pos+PreambleSize. The body of a
// record extends to the next anchor found searching forward from the end of its
// signature, or to the end of the buffer.
type Scanner struct {
	logger *slog.Logger
	buf    []byte
	rev    Revision
	err    error
}

func NewScanner(logger *slog.Logger, buf []byte, rev Revision) *Scanner {
	if logger == nil {
		logger = discardLogger
	}
	return &Scanner{
		logger: logger,
		buf:    buf,
		rev:    rev,
	}
}

// Records iterates over the records in file order. Scanning stops at the
// first malformed record; check Err once the iteration is over.
func (sc *Scanner) Records() func(yield func(Record) bool) {
	return func(yield func(Record) bool) {
		sc.err = nil

		for pos := sc.nextAnchor(DataStart); pos >= 0; {
			bodyStart := pos + RecordHeaderSize

			next := sc.nextAnchor(bodyStart)
			end := next
			if next < 0 {
				end = len(sc.buf)
			}

			if (end-bodyStart)%ChunkSize != 0 {
				sc.err = &MalformedBodyError{Offset: pos, Length: end - bodyStart}
				return
			}

			rec := Record{
				Offset:   pos,
				Preamble: sc.buf[pos : pos+PreambleSize],
				Body:     sc.buf[bodyStart:end],
			}
			sc.logger.Debug("sweep record found", "offset", pos, "ticks", rec.NumTicks())

			if !yield(rec) {
				return
			}
			pos = next
		}
	}
}

// Err returns the error that stopped the last iteration, if any.
func (sc *Scanner) Err() error {
	return sc.err
}

// nextAnchor returns the first aligned offset >= from where a record is
// anchored, or -1.
func (sc *Scanner) nextAnchor(from int) int {
	for pos := from; pos+RecordHeaderSize <= len(sc.buf); pos += ChunkSize {
		if sc.rev.Matches(sc.buf, pos+PreambleSize) {
			return pos
		}
	}
	return -1
}
