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
	"fmt"
	"io"
	"log/slog"

	"github.com/ostafen/srf/internal/source"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Sweep is one recording trial.
type Sweep struct {
	Start  float64   // Trigger time in seconds from the file origin
	Events []float64 // Event times in seconds from the file origin, in file order
}

// Relative returns the event times measured from the sweep start.
func (s Sweep) Relative() []float64 {
	rel := make([]float64, len(s.Events))
	for i, t := range s.Events {
		rel[i] = t - s.Start
	}
	return rel
}

// Result is the decoded content of an SRF file.
type Result struct {
	Revision Revision
	Metadata Metadata
	Sweeps   []Sweep
}

// NumEvents returns the total number of events across all sweeps.
func (r *Result) NumEvents() int {
	n := 0
	for _, s := range r.Sweeps {
		n += len(s.Events)
	}
	return n
}

// Decoder decodes SRF buffers laid out according to a single revision.
// A Decoder keeps no state between calls.
type Decoder struct {
	logger *slog.Logger
	rev    Revision
}

func NewDecoder(logger *slog.Logger, rev Revision) *Decoder {
	if logger == nil {
		logger = discardLogger
	}
	return &Decoder{
		logger: logger,
		rev:    rev,
	}
}

// Decode decodes buf. It either returns a complete result or an error, never both.
// A valid header followed by no recognizable record yields an empty sweep list.
func (d *Decoder) Decode(buf []byte) (*Result, error) {
	if _, ok := revisionNames[d.rev]; !ok {
		return nil, fmt.Errorf("srf: unsupported revision %s", d.rev)
	}

	md, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}

	scale, err := NewTickScale(md.TickDuration)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("header decoded",
		"bins", md.BinsPerSweep,
		"bin_size", md.BinSize,
		"offset", md.Offset,
		"tick", md.TickDuration,
	)

	sweeps := make([]Sweep, 0)

	sc := NewScanner(d.logger, buf, d.rev)
	for rec := range sc.Records() {
		events := make([]float64, rec.NumTicks())
		for i, tick := range rec.Ticks() {
			events[i] = scale.Seconds(tick)
		}

		sweeps = append(sweeps, Sweep{
			Start:  scale.Seconds(rec.StartTick()),
			Events: events,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	d.logger.Debug("decode completed", "size", len(buf), "sweeps", len(sweeps))

	return &Result{
		Revision: d.rev,
		Metadata: md,
		Sweeps:   sweeps,
	}, nil
}

// Decode decodes buf using the current revision.
func Decode(buf []byte) (*Result, error) {
	return NewDecoder(nil, RevisionCurrent).Decode(buf)
}

// DecodeFile loads the file at path and decodes it. When useMmap is set the
// file is memory mapped instead of read.
func (d *Decoder) DecodeFile(path string, useMmap bool) (*Result, error) {
	open := source.Load
	if useMmap {
		open = source.Map
	}

	src, err := open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	d.logger.Debug("file loaded", "path", path, "size", src.Size(), "mmap", useMmap)

	res, err := d.Decode(src.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return res, nil
}
