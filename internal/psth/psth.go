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

// Package psth builds peri-stimulus time histograms from decoded sweeps.
package psth

import (
	"errors"
	"math"
	"sort"

	"github.com/ostafen/srf/internal/srf"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoBins         = errors.New("psth: histogram has no bins")
	ErrInvalidBinSize = errors.New("psth: bin size must be positive")
	ErrInvalidRange   = errors.New("psth: histogram range is not finite or increasing")
)

// Options overrides the binning stored in the file header.
// A zero value keeps the header binning. When TMax <= TMin the range ends
// where the header range ends, and starts at TMin if set or at the header offset.
type Options struct {
	BinSize float64
	TMin    float64
	TMax    float64
}

func (o Options) custom() bool {
	return o.BinSize > 0 || o.TMax > o.TMin || o.TMin != 0
}

// Histogram counts event times relative to the start of their sweep.
// Bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges   []float64
	Counts  []float64
	Sweeps  int // Number of sweeps contributing to the histogram
	Dropped int // Events falling outside the histogram range
}

// Compute builds the histogram of res.
func Compute(res *srf.Result, opts Options) (*Histogram, error) {
	edges, err := binEdges(res.Metadata, opts)
	if err != nil {
		return nil, err
	}

	lo, hi := edges[0], edges[len(edges)-1]

	var (
		rel     []float64
		dropped int
	)
	for _, sweep := range res.Sweeps {
		for _, t := range sweep.Relative() {
			if t < lo || t >= hi || math.IsNaN(t) {
				dropped++
				continue
			}
			rel = append(rel, t)
		}
	}
	sort.Float64s(rel)

	return &Histogram{
		Edges:   edges,
		Counts:  stat.Histogram(nil, edges, rel, nil),
		Sweeps:  len(res.Sweeps),
		Dropped: dropped,
	}, nil
}

func binEdges(md srf.Metadata, opts Options) ([]float64, error) {
	if !finite(md.Offset) || math.IsInf(md.BinSize, 0) {
		return nil, ErrInvalidRange
	}

	if !opts.custom() {
		if md.BinsPerSweep == 0 {
			return nil, ErrNoBins
		}
		if !(md.BinSize > 0) {
			return nil, ErrInvalidBinSize
		}
		return checkEdges(md.BinEdges())
	}

	binSize := opts.BinSize
	if binSize == 0 {
		binSize = md.BinSize
	}
	if !(binSize > 0) {
		return nil, ErrInvalidBinSize
	}

	tmin, tmax := opts.TMin, opts.TMax
	if tmax <= tmin {
		if tmin == 0 {
			tmin = md.Offset
		}
		tmax = md.Offset + float64(md.BinsPerSweep)*md.BinSize
	}
	if !finite(tmin) || !finite(tmax) || !finite(binSize) {
		return nil, ErrInvalidRange
	}

	n := int(math.Round((tmax - tmin) / binSize))
	if n < 1 {
		return nil, ErrNoBins
	}

	edges := make([]float64, n+1)
	for k := range edges {
		edges[k] = tmin + float64(k)*binSize
	}
	return checkEdges(edges)
}

// checkEdges rejects edges that are not finite and strictly increasing,
// which happens when the bin size vanishes against the magnitude of the offset.
func checkEdges(edges []float64) ([]float64, error) {
	for i, e := range edges {
		if !finite(e) || (i > 0 && e <= edges[i-1]) {
			return nil, ErrInvalidRange
		}
	}
	return edges, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NumBins returns the number of bins.
func (h *Histogram) NumBins() int {
	return len(h.Counts)
}

// Total returns the number of events counted in the histogram.
func (h *Histogram) Total() float64 {
	return floats.Sum(h.Counts)
}

// Peak returns the index and count of the fullest bin, or -1 when the
// histogram is empty.
func (h *Histogram) Peak() (int, float64) {
	if len(h.Counts) == 0 || h.Total() == 0 {
		return -1, 0
	}
	idx := floats.MaxIdx(h.Counts)
	return idx, h.Counts[idx]
}

// Rate converts counts into mean event rates (events per second per sweep).
func (h *Histogram) Rate() []float64 {
	rate := make([]float64, len(h.Counts))
	if h.Sweeps == 0 {
		return rate
	}
	for i, c := range h.Counts {
		rate[i] = c / (float64(h.Sweeps) * (h.Edges[i+1] - h.Edges[i]))
	}
	return rate
}

// Summary describes the distribution of events across sweeps.
type Summary struct {
	Sweeps     int
	Events     int
	MeanEvents float64 // Mean number of events per sweep
	StdEvents  float64 // Sample standard deviation of the events per sweep
	FirstStart float64 // Start time of the first sweep
	LastStart  float64 // Start time of the last sweep
}

func Summarize(res *srf.Result) Summary {
	s := Summary{
		Sweeps: len(res.Sweeps),
		Events: res.NumEvents(),
	}
	if s.Sweeps == 0 {
		return s
	}

	counts := make([]float64, s.Sweeps)
	for i, sweep := range res.Sweeps {
		counts[i] = float64(len(sweep.Events))
	}

	s.MeanEvents, s.StdEvents = stat.MeanStdDev(counts, nil)
	if s.Sweeps == 1 {
		s.StdEvents = 0
	}
	s.FirstStart = res.Sweeps[0].Start
	s.LastStart = res.Sweeps[s.Sweeps-1].Start
	return s
}
