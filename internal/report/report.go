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
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/srf/internal/srf"
)

// Write renders res in the given format: "text", "json" or "xml".
func Write(w io.Writer, format, filename string, res *srf.Result) error {
	switch format {
	case "text", "":
		return WriteText(w, res)
	case "json":
		return WriteJSON(w, res)
	case "xml":
		return WriteXML(w, filename, res)
	}
	return fmt.Errorf("unsupported report format %q", format)
}

// WriteText prints the header fields followed by a table of sweeps.
func WriteText(w io.Writer, res *srf.Result) error {
	md := res.Metadata

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Revision:\t%s\n", res.Revision)
	fmt.Fprintf(tw, "Bins per sweep:\t%d\n", md.BinsPerSweep)
	fmt.Fprintf(tw, "Bin size:\t%s s\n", formatFloat(md.BinSize))
	fmt.Fprintf(tw, "Offset:\t%s s\n", formatFloat(md.Offset))
	fmt.Fprintf(tw, "Tick duration:\t%s s\n", formatFloat(md.TickDuration))
	fmt.Fprintf(tw, "Sweeps:\t%d\n", len(res.Sweeps))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "SWEEP\tSTART (s)\tEVENTS\tEVENT TIMES (s)")
	for i, s := range res.Sweeps {
		times := make([]string, len(s.Events))
		for j, t := range s.Events {
			times[j] = fmt.Sprintf("%.6f", t)
		}
		fmt.Fprintf(tw, "%d\t%.6f\t%d\t%s\n", i, s.Start, len(s.Events), strings.Join(times, " "))
	}
	return tw.Flush()
}

type jsonMetadata struct {
	BinsPerSweep uint32  `json:"n_bins_per_sweep"`
	BinSize      float64 `json:"bin_size_sec"`
	Offset       float64 `json:"offset_sec"`
	TickDuration float64 `json:"base_tick_dt_sec"`
}

type jsonSweep struct {
	Start  float64   `json:"start_time_sec"`
	Events []float64 `json:"event_times_sec"`
}

type jsonResult struct {
	Revision string       `json:"revision"`
	Metadata jsonMetadata `json:"metadata"`
	Sweeps   []jsonSweep  `json:"sweeps"`
}

// WriteJSON encodes res as an indented JSON document.
func WriteJSON(w io.Writer, res *srf.Result) error {
	md := res.Metadata
	out := jsonResult{
		Revision: res.Revision.String(),
		Metadata: jsonMetadata{
			BinsPerSweep: md.BinsPerSweep,
			BinSize:      md.BinSize,
			Offset:       md.Offset,
			TickDuration: md.TickDuration,
		},
		Sweeps: make([]jsonSweep, len(res.Sweeps)),
	}
	for i, s := range res.Sweeps {
		events := s.Events
		if events == nil {
			events = []float64{}
		}
		out.Sweeps[i] = jsonSweep{Start: s.Start, Events: events}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
