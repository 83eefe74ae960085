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
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/srf/internal/psth"
	"github.com/spf13/cobra"
)

const barWidth = 40

func DefinePSTHCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "psth <file>",
		Short: "Print the peri-stimulus time histogram of an SRF file",
		Long: `The 'psth' command bins the event times of every sweep, relative to the sweep start,
into a histogram. Bins default to the ones stored in the file header; --bin-size, --t-min
and --t-max override them.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunPSTH,
	}

	cmd.Flags().Float64("bin-size", 0, "bin width in seconds (default: header bin size)")
	cmd.Flags().Float64("t-min", 0, "start of the histogram range in seconds (default: header offset)")
	cmd.Flags().Float64("t-max", 0, "end of the histogram range in seconds (default: header range)")
	return cmd
}

func RunPSTH(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.decode(args[0])
	if err != nil {
		return err
	}

	h, err := psth.Compute(res, psth.Options{
		BinSize: s.cfg.PSTH.BinSize,
		TMin:    s.cfg.PSTH.TMin,
		TMax:    s.cfg.PSTH.TMax,
	})
	if err != nil {
		return err
	}
	sum := psth.Summarize(res)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Sweeps:\t%d\n", sum.Sweeps)
	fmt.Fprintf(w, "Events:\t%d (%d outside range)\n", sum.Events, h.Dropped)
	fmt.Fprintf(w, "Events per sweep:\t%.3f ± %.3f\n", sum.MeanEvents, sum.StdEvents)
	if idx, count := h.Peak(); idx >= 0 {
		fmt.Fprintf(w, "Peak bin:\t[%.6f, %.6f) %d events\n", h.Edges[idx], h.Edges[idx+1], int(count))
	}
	fmt.Fprintln(w)

	_, peak := h.Peak()
	rate := h.Rate()

	fmt.Fprintln(w, "FROM (s)\tTO (s)\tCOUNT\tRATE (1/s)\t")
	for i, c := range h.Counts {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("#", int(c/peak*barWidth))
		}
		fmt.Fprintf(w, "%.6f\t%.6f\t%d\t%.2f\t%s\n", h.Edges[i], h.Edges[i+1], int(c), rate[i], bar)
	}
	return w.Flush()
}
