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

	"github.com/ostafen/srf/internal/report"
	"github.com/ostafen/srf/internal/source"
	"github.com/ostafen/srf/internal/srf"
	"github.com/spf13/cobra"
)

func DefineDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode the sweeps of an SRF file",
		Long: `The 'decode' command prints the header of an SRF file and, for every sweep,
its start time and event times in seconds.
With --ticks it prints the raw sweep records instead: their offsets and tick counts.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunDecode,
	}

	cmd.Flags().StringP("format", "f", "text", "output format (text, json, xml)")
	cmd.Flags().Bool("ticks", false, "print raw tick counts instead of seconds (text format only)")
	return cmd
}

func RunDecode(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.cfg.ValidateFormat(); err != nil {
		return err
	}

	if ticks, _ := cmd.Flags().GetBool("ticks"); ticks {
		if s.cfg.Format != "text" {
			return fmt.Errorf("--ticks only supports the text format, got %q", s.cfg.Format)
		}
		return s.dumpRecords(cmd, args[0])
	}

	res, err := s.decode(args[0])
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), s.cfg.Format, args[0], res)
}

func (s *session) dumpRecords(cmd *cobra.Command, path string) error {
	open := source.Load
	if s.cfg.Mmap {
		open = source.Map
	}

	src, err := open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	md, err := srf.DecodeHeader(src.Bytes())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Bins per sweep:\t%d\n", md.BinsPerSweep)
	fmt.Fprintf(w, "Tick duration:\t%g s\n", md.TickDuration)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OFFSET\tSTART TICK\tTICKS")

	sc := srf.NewScanner(s.logger, src.Bytes(), s.cfg.DecoderRevision())
	for rec := range sc.Records() {
		ticks := rec.Ticks()
		parts := make([]string, len(ticks))
		for i, t := range ticks {
			parts[i] = fmt.Sprint(t)
		}
		fmt.Fprintf(w, "%#08x\t%d\t%s\n", rec.Offset, rec.StartTick(), strings.Join(parts, " "))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return w.Flush()
}
