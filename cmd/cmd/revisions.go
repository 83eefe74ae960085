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
	"encoding/hex"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/srf/internal/srf"
	"github.com/spf13/cobra"
)

func DefineRevisionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revisions",
		Short: "List the supported sentinel layouts",
		Long: `The 'revisions' command displays the sentinel signatures that mark sweep records for each supported file revision.
Bytes shown as ?? are not compared.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunRevisions,
	}
}

func RunRevisions(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tSIGNATURE")

	for _, rev := range srf.Revisions {
		sig, mask := rev.Pattern()

		var sb strings.Builder
		for i, b := range sig {
			if mask[i] {
				sb.WriteString(hex.EncodeToString([]byte{b}))
			} else {
				sb.WriteString("??")
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", rev, len(sig), sb.String())
	}
	return w.Flush()
}
