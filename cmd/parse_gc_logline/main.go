// Copyright 2026 The netfilters Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// parse_gc_logline extracts named XML elements from the payloads of a
// GlobalCollect log read from standard input.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netfilters/netfilters/pkg/log"
	"github.com/netfilters/netfilters/pkg/logline"
	"github.com/netfilters/netfilters/private/app/flag"
)

func main() {
	executable := filepath.Base(os.Args[0])
	cmd := newParseGCLogline(executable)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newParseGCLogline(name string) *cobra.Command {
	var logFlags flag.LogFlags

	// Tags are arbitrary element names, so there are no subcommands that a
	// tag could be mistaken for.
	var cmd = &cobra.Command{
		Use:     name + " TAG [TAG...] < log",
		Short:   "Extract named XML elements from log lines",
		Example: fmt.Sprintf(`  %s COUNTRYCODE CURRENCYCODE AMOUNT EMAIL < gc.log`, name),
		Long: `'` + name + `' reads log lines from standard input and looks for an XML
payload between the markers <XML> and </XML>. For every line with a payload
it prints the text of the first element below the payload root with each
given tag name, separated by tabs and in the order of the arguments. A tag
that does not occur in the payload is printed as '-'. Lines without a payload
are skipped.

If a line contains several payloads, everything from the first <XML> to the
last </XML> is taken as one payload, which is not well-formed. A payload that
is not well-formed XML aborts the run.
`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := logFlags.Setup(cmd.ErrOrStderr()); err != nil {
				return err
			}
			defer log.Flush()

			ctx, logger := log.WithLabels(cmd.Context(), "cmd", name)
			x := logline.Extractor{Tags: args}
			stats, err := x.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			logger.Info("Extracted fields", "lines", stats.Lines, "rows", stats.Rows)
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	logFlags.Register(cmd.Flags())
	return cmd
}
