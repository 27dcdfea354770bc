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

// netdiff prints the networks of one file minus the networks of another as a
// minimal list of CIDR blocks.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netfilters/netfilters/pkg/log"
	"github.com/netfilters/netfilters/pkg/netset"
	"github.com/netfilters/netfilters/private/app/flag"
)

func main() {
	executable := filepath.Base(os.Args[0])
	cmd := newNetdiff(executable)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newNetdiff(name string) *cobra.Command {
	var logFlags flag.LogFlags

	var cmd = &cobra.Command{
		Use:   name + " <include-file> <exclude-file>",
		Short: "Subtract one list of IP networks from another",
		Example: fmt.Sprintf(`  %[1]s include.txt exclude.txt
  %[1]s --log.level=debug include.txt exclude.txt`, name),
		Long: `'` + name + `' computes the IP networks listed in the include file minus the
networks listed in the exclude file and prints the result as a minimal list
of CIDR blocks, one per line, IPv4 before IPv6 and in ascending order.

Both files contain one IP address or CIDR block per line. A bare address is
a single host network. Blank lines are ignored; any other line that is not an
address or CIDR block aborts the run.
`,
		// The argument count is checked in RunE: a wrong count prints a usage
		// line and is not an error.
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(),
					"Usage: %s include.txt exclude.txt\n", name)
				return err
			}
			cmd.SilenceUsage = true
			if err := logFlags.Setup(cmd.ErrOrStderr()); err != nil {
				return err
			}
			defer log.Flush()

			ctx, logger := log.WithLabels(cmd.Context(), "cmd", name)
			set, err := netset.DiffFiles(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			prefixes := set.Prefixes()
			out := bufio.NewWriter(cmd.OutOrStdout())
			for _, p := range prefixes {
				fmt.Fprintln(out, p)
			}
			if err := out.Flush(); err != nil {
				return err
			}
			logger.Info("Wrote networks", "prefixes", len(prefixes))
			return nil
		},
	}
	// Both arguments are file names. Without subcommands cobra adds neither
	// the help nor the completion command, so a file called "help" is still a
	// file.
	cmd.CompletionOptions.DisableDefaultCmd = true
	logFlags.Register(cmd.Flags())
	return cmd
}
