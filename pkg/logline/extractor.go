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

package logline

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/netfilters/netfilters/pkg/log"
	"github.com/netfilters/netfilters/pkg/private/serrors"
)

// Missing is the value of a requested tag that does not occur in a payload.
const Missing = "-"

// Separator separates the values of a row.
const Separator = "\t"

// Extractor extracts the values of Tags from payloads.
type Extractor struct {
	// Tags are the requested element names, in output order.
	Tags []string
}

// Stats summarizes a Run.
type Stats struct {
	// Lines is the number of lines read.
	Lines int
	// Rows is the number of rows written.
	Rows int
}

// Values returns the text of the first element below root for each
// requested tag. Tags that do not occur yield Missing.
func (x Extractor) Values(root *Element) []string {
	values := make([]string, 0, len(x.Tags))
	for _, tag := range x.Tags {
		if e := root.Find(tag); e != nil {
			values = append(values, e.Text)
		} else {
			values = append(values, Missing)
		}
	}
	return values
}

// Row returns the tab separated values for line. The second return value is
// false if line has no payload, in which case there is no row.
func (x Extractor) Row(line string) (string, bool, error) {
	fragment, ok := Fragment(line)
	if !ok {
		return "", false, nil
	}
	root, err := Parse(fragment)
	if err != nil {
		return "", false, err
	}
	return strings.Join(x.Values(root), Separator), true, nil
}

// Run reads lines from r and writes one row per line with a payload to w.
// Lines without a payload are skipped. A malformed payload stops the run;
// the rows of the preceding lines have been written by then.
func (x Extractor) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	logger := log.FromCtx(ctx)
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	var stats Stats
	for {
		line, readErr := in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return stats, flush(out, serrors.Wrap("reading input", readErr, "line", stats.Lines+1))
		}
		if line == "" && readErr != nil {
			break
		}
		stats.Lines++
		row, ok, err := x.Row(strings.TrimRight(line, "\r\n"))
		if err != nil {
			return stats, flush(out, serrors.Wrap("extracting fields", err, "line", stats.Lines))
		}
		if !ok {
			if logger.Enabled(log.DebugLevel) {
				logger.Debug("Skipping line without payload", "line", stats.Lines)
			}
		} else {
			if _, err := out.WriteString(row + "\n"); err != nil {
				return stats, serrors.Wrap("writing row", err, "line", stats.Lines)
			}
			stats.Rows++
		}
		if readErr != nil {
			break
		}
	}
	if err := out.Flush(); err != nil {
		return stats, serrors.Wrap("writing rows", err)
	}
	return stats, nil
}

// flush writes the buffered rows and returns cause, or the write error if
// flushing failed.
func flush(out *bufio.Writer, cause error) error {
	if err := out.Flush(); err != nil {
		return serrors.List{cause, serrors.Wrap("writing rows", err)}
	}
	return cause
}
