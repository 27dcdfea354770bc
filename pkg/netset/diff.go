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

package netset

import (
	"bufio"
	"context"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/netfilters/netfilters/pkg/log"
	"github.com/netfilters/netfilters/pkg/private/serrors"
)

// Diff reads networks from include and exclude, one per line, and returns
// the set of all included networks with all excluded networks removed.
//
// Blank lines are ignored. Any other line that ParseNetwork rejects aborts
// the computation. include is consumed completely before exclude is read.
func Diff(ctx context.Context, include, exclude io.Reader) (IPSet, error) {
	logger := log.FromCtx(ctx)
	var b Builder
	if err := readNetworks(include, b.Include); err != nil {
		return IPSet{}, serrors.Wrap("reading included networks", err)
	}
	if err := readNetworks(exclude, b.Exclude); err != nil {
		return IPSet{}, serrors.Wrap("reading excluded networks", err)
	}
	set, err := b.IPSet()
	if err != nil {
		return IPSet{}, err
	}
	logger.Debug("Computed network difference",
		"included", b.Included(), "excluded", b.Excluded(), "result", &set)
	return set, nil
}

// DiffFiles is Diff on the contents of the files at includePath and
// excludePath. The exclude file is only opened once the include file has been
// read.
func DiffFiles(ctx context.Context, includePath, excludePath string) (IPSet, error) {
	include, err := os.Open(includePath)
	if err != nil {
		return IPSet{}, serrors.Wrap("opening include file", err)
	}
	defer include.Close()
	exclude := &lazyFile{path: excludePath}
	defer exclude.Close()

	set, err := Diff(ctx, include, exclude)
	if err != nil {
		return IPSet{}, serrors.Wrap("computing difference", err,
			"include", includePath, "exclude", excludePath)
	}
	return set, nil
}

func readNetworks(r io.Reader, apply func(netip.Prefix)) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		token := strings.TrimSpace(scanner.Text())
		if token == "" {
			continue
		}
		p, err := ParseNetwork(token)
		if err != nil {
			return serrors.Wrap("parsing network", err, "line", n)
		}
		apply(p)
	}
	return scanner.Err()
}

// lazyFile opens the file at path on the first Read.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Read(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Open(l.path)
		if err != nil {
			return 0, serrors.Wrap("opening exclude file", err)
		}
		l.f = f
	}
	return l.f.Read(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
