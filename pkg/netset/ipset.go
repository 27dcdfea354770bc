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

// Package netset computes differences of IP network sets.
//
// The set arithmetic is done by netipx; this package adds the parsing of
// network tokens and the line oriented input format used by netdiff.
package netset

import (
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// IPSet is the same as netipx.IPSet except that it can be converted to/from string.
type IPSet struct {
	netipx.IPSet
}

// ParseIPSet parses a comma separated list of networks. Each network is
// parsed with ParseNetwork. Empty elements are ignored.
func ParseIPSet(s string) (IPSet, error) {
	var b Builder
	for _, token := range strings.Split(s, ",") {
		if token == "" {
			continue
		}
		p, err := ParseNetwork(token)
		if err != nil {
			return IPSet{}, err
		}
		b.Include(p)
	}
	return b.IPSet()
}

func MustParseIPSet(s string) IPSet {
	set, err := ParseIPSet(s)
	if err != nil {
		panic(err)
	}
	return set
}

func (s *IPSet) String() string {
	var prefixes []string
	for _, prefix := range s.Prefixes() {
		prefixes = append(prefixes, prefix.String())
	}
	return strings.Join(prefixes, ",")
}

// Builder builds an IPSet by including and excluding networks. Operations
// apply in call order: an Exclude only affects networks included before it.
// The zero value is an empty set, ready to use.
type Builder struct {
	b        netipx.IPSetBuilder
	included int
	excluded int
}

// Include adds p to the set.
func (b *Builder) Include(p netip.Prefix) {
	b.b.AddPrefix(p)
	b.included++
}

// Exclude removes p from the set.
func (b *Builder) Exclude(p netip.Prefix) {
	b.b.RemovePrefix(p)
	b.excluded++
}

// Included returns the number of networks passed to Include.
func (b *Builder) Included() int { return b.included }

// Excluded returns the number of networks passed to Exclude.
func (b *Builder) Excluded() int { return b.excluded }

// IPSet returns the current set. The builder stays usable.
func (b *Builder) IPSet() (IPSet, error) {
	set, err := b.b.IPSet()
	if err != nil {
		return IPSet{}, err
	}
	return IPSet{IPSet: *set}, nil
}
