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
	"errors"
	"net/netip"
	"strings"

	"github.com/netfilters/netfilters/pkg/private/serrors"
)

// ErrInvalidNetwork indicates a token that is neither an IP address nor a
// network in CIDR notation.
var ErrInvalidNetwork = errors.New("invalid network")

// ParseNetwork parses an IP address or a network in CIDR notation.
//
// A bare address is a single host network, /32 for IPv4 and /128 for IPv6.
// Host bits of a CIDR are cleared, so 10.0.0.5/24 is 10.0.0.0/24. Addresses
// with an IPv6 zone are rejected.
func ParseNetwork(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, serrors.Join(ErrInvalidNetwork, err, "token", s)
		}
		return p.Masked(), nil
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, serrors.Join(ErrInvalidNetwork, err, "token", s)
	}
	if a.Zone() != "" {
		return netip.Prefix{}, serrors.Join(ErrInvalidNetwork, nil,
			"token", s, "reason", "zoned address")
	}
	return netip.PrefixFrom(a, a.BitLen()), nil
}
