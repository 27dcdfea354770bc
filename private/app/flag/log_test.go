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

package flag_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfilters/netfilters/pkg/log"
	"github.com/netfilters/netfilters/private/app/flag"
)

func TestLogFlags(t *testing.T) {
	testCases := map[string]struct {
		args      []string
		expected  log.Config
		assertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			expected: log.Config{
				Console: log.ConsoleConfig{Level: "error", Format: "human"},
			},
			assertErr: assert.NoError,
		},
		"debug json": {
			args: []string{"--log.level", "debug", "--log.format=json"},
			expected: log.Config{
				Console: log.ConsoleConfig{Level: "debug", Format: "json"},
			},
			assertErr: assert.NoError,
		},
		"invalid level": {
			args:      []string{"--log.level", "verbose"},
			assertErr: assert.Error,
		},
		"invalid format": {
			args:      []string{"--log.format", "xml"},
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var flags flag.LogFlags
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.Register(fs)
			err := fs.Parse(tc.args)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			require.Equal(t, tc.expected, flags.Config())
		})
	}
}
