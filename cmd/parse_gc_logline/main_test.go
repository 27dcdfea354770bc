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

package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/netfilters/netfilters/pkg/log"
	"github.com/netfilters/netfilters/pkg/logline"
	"github.com/netfilters/netfilters/pkg/private/xtest"
)

var update = xtest.UpdateGoldenFiles()

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func run(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(log.Discard)
	var stdout, stderr bytes.Buffer
	cmd := newParseGCLogline("parse_gc_logline")
	cmd.SetIn(stdin)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// A nil slice makes cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseGCLoglineGolden(t *testing.T) {
	f, err := os.Open("testdata/gc.log")
	require.NoError(t, err)
	defer f.Close()

	stdout, stderr, err := run(t, f, "COUNTRYCODE", "CURRENCYCODE", "AMOUNT", "EMAIL")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	xtest.AssertGoldenFile(t, *update, "testdata/gc.golden", []byte(stdout))
}

func TestParseGCLogline(t *testing.T) {
	const line = "<XML><order><country>US</country></order></XML>\n"

	testCases := map[string]struct {
		input     string
		args      []string
		expected  string
		assertErr assert.ErrorAssertionFunc
	}{
		"missing tag": {
			input:     line,
			args:      []string{"country", "currency"},
			expected:  "US\t-\n",
			assertErr: assert.NoError,
		},
		"argument order": {
			input:     line,
			args:      []string{"currency", "country"},
			expected:  "-\tUS\n",
			assertErr: assert.NoError,
		},
		"line without payload": {
			input:     "nothing to see\n",
			args:      []string{"country"},
			expected:  "",
			assertErr: assert.NoError,
		},
		"tag named like a command": {
			input:     "<XML><help>yes</help></XML>\n",
			args:      []string{"help"},
			expected:  "yes\n",
			assertErr: assert.NoError,
		},
		"no tags": {
			input:     line + line,
			expected:  "\n\n",
			assertErr: assert.NoError,
		},
		"malformed payload": {
			input:     line + "<XML><country>US</XML>\n" + line,
			args:      []string{"country"},
			expected:  "US\n",
			assertErr: assert.Error,
		},
		"unbound prefix": {
			input:     line + "<XML><gc:country>NL</gc:country></XML>\n" + line,
			args:      []string{"country"},
			expected:  "US\n",
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := run(t, strings.NewReader(tc.input), tc.args...)
			tc.assertErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, logline.ErrMalformedXML)
			}
			assert.Equal(t, tc.expected, stdout)
		})
	}
}

func TestParseGCLoglineDebugLog(t *testing.T) {
	stdout, stderr, err := run(t, strings.NewReader("heartbeat\n"),
		"--log.level", "debug", "country")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Skipping line without payload")
	assert.Contains(t, stderr, "Extracted fields")
}
