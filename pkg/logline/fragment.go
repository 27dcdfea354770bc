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

// Package logline extracts fields from XML payloads embedded in log lines.
//
// A payload is delimited by the literal markers <XML> and </XML>. The
// extractor looks up element names anywhere below the <XML> root and prints
// their text as tab separated rows:
//
//	... <XML><ORDER><COUNTRYCODE>US</COUNTRYCODE></ORDER></XML>
//
// with the tags COUNTRYCODE and CURRENCYCODE yields "US\t-".
package logline

import (
	"regexp"
)

// The match is greedy: on a line with several payloads it spans from the
// first <XML> to the last </XML>, which then fails to parse.
var fragmentPattern = regexp.MustCompile(`<XML>.*</XML>`)

// Fragment returns the XML payload embedded in line, markers included. The
// second return value is false if line has no payload.
func Fragment(line string) (string, bool) {
	loc := fragmentPattern.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return line[loc[0]:loc[1]], true
}
