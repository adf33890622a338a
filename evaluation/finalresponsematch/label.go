// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package finalresponsematch

import "regexp"

// Validity labels the judge model is expected to emit.
const (
	labelValid   = "valid"
	labelInvalid = "invalid"
)

// labelPattern matches `"<key>": <value>` in free-form judge output,
// tolerating the value being wrapped in a one-element list, quoted, or
// followed by embedded newlines before the closing quote. The value
// itself is a bare word: no quotes, brackets or whitespace. The match is
// terminated by a comma, a newline or a closing brace.
//
// Judge models wrap the label inconsistently, so the bracket and quote
// wrappers are all optional. Keep the two key patterns separate; the
// fallback order is load-bearing.
func labelPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`"` + key + `":\s*\[*[\n\s]*"*([^"\]\s]*)"*[\n\s]*\]*\s*[,\n}]`)
}

var (
	validKeyPattern   = labelPattern("is_the_agent_response_valid")
	invalidKeyPattern = labelPattern("is_the_agent_response_invalid")
)

// extractValidityLabel pulls the validity label out of the judge's raw
// text. The primary key is "is_the_agent_response_valid"; when absent,
// "is_the_agent_response_invalid" is tried. Returns ok=false when
// neither key matches.
func extractValidityLabel(responseText string) (label string, ok bool) {
	if m := validKeyPattern.FindStringSubmatch(responseText); m != nil {
		return m[1], true
	}
	if m := invalidKeyPattern.FindStringSubmatch(responseText); m != nil {
		return m[1], true
	}
	return "", false
}
