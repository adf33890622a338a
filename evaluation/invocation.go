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

package evaluation

import (
	"strings"

	"google.golang.org/genai"
)

// FunctionSpec describes a callable tool available to the agent at a
// given invocation.
type FunctionSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Invocation is one recorded exchange: the user input, the final response
// the agent produced (or the reference response it should have produced),
// and the function specs available to the agent at that turn.
//
// Invocations are constructed once per test case and read-only afterward.
type Invocation struct {
	// InvocationID identifies the invocation within an eval case. Optional.
	InvocationID string `json:"invocation_id,omitempty"`

	UserContent   *genai.Content `json:"user_content"`
	FinalResponse *genai.Content `json:"final_response,omitempty"`

	FunctionAPISpec []FunctionSpec `json:"function_api_spec,omitempty"`
}

// TextFromContent concatenates the textual parts of content in order.
// Non-text parts (function calls, blobs) are ignored. A nil content
// yields the empty string.
func TextFromContent(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
