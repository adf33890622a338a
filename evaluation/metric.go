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

import "google.golang.org/genai"

// Well-known metric names.
const (
	// MetricFinalResponseMatch validates the agent's final response against
	// a reference response using a judge model. Score per invocation is 0.0
	// or 1.0.
	MetricFinalResponseMatch = "final_response_match_v2"
)

// JudgeModelOptions configures the judge model behind an LLM-as-judge
// metric.
type JudgeModelOptions struct {
	// JudgeModel is the model name, e.g. "gemini-2.5-flash".
	JudgeModel string `json:"judgeModel"`

	// JudgeModelConfig is passed through to the model on every sample.
	JudgeModelConfig *genai.GenerateContentConfig `json:"judgeModelConfig,omitempty"`

	// NumSamples is how many judge samples to draw per invocation.
	// Defaults to 1 when zero.
	NumSamples int `json:"numSamples,omitempty"`
}

// EvalMetric is a named criterion with a pass threshold. Immutable once
// created from eval-suite configuration.
type EvalMetric struct {
	MetricName string  `json:"metricName"`
	Threshold  float64 `json:"threshold"`

	JudgeModelOptions *JudgeModelOptions `json:"judgeModelOptions,omitempty"`
}
