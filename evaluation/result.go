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

import "time"

// EvalStatus is the outcome of an evaluation, per invocation or overall.
//
// A per-invocation result starts out pending; scoring moves it to PASSED
// or FAILED, and a scoring failure or explicit exclusion moves it to
// NOT_EVALUATED. All three are terminal.
type EvalStatus string

const (
	EvalStatusPassed       EvalStatus = "PASSED"
	EvalStatusFailed       EvalStatus = "FAILED"
	EvalStatusNotEvaluated EvalStatus = "NOT_EVALUATED"
)

// StatusForScore derives a status from a score and a metric threshold:
// PASSED when score >= threshold, FAILED otherwise. A NaN score compares
// false and therefore fails.
func StatusForScore(score, threshold float64) EvalStatus {
	if score >= threshold {
		return EvalStatusPassed
	}
	return EvalStatusFailed
}

// PerInvocationResult pairs an actual and expected invocation with the
// computed score for one metric.
//
// Score is nil when the invocation could not be scored (for example the
// judge response was unparseable). A nil score or a NOT_EVALUATED status
// excludes the result from aggregation entirely, regardless of any score
// value it carries.
type PerInvocationResult struct {
	ActualInvocation   Invocation `json:"actualInvocation"`
	ExpectedInvocation Invocation `json:"expectedInvocation"`

	Score  *float64   `json:"score,omitempty"`
	Status EvalStatus `json:"evalStatus"`
}

// Evaluated reports whether the result contributes to aggregation.
func (r *PerInvocationResult) Evaluated() bool {
	return r.Score != nil && r.Status != EvalStatusNotEvaluated
}

// EvaluationResult is the terminal output of one evaluation run: the
// overall score, the overall verdict against the metric threshold, and
// the per-invocation results that produced it, in input order.
type EvaluationResult struct {
	OverallScore  float64    `json:"overallScore"`
	OverallStatus EvalStatus `json:"overallEvalStatus"`

	PerInvocationResults []PerInvocationResult `json:"perInvocationResults"`
}

// EvalCase is a single test scenario: the conversation to replay and the
// expected (reference) invocations.
type EvalCase struct {
	EvalID string `json:"evalId"`

	// Conversation holds the expected invocations, in turn order.
	Conversation []Invocation `json:"conversation"`

	// SessionInput carries app-specific state used to reproduce the run.
	SessionInput map[string]any `json:"sessionInput,omitempty"`
}

// EvalSet is a named collection of eval cases.
type EvalSet struct {
	ID        string     `json:"evalSetId"`
	Name      string     `json:"name,omitempty"`
	EvalCases []EvalCase `json:"evalCases"`

	CreatedAt time.Time `json:"creationTimestamp,omitzero"`
}

// EvalCaseResult is the outcome of one eval case under one metric.
type EvalCaseResult struct {
	EvalSetID string `json:"evalSetId"`
	EvalID    string `json:"evalId"`

	Result EvaluationResult `json:"result"`
}

// EvalSetResult aggregates the outcomes of a whole eval set run.
type EvalSetResult struct {
	EvalSetResultID string `json:"evalSetResultId"`
	EvalSetID       string `json:"evalSetId"`

	Metric          EvalMetric       `json:"metric"`
	EvalCaseResults []EvalCaseResult `json:"evalCaseResults"`

	CreatedAt time.Time `json:"creationTimestamp,omitzero"`
}
