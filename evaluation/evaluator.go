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

import "github.com/raterkit/raterkit/model"

// Evaluator is the capability contract shared by metric evaluators.
//
// The three operations are deliberately independent: prompt formatting is
// a pure function of its inputs, response scoring consumes one judge
// response at a time, and aggregation folds a finished slice of
// per-invocation results into a single verdict. The llmjudge package
// drives judge-backed evaluators through this interface.
type Evaluator interface {
	// Metric returns the metric this evaluator computes.
	Metric() EvalMetric

	// FormatJudgePrompt builds the judge-model prompt for one pair of
	// actual and expected invocations. Pure; no side effects.
	FormatJudgePrompt(actual, expected *Invocation) string

	// ScoreJudgeResponse converts a raw judge response into a score, or
	// nil when no score could be extracted. Extraction failures are not
	// errors: they degrade the sample to an excluded one.
	ScoreJudgeResponse(response *model.LLMResponse) *float64

	// AggregateInvocationResults folds per-invocation results into the
	// overall result. Results with a nil score or status NOT_EVALUATED
	// must not contribute to the overall score.
	AggregateInvocationResults(results []PerInvocationResult) EvaluationResult
}

// EvaluatorFactory creates an evaluator for a metric.
type EvaluatorFactory func(metric EvalMetric) (Evaluator, error)
