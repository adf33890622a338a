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

// Package finalresponsematch implements the final_response_match_v2
// metric: a judge model compares the agent's final response against a
// reference response and labels it valid or invalid.
package finalresponsematch

import (
	"context"
	"strings"

	"github.com/raterkit/raterkit/evaluation"
	"github.com/raterkit/raterkit/internal/telemetry"
	"github.com/raterkit/raterkit/model"
)

func init() {
	evaluation.Register(evaluation.MetricFinalResponseMatch, func(metric evaluation.EvalMetric) (evaluation.Evaluator, error) {
		return New(metric), nil
	})
}

// Evaluator scores final responses with a judge model. It implements
// evaluation.Evaluator and is safe for concurrent use.
type Evaluator struct {
	metric         evaluation.EvalMetric
	promptTemplate string
}

var _ evaluation.Evaluator = (*Evaluator)(nil)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithPromptTemplate overrides the default judge prompt template. The
// template must carry the {function_api_spec}, {prompt}, {response} and
// {golden_response} placeholders.
func WithPromptTemplate(template string) Option {
	return func(e *Evaluator) { e.promptTemplate = template }
}

// New creates an evaluator for metric.
func New(metric evaluation.EvalMetric, opts ...Option) *Evaluator {
	e := &Evaluator{
		metric:         metric,
		promptTemplate: PromptTemplate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Metric returns the metric this evaluator computes.
func (e *Evaluator) Metric() evaluation.EvalMetric {
	return e.metric
}

// FormatJudgePrompt builds the judge prompt for one invocation pair: the
// function API spec comes from the actual invocation, the user query and
// reference response from the expected one, and the candidate response
// from the actual one.
func (e *Evaluator) FormatJudgePrompt(actual, expected *evaluation.Invocation) string {
	return formatPrompt(
		e.promptTemplate,
		formatFunctionAPISpec(actual.FunctionAPISpec),
		evaluation.TextFromContent(expected.UserContent),
		evaluation.TextFromContent(actual.FinalResponse),
		evaluation.TextFromContent(expected.FinalResponse),
	)
}

// ScoreJudgeResponse extracts the validity label from the judge response
// and maps it to a score: "valid" is 1.0, "invalid" is 0.0. Any other
// label, a missing label, or an empty response yields nil; the failure is
// logged and the sample is excluded rather than failing the run.
func (e *Evaluator) ScoreJudgeResponse(response *model.LLMResponse) *float64 {
	if response == nil || response.Content == nil {
		telemetry.Errorf(context.Background(), "auto-rater returned no content for metric %s", e.metric.MetricName)
		return nil
	}
	responseText := strings.TrimSpace(evaluation.TextFromContent(response.Content))
	label, ok := extractValidityLabel(responseText)
	if !ok {
		telemetry.Errorf(context.Background(), "failed to parse auto-rater response: %q", responseText)
		return nil
	}
	switch label {
	case labelValid:
		return ptr(1.0)
	case labelInvalid:
		return ptr(0.0)
	default:
		telemetry.Errorf(context.Background(), "unexpected auto-rater label %q", label)
		return nil
	}
}

// AggregateInvocationResults computes the fraction of evaluated
// invocations that are valid. Results with a nil score or status
// NOT_EVALUATED are skipped entirely, whatever score value they carry.
//
// When no result is evaluated the division yields NaN, which compares
// below any threshold; callers needing a softer default must guard the
// empty case themselves.
func (e *Evaluator) AggregateInvocationResults(results []evaluation.PerInvocationResult) evaluation.EvaluationResult {
	var numValid, numEvaluated float64
	for i := range results {
		if !results[i].Evaluated() {
			continue
		}
		numEvaluated++
		numValid += *results[i].Score
	}
	overallScore := numValid / numEvaluated
	return evaluation.EvaluationResult{
		OverallScore:         overallScore,
		OverallStatus:        evaluation.StatusForScore(overallScore, e.metric.Threshold),
		PerInvocationResults: results,
	}
}

func ptr(v float64) *float64 { return &v }
