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

// Package llmjudge drives a judge model through an evaluation.Evaluator:
// it formats prompts, collects judge samples, and folds samples and
// invocations into an EvaluationResult.
package llmjudge

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/raterkit/raterkit/evaluation"
	"github.com/raterkit/raterkit/internal/telemetry"
	"github.com/raterkit/raterkit/model"
)

// Judge runs LLM-as-judge evaluation for one metric.
type Judge struct {
	llm        model.LLM
	evaluator  evaluation.Evaluator
	judgeModel string
	numSamples int
	config     *genai.GenerateContentConfig
}

// New creates a judge for evaluator backed by llm. Judge model name,
// generation config and sample count come from the metric's
// JudgeModelOptions; a zero sample count defaults to 1.
func New(llm model.LLM, evaluator evaluation.Evaluator) *Judge {
	j := &Judge{
		llm:        llm,
		evaluator:  evaluator,
		numSamples: 1,
	}
	if opts := evaluator.Metric().JudgeModelOptions; opts != nil {
		j.judgeModel = opts.JudgeModel
		j.config = opts.JudgeModelConfig
		if opts.NumSamples > 0 {
			j.numSamples = opts.NumSamples
		}
	}
	return j
}

// Evaluate scores each actual invocation against its expected
// counterpart and aggregates the per-invocation results.
//
// A judge call failure or an unparseable judge response degrades that
// sample to NOT_EVALUATED; the run only fails outright on context
// cancellation or mismatched inputs.
func (j *Judge) Evaluate(ctx context.Context, actuals, expecteds []evaluation.Invocation) (*evaluation.EvaluationResult, error) {
	if len(actuals) != len(expecteds) {
		return nil, fmt.Errorf("llmjudge: %d actual invocations vs %d expected", len(actuals), len(expecteds))
	}

	perInvocation := make([]evaluation.PerInvocationResult, 0, len(actuals))
	for i := range actuals {
		result, err := j.evaluateInvocation(ctx, &actuals[i], &expecteds[i])
		if err != nil {
			return nil, err
		}
		perInvocation = append(perInvocation, *result)
	}

	result := j.evaluator.AggregateInvocationResults(perInvocation)
	return &result, nil
}

// evaluateInvocation draws numSamples judge samples for one invocation
// pair and majority-votes them into a single result.
func (j *Judge) evaluateInvocation(ctx context.Context, actual, expected *evaluation.Invocation) (*evaluation.PerInvocationResult, error) {
	metric := j.evaluator.Metric()
	prompt := j.evaluator.FormatJudgePrompt(actual, expected)

	samples := make([]evaluation.PerInvocationResult, 0, j.numSamples)
	for s := 0; s < j.numSamples; s++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sample := evaluation.PerInvocationResult{
			ActualInvocation:   *actual,
			ExpectedInvocation: *expected,
			Status:             evaluation.EvalStatusNotEvaluated,
		}

		resp, err := j.generate(ctx, metric.MetricName, prompt)
		if err != nil {
			telemetry.Errorf(ctx, "judge sample %d/%d failed for metric %s: %v", s+1, j.numSamples, metric.MetricName, err)
		} else if score := j.evaluator.ScoreJudgeResponse(resp); score != nil {
			sample.Score = score
			sample.Status = evaluation.StatusForScore(*score, metric.Threshold)
		}
		samples = append(samples, sample)
	}

	return mergeSamples(samples), nil
}

// generate performs one non-streaming judge call.
func (j *Judge) generate(ctx context.Context, metricName, prompt string) (*model.LLMResponse, error) {
	ctx, span := telemetry.StartJudgeSpan(ctx, metricName, j.judgeModel)
	telemetry.LogJudgePrompt(ctx, j.judgeModel, prompt)

	req := &model.LLMRequest{
		Model: j.judgeModel,
		Contents: []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		},
		Config: j.config,
	}

	var last *model.LLMResponse
	var genErr error
	for resp, err := range j.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			genErr = err
			break
		}
		last = resp
	}
	telemetry.LogJudgeResponse(ctx, j.judgeModel, last, genErr)
	telemetry.EndJudgeSpan(span, genErr)

	if genErr != nil {
		return nil, genErr
	}
	if last == nil {
		return nil, fmt.Errorf("llmjudge: judge model returned no response")
	}
	return last, nil
}

// mergeSamples resolves repeated samples for one invocation by majority
// vote over the evaluated ones. Ties go to the negative side. When no
// sample was evaluated the first (excluded) sample stands for the
// invocation.
func mergeSamples(samples []evaluation.PerInvocationResult) *evaluation.PerInvocationResult {
	var positives, negatives []*evaluation.PerInvocationResult
	for i := range samples {
		if !samples[i].Evaluated() {
			continue
		}
		if samples[i].Status == evaluation.EvalStatusPassed {
			positives = append(positives, &samples[i])
		} else {
			negatives = append(negatives, &samples[i])
		}
	}
	if len(positives) == 0 && len(negatives) == 0 {
		return &samples[0]
	}
	if len(positives) > len(negatives) {
		return positives[0]
	}
	return negatives[0]
}
