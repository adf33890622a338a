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

// Package runner executes whole eval sets against a metric.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/raterkit/raterkit/evaluation"
	"github.com/raterkit/raterkit/evaluation/llmjudge"
	"github.com/raterkit/raterkit/model"
)

// InvocationProducer produces the actual invocations for an eval case,
// typically by replaying the case's conversation against the agent under
// test. The returned slice must align one-to-one with
// evalCase.Conversation.
type InvocationProducer func(ctx context.Context, evalCase *evaluation.EvalCase) ([]evaluation.Invocation, error)

// Runner evaluates eval sets with a judge model. Cases run concurrently;
// each case's invocations are scored in order.
type Runner struct {
	llm         model.LLM
	storage     evaluation.Storage
	registry    *evaluation.Registry
	concurrency int
}

// Option configures a Runner.
type Option func(*Runner)

// WithStorage persists every run result to s.
func WithStorage(s evaluation.Storage) Option {
	return func(r *Runner) { r.storage = s }
}

// WithRegistry selects the evaluator registry. Defaults to
// evaluation.DefaultRegistry.
func WithRegistry(reg *evaluation.Registry) Option {
	return func(r *Runner) { r.registry = reg }
}

// WithConcurrency bounds the number of eval cases evaluated in
// parallel. Defaults to 4.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New creates a Runner backed by llm for judge calls.
func New(llm model.LLM, opts ...Option) *Runner {
	r := &Runner{
		llm:         llm,
		registry:    evaluation.DefaultRegistry,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunEvalSet evaluates every case of evalSet under metric. Actual
// invocations come from produce; expected invocations are the case
// conversations. Case order is preserved in the result.
func (r *Runner) RunEvalSet(ctx context.Context, appName string, evalSet *evaluation.EvalSet, metric evaluation.EvalMetric, produce InvocationProducer) (*evaluation.EvalSetResult, error) {
	evaluator, err := r.registry.NewEvaluator(metric)
	if err != nil {
		return nil, err
	}

	caseResults := make([]evaluation.EvalCaseResult, len(evalSet.EvalCases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range evalSet.EvalCases {
		evalCase := &evalSet.EvalCases[i]
		g.Go(func() error {
			actuals, err := produce(gctx, evalCase)
			if err != nil {
				return fmt.Errorf("produce invocations for case %s: %w", evalCase.EvalID, err)
			}

			judge := llmjudge.New(r.llm, evaluator)
			result, err := judge.Evaluate(gctx, actuals, evalCase.Conversation)
			if err != nil {
				return fmt.Errorf("evaluate case %s: %w", evalCase.EvalID, err)
			}

			caseResults[i] = evaluation.EvalCaseResult{
				EvalSetID: evalSet.ID,
				EvalID:    evalCase.EvalID,
				Result:    *result,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	setResult := &evaluation.EvalSetResult{
		EvalSetResultID: uuid.NewString(),
		EvalSetID:       evalSet.ID,
		Metric:          metric,
		EvalCaseResults: caseResults,
		CreatedAt:       time.Now().UTC(),
	}

	if r.storage != nil {
		if err := r.storage.SaveEvalSetResult(ctx, appName, setResult); err != nil {
			return nil, fmt.Errorf("persist eval set result: %w", err)
		}
	}
	return setResult, nil
}
