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

// Package evaluation provides the data model and contracts for scoring
// agent responses against reference responses.
//
// # Core Concepts
//
// Invocation: one recorded exchange of user input and agent final
// response, the unit of evaluation.
//
// EvalMetric: a named, thresholded criterion, optionally backed by a
// judge model (LLM-as-judge, or "auto-rater").
//
// Evaluator: the capability contract a metric implementation provides:
// format a judge prompt, convert a judge response to a score, and
// aggregate per-invocation results into one verdict.
//
// PerInvocationResult / EvaluationResult: the scored outcome for a single
// invocation, and the aggregated outcome for a whole run.
//
// # Scoring model
//
// A per-invocation score is nullable. A result with a nil score or with
// status NOT_EVALUATED is excluded from aggregation entirely: it counts
// toward neither the numerator nor the denominator of the overall score.
// A malformed judge response therefore degrades a single sample; it never
// aborts the run.
//
// Evaluator implementations for specific metrics live in subpackages
// (see finalresponsematch). The llmjudge subpackage drives the judge
// model and the runner subpackage executes whole eval sets.
package evaluation
