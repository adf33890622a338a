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

package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"google.golang.org/genai"

	"github.com/raterkit/raterkit/evaluation"
	_ "github.com/raterkit/raterkit/evaluation/finalresponsematch"
	"github.com/raterkit/raterkit/evaluation/storage"
	"github.com/raterkit/raterkit/model"
)

// scriptedJudge answers every judge call with the verdict configured for
// the candidate text found in the prompt.
type scriptedJudge struct {
	mu       sync.Mutex
	verdicts map[string]string
	calls    int
}

func (s *scriptedJudge) Name() string { return "scripted-judge" }

func (s *scriptedJudge) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) model.LLMResponseStream {
	return func(yield func(*model.LLMResponse, error) bool) {
		s.mu.Lock()
		s.calls++
		prompt := evaluation.TextFromContent(req.Contents[0])
		verdict := "invalid"
		for candidate, v := range s.verdicts {
			if candidate != "" && strings.Contains(prompt, candidate) {
				verdict = v
				break
			}
		}
		s.mu.Unlock()

		text := fmt.Sprintf("{\"is_the_agent_response_valid\": \"%s\",\n}", verdict)
		yield(&model.LLMResponse{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			TurnComplete: true,
		}, nil)
	}
}

func metricForTest() evaluation.EvalMetric {
	return evaluation.EvalMetric{
		MetricName: evaluation.MetricFinalResponseMatch,
		Threshold:  0.5,
		JudgeModelOptions: &evaluation.JudgeModelOptions{
			JudgeModel: "scripted-judge",
		},
	}
}

func evalCase(evalID, query, reference string) evaluation.EvalCase {
	return evaluation.EvalCase{
		EvalID: evalID,
		Conversation: []evaluation.Invocation{
			{
				UserContent:   genai.NewContentFromText(query, genai.RoleUser),
				FinalResponse: genai.NewContentFromText(reference, genai.RoleModel),
			},
		},
	}
}

func echoProducer(responses map[string]string) InvocationProducer {
	return func(ctx context.Context, ec *evaluation.EvalCase) ([]evaluation.Invocation, error) {
		actuals := make([]evaluation.Invocation, len(ec.Conversation))
		for i, inv := range ec.Conversation {
			actuals[i] = evaluation.Invocation{
				UserContent:   inv.UserContent,
				FinalResponse: genai.NewContentFromText(responses[ec.EvalID], genai.RoleModel),
			}
		}
		return actuals, nil
	}
}

func TestRunEvalSet(t *testing.T) {
	judge := &scriptedJudge{verdicts: map[string]string{
		"good answer": "valid",
		"bad answer":  "invalid",
	}}
	r := New(judge, WithConcurrency(2))

	evalSet := &evaluation.EvalSet{
		ID: "set_1",
		EvalCases: []evaluation.EvalCase{
			evalCase("case_pass", "What is up?", "reference answer"),
			evalCase("case_fail", "What is down?", "reference answer"),
		},
	}
	producer := echoProducer(map[string]string{
		"case_pass": "good answer",
		"case_fail": "bad answer",
	})

	result, err := r.RunEvalSet(t.Context(), "app", evalSet, metricForTest(), producer)
	if err != nil {
		t.Fatalf("RunEvalSet() failed: %v", err)
	}

	if result.EvalSetResultID == "" {
		t.Error("EvalSetResultID is empty, want a generated ID")
	}
	if result.EvalSetID != "set_1" {
		t.Errorf("EvalSetID = %q, want %q", result.EvalSetID, "set_1")
	}
	if len(result.EvalCaseResults) != 2 {
		t.Fatalf("len(EvalCaseResults) = %d, want 2", len(result.EvalCaseResults))
	}

	// Case order must match the eval set.
	if got := result.EvalCaseResults[0].EvalID; got != "case_pass" {
		t.Errorf("EvalCaseResults[0].EvalID = %q, want %q", got, "case_pass")
	}
	if got := result.EvalCaseResults[0].Result.OverallStatus; got != evaluation.EvalStatusPassed {
		t.Errorf("case_pass status = %v, want %v", got, evaluation.EvalStatusPassed)
	}
	if got := result.EvalCaseResults[1].Result.OverallStatus; got != evaluation.EvalStatusFailed {
		t.Errorf("case_fail status = %v, want %v", got, evaluation.EvalStatusFailed)
	}
}

func TestRunEvalSetPersistsResult(t *testing.T) {
	judge := &scriptedJudge{verdicts: map[string]string{"good answer": "valid"}}
	store := storage.NewMemory()
	r := New(judge, WithStorage(store))

	evalSet := &evaluation.EvalSet{
		ID:        "set_1",
		EvalCases: []evaluation.EvalCase{evalCase("case_1", "query", "reference answer")},
	}
	producer := echoProducer(map[string]string{"case_1": "good answer"})

	result, err := r.RunEvalSet(t.Context(), "app", evalSet, metricForTest(), producer)
	if err != nil {
		t.Fatalf("RunEvalSet() failed: %v", err)
	}

	stored, err := store.GetEvalSetResult(t.Context(), "app", result.EvalSetResultID)
	if err != nil {
		t.Fatalf("GetEvalSetResult() failed: %v", err)
	}
	if stored.EvalSetID != "set_1" {
		t.Errorf("stored EvalSetID = %q, want %q", stored.EvalSetID, "set_1")
	}
}

func TestRunEvalSetProducerError(t *testing.T) {
	judge := &scriptedJudge{verdicts: map[string]string{}}
	r := New(judge)

	evalSet := &evaluation.EvalSet{
		ID:        "set_1",
		EvalCases: []evaluation.EvalCase{evalCase("case_1", "query", "reference answer")},
	}
	producer := func(ctx context.Context, ec *evaluation.EvalCase) ([]evaluation.Invocation, error) {
		return nil, fmt.Errorf("inference backend unavailable")
	}

	if _, err := r.RunEvalSet(t.Context(), "app", evalSet, metricForTest(), producer); err == nil {
		t.Fatal("RunEvalSet() succeeded with failing producer, want error")
	}
}

func TestRunEvalSetUnknownMetric(t *testing.T) {
	r := New(&scriptedJudge{})
	evalSet := &evaluation.EvalSet{ID: "set_1"}

	metric := evaluation.EvalMetric{MetricName: "no_such_metric"}
	if _, err := r.RunEvalSet(t.Context(), "app", evalSet, metric, nil); err == nil {
		t.Fatal("RunEvalSet() succeeded with unregistered metric, want error")
	}
}
