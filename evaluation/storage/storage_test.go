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

package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/raterkit/raterkit/evaluation"
)

// backends returns every Storage implementation under test.
func backends(t *testing.T) map[string]evaluation.Storage {
	t.Helper()

	fileStore, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() failed: %v", err)
	}
	dbStore, err := NewSQLite(filepath.Join(t.TempDir(), "eval.db"))
	if err != nil {
		t.Fatalf("NewSQLite() failed: %v", err)
	}
	return map[string]evaluation.Storage{
		"memory":   NewMemory(),
		"file":     fileStore,
		"database": dbStore,
	}
}

func testEvalSet(id string) *evaluation.EvalSet {
	return &evaluation.EvalSet{
		ID:   id,
		Name: "smoke tests",
		EvalCases: []evaluation.EvalCase{
			{
				EvalID: "case_1",
				Conversation: []evaluation.Invocation{
					{
						InvocationID:  "inv_1",
						UserContent:   genai.NewContentFromText("What is the weather?", genai.RoleUser),
						FinalResponse: genai.NewContentFromText("Sunny, 25 degrees.", genai.RoleModel),
					},
				},
			},
		},
	}
}

func testResult(id, evalSetID string) *evaluation.EvalSetResult {
	score := 1.0
	return &evaluation.EvalSetResult{
		EvalSetResultID: id,
		EvalSetID:       evalSetID,
		Metric: evaluation.EvalMetric{
			MetricName: evaluation.MetricFinalResponseMatch,
			Threshold:  0.5,
		},
		EvalCaseResults: []evaluation.EvalCaseResult{
			{
				EvalSetID: evalSetID,
				EvalID:    "case_1",
				Result: evaluation.EvaluationResult{
					OverallScore:  1.0,
					OverallStatus: evaluation.EvalStatusPassed,
					PerInvocationResults: []evaluation.PerInvocationResult{
						{Score: &score, Status: evaluation.EvalStatusPassed},
					},
				},
			},
		},
	}
}

func TestEvalSetRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			want := testEvalSet("set_1")

			if err := store.SaveEvalSet(ctx, "app", want); err != nil {
				t.Fatalf("SaveEvalSet() failed: %v", err)
			}
			got, err := store.GetEvalSet(ctx, "app", "set_1")
			if err != nil {
				t.Fatalf("GetEvalSet() failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("GetEvalSet() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalSetNotFound(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			if _, err := store.GetEvalSet(ctx, "app", "missing"); !errors.Is(err, evaluation.ErrNotFound) {
				t.Errorf("GetEvalSet() error = %v, want ErrNotFound", err)
			}
			if err := store.DeleteEvalSet(ctx, "app", "missing"); !errors.Is(err, evaluation.ErrNotFound) {
				t.Errorf("DeleteEvalSet() error = %v, want ErrNotFound", err)
			}
			if _, err := store.GetEvalSetResult(ctx, "app", "missing"); !errors.Is(err, evaluation.ErrNotFound) {
				t.Errorf("GetEvalSetResult() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSaveEvalSetInvalidInput(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			if err := store.SaveEvalSet(ctx, "app", nil); !errors.Is(err, evaluation.ErrInvalidInput) {
				t.Errorf("SaveEvalSet(nil) error = %v, want ErrInvalidInput", err)
			}
			if err := store.SaveEvalSet(ctx, "app", &evaluation.EvalSet{}); !errors.Is(err, evaluation.ErrInvalidInput) {
				t.Errorf("SaveEvalSet(no ID) error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSaveEvalSetOverwrites(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			first := testEvalSet("set_1")
			if err := store.SaveEvalSet(ctx, "app", first); err != nil {
				t.Fatalf("SaveEvalSet() failed: %v", err)
			}

			second := testEvalSet("set_1")
			second.Name = "renamed"
			if err := store.SaveEvalSet(ctx, "app", second); err != nil {
				t.Fatalf("second SaveEvalSet() failed: %v", err)
			}

			got, err := store.GetEvalSet(ctx, "app", "set_1")
			if err != nil {
				t.Fatalf("GetEvalSet() failed: %v", err)
			}
			if got.Name != "renamed" {
				t.Errorf("Name = %q, want %q", got.Name, "renamed")
			}
		})
	}
}

func TestListEvalSetsIsolatedByApp(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			if err := store.SaveEvalSet(ctx, "app_a", testEvalSet("set_1")); err != nil {
				t.Fatalf("SaveEvalSet() failed: %v", err)
			}
			if err := store.SaveEvalSet(ctx, "app_a", testEvalSet("set_2")); err != nil {
				t.Fatalf("SaveEvalSet() failed: %v", err)
			}
			if err := store.SaveEvalSet(ctx, "app_b", testEvalSet("set_3")); err != nil {
				t.Fatalf("SaveEvalSet() failed: %v", err)
			}

			setsA, err := store.ListEvalSets(ctx, "app_a")
			if err != nil {
				t.Fatalf("ListEvalSets() failed: %v", err)
			}
			if len(setsA) != 2 {
				t.Errorf("len(ListEvalSets(app_a)) = %d, want 2", len(setsA))
			}
			setsC, err := store.ListEvalSets(ctx, "app_c")
			if err != nil {
				t.Fatalf("ListEvalSets() failed: %v", err)
			}
			if len(setsC) != 0 {
				t.Errorf("len(ListEvalSets(app_c)) = %d, want 0", len(setsC))
			}
		})
	}
}

func TestDeleteEvalSet(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			if err := store.SaveEvalSet(ctx, "app", testEvalSet("set_1")); err != nil {
				t.Fatalf("SaveEvalSet() failed: %v", err)
			}
			if err := store.DeleteEvalSet(ctx, "app", "set_1"); err != nil {
				t.Fatalf("DeleteEvalSet() failed: %v", err)
			}
			if _, err := store.GetEvalSet(ctx, "app", "set_1"); !errors.Is(err, evaluation.ErrNotFound) {
				t.Errorf("GetEvalSet() after delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestEvalSetResultRoundTrip(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			want := testResult("result_1", "set_1")

			if err := store.SaveEvalSetResult(ctx, "app", want); err != nil {
				t.Fatalf("SaveEvalSetResult() failed: %v", err)
			}
			got, err := store.GetEvalSetResult(ctx, "app", "result_1")
			if err != nil {
				t.Fatalf("GetEvalSetResult() failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("GetEvalSetResult() mismatch (-want +got):\n%s", diff)
			}

			results, err := store.ListEvalSetResults(ctx, "app")
			if err != nil {
				t.Fatalf("ListEvalSetResults() failed: %v", err)
			}
			if len(results) != 1 {
				t.Errorf("len(ListEvalSetResults()) = %d, want 1", len(results))
			}
		})
	}
}

func TestSavedEvalSetDoesNotAliasCaller(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			evalSet := testEvalSet("set_1")
			if err := store.SaveEvalSet(ctx, "app", evalSet); err != nil {
				t.Fatalf("SaveEvalSet() failed: %v", err)
			}

			// Mutating the saved value must not leak into storage.
			evalSet.Name = "mutated"
			evalSet.EvalCases[0].EvalID = "mutated"

			got, err := store.GetEvalSet(ctx, "app", "set_1")
			if err != nil {
				t.Fatalf("GetEvalSet() failed: %v", err)
			}
			if got.Name != "smoke tests" {
				t.Errorf("Name = %q, want %q", got.Name, "smoke tests")
			}
			if got.EvalCases[0].EvalID != "case_1" {
				t.Errorf("EvalID = %q, want %q", got.EvalCases[0].EvalID, "case_1")
			}
		})
	}
}
