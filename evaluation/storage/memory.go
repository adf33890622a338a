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

// Package storage provides evaluation.Storage backends: in-memory,
// JSON files, and a gorm-backed database.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/raterkit/raterkit/evaluation"
)

// Memory is an in-memory evaluation.Storage, suitable for tests and
// development.
type Memory struct {
	mu sync.RWMutex

	// evalSets maps appName -> evalSetID -> EvalSet.
	evalSets map[string]map[string]*evaluation.EvalSet

	// results maps appName -> resultID -> EvalSetResult.
	results map[string]map[string]*evaluation.EvalSetResult
}

var _ evaluation.Storage = (*Memory)(nil)

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{
		evalSets: make(map[string]map[string]*evaluation.EvalSet),
		results:  make(map[string]map[string]*evaluation.EvalSetResult),
	}
}

// SaveEvalSet stores an evaluation set.
func (m *Memory) SaveEvalSet(ctx context.Context, appName string, evalSet *evaluation.EvalSet) error {
	if evalSet == nil || evalSet.ID == "" {
		return evaluation.ErrInvalidInput
	}

	copied, err := deepCopy(evalSet)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.evalSets[appName]; !ok {
		m.evalSets[appName] = make(map[string]*evaluation.EvalSet)
	}
	m.evalSets[appName][evalSet.ID] = copied
	return nil
}

// GetEvalSet retrieves an evaluation set by ID.
func (m *Memory) GetEvalSet(ctx context.Context, appName, evalSetID string) (*evaluation.EvalSet, error) {
	m.mu.RLock()
	evalSet, ok := m.evalSets[appName][evalSetID]
	m.mu.RUnlock()

	if !ok {
		return nil, evaluation.ErrNotFound
	}
	return deepCopy(evalSet)
}

// ListEvalSets returns all evaluation sets for an application.
func (m *Memory) ListEvalSets(ctx context.Context, appName string) ([]evaluation.EvalSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	evalSets := make([]evaluation.EvalSet, 0, len(m.evalSets[appName]))
	for _, evalSet := range m.evalSets[appName] {
		copied, err := deepCopy(evalSet)
		if err != nil {
			return nil, err
		}
		evalSets = append(evalSets, *copied)
	}
	return evalSets, nil
}

// DeleteEvalSet removes an evaluation set.
func (m *Memory) DeleteEvalSet(ctx context.Context, appName, evalSetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.evalSets[appName][evalSetID]; !ok {
		return evaluation.ErrNotFound
	}
	delete(m.evalSets[appName], evalSetID)
	return nil
}

// SaveEvalSetResult stores a run result.
func (m *Memory) SaveEvalSetResult(ctx context.Context, appName string, result *evaluation.EvalSetResult) error {
	if result == nil || result.EvalSetResultID == "" {
		return evaluation.ErrInvalidInput
	}

	copied, err := deepCopy(result)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.results[appName]; !ok {
		m.results[appName] = make(map[string]*evaluation.EvalSetResult)
	}
	m.results[appName][result.EvalSetResultID] = copied
	return nil
}

// GetEvalSetResult retrieves a run result by ID.
func (m *Memory) GetEvalSetResult(ctx context.Context, appName, resultID string) (*evaluation.EvalSetResult, error) {
	m.mu.RLock()
	result, ok := m.results[appName][resultID]
	m.mu.RUnlock()

	if !ok {
		return nil, evaluation.ErrNotFound
	}
	return deepCopy(result)
}

// ListEvalSetResults returns all run results for an application.
func (m *Memory) ListEvalSetResults(ctx context.Context, appName string) ([]evaluation.EvalSetResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]evaluation.EvalSetResult, 0, len(m.results[appName]))
	for _, result := range m.results[appName] {
		copied, err := deepCopy(result)
		if err != nil {
			return nil, err
		}
		results = append(results, *copied)
	}
	return results, nil
}

// deepCopy round-trips v through JSON so stored values cannot alias
// caller memory. The stored types are plain data; the round trip is
// lossless.
func deepCopy[T any](v *T) (*T, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("storage: copy: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("storage: copy: %w", err)
	}
	return out, nil
}
