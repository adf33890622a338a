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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/raterkit/raterkit/evaluation"
)

// File is a JSON-file-backed evaluation.Storage. Layout:
//
//	<basePath>/
//	  <appName>/
//	    eval_sets/<evalSetID>.json
//	    results/<resultID>.json
type File struct {
	mu       sync.RWMutex
	basePath string
}

var _ evaluation.Storage = (*File)(nil)

// NewFile creates a file storage rooted at basePath, creating the
// directory when missing.
func NewFile(basePath string) (*File, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create base directory: %w", err)
	}
	return &File{basePath: basePath}, nil
}

func (f *File) evalSetPath(appName, evalSetID string) string {
	return filepath.Join(f.basePath, appName, "eval_sets", evalSetID+".json")
}

func (f *File) resultPath(appName, resultID string) string {
	return filepath.Join(f.basePath, appName, "results", resultID+".json")
}

// SaveEvalSet stores an evaluation set.
func (f *File) SaveEvalSet(ctx context.Context, appName string, evalSet *evaluation.EvalSet) error {
	if evalSet == nil || evalSet.ID == "" {
		return evaluation.ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return writeJSON(f.evalSetPath(appName, evalSet.ID), evalSet)
}

// GetEvalSet retrieves an evaluation set by ID.
func (f *File) GetEvalSet(ctx context.Context, appName, evalSetID string) (*evaluation.EvalSet, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return readJSON[evaluation.EvalSet](f.evalSetPath(appName, evalSetID))
}

// ListEvalSets returns all evaluation sets for an application.
func (f *File) ListEvalSets(ctx context.Context, appName string) ([]evaluation.EvalSet, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return listJSON[evaluation.EvalSet](filepath.Join(f.basePath, appName, "eval_sets"))
}

// DeleteEvalSet removes an evaluation set.
func (f *File) DeleteEvalSet(ctx context.Context, appName, evalSetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.evalSetPath(appName, evalSetID)); err != nil {
		if os.IsNotExist(err) {
			return evaluation.ErrNotFound
		}
		return fmt.Errorf("storage: delete eval set: %w", err)
	}
	return nil
}

// SaveEvalSetResult stores a run result.
func (f *File) SaveEvalSetResult(ctx context.Context, appName string, result *evaluation.EvalSetResult) error {
	if result == nil || result.EvalSetResultID == "" {
		return evaluation.ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return writeJSON(f.resultPath(appName, result.EvalSetResultID), result)
}

// GetEvalSetResult retrieves a run result by ID.
func (f *File) GetEvalSetResult(ctx context.Context, appName, resultID string) (*evaluation.EvalSetResult, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return readJSON[evaluation.EvalSetResult](f.resultPath(appName, resultID))
}

// ListEvalSetResults returns all run results for an application.
func (f *File) ListEvalSetResults(ctx context.Context, appName string) ([]evaluation.EvalSetResult, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return listJSON[evaluation.EvalSetResult](filepath.Join(f.basePath, appName, "results"))
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: create directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	return nil
}

func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("storage: unmarshal %s: %w", path, err)
	}
	return out, nil
}

func listJSON[T any](dir string) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("storage: read directory %s: %w", dir, err)
	}

	var out []T
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		item, err := readJSON[T](filepath.Join(dir, entry.Name()))
		if err != nil {
			// Skip files that other writers left half-formed.
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}
