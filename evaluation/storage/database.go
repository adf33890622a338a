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
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/raterkit/raterkit/evaluation"
)

// evalSetRow persists an eval set as a JSON payload keyed by app and ID.
type evalSetRow struct {
	AppName   string `gorm:"primaryKey;size:256"`
	EvalSetID string `gorm:"primaryKey;size:256"`
	Payload   string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (evalSetRow) TableName() string { return "eval_sets" }

// evalSetResultRow persists a run result as a JSON payload.
type evalSetResultRow struct {
	AppName         string `gorm:"primaryKey;size:256"`
	EvalSetResultID string `gorm:"primaryKey;size:256"`
	EvalSetID       string `gorm:"index;size:256"`
	Payload         string `gorm:"type:text"`
	CreatedAt       time.Time
}

func (evalSetResultRow) TableName() string { return "eval_set_results" }

// Database is a gorm-backed evaluation.Storage. Eval sets and results
// are stored as JSON payload columns; lookups go through the key
// columns only.
type Database struct {
	db *gorm.DB
}

var _ evaluation.Storage = (*Database)(nil)

// NewSQLite opens (or creates) a SQLite database at path and migrates
// the storage schema.
func NewSQLite(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %s: %w", path, err)
	}
	return NewDatabase(db)
}

// NewDatabase wraps an existing gorm handle and migrates the storage
// schema.
func NewDatabase(db *gorm.DB) (*Database, error) {
	if err := db.AutoMigrate(&evalSetRow{}, &evalSetResultRow{}); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return &Database{db: db}, nil
}

// SaveEvalSet stores an evaluation set, replacing any previous version.
func (d *Database) SaveEvalSet(ctx context.Context, appName string, evalSet *evaluation.EvalSet) error {
	if evalSet == nil || evalSet.ID == "" {
		return evaluation.ErrInvalidInput
	}

	payload, err := json.Marshal(evalSet)
	if err != nil {
		return fmt.Errorf("storage: marshal eval set: %w", err)
	}
	row := evalSetRow{
		AppName:   appName,
		EvalSetID: evalSet.ID,
		Payload:   string(payload),
	}
	err = d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("storage: save eval set: %w", err)
	}
	return nil
}

// GetEvalSet retrieves an evaluation set by ID.
func (d *Database) GetEvalSet(ctx context.Context, appName, evalSetID string) (*evaluation.EvalSet, error) {
	var row evalSetRow
	err := d.db.WithContext(ctx).
		Where("app_name = ? AND eval_set_id = ?", appName, evalSetID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, evaluation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get eval set: %w", err)
	}

	var evalSet evaluation.EvalSet
	if err := json.Unmarshal([]byte(row.Payload), &evalSet); err != nil {
		return nil, fmt.Errorf("storage: unmarshal eval set: %w", err)
	}
	return &evalSet, nil
}

// ListEvalSets returns all evaluation sets for an application.
func (d *Database) ListEvalSets(ctx context.Context, appName string) ([]evaluation.EvalSet, error) {
	var rows []evalSetRow
	err := d.db.WithContext(ctx).
		Where("app_name = ?", appName).
		Order("eval_set_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("storage: list eval sets: %w", err)
	}

	evalSets := make([]evaluation.EvalSet, 0, len(rows))
	for _, row := range rows {
		var evalSet evaluation.EvalSet
		if err := json.Unmarshal([]byte(row.Payload), &evalSet); err != nil {
			return nil, fmt.Errorf("storage: unmarshal eval set %s: %w", row.EvalSetID, err)
		}
		evalSets = append(evalSets, evalSet)
	}
	return evalSets, nil
}

// DeleteEvalSet removes an evaluation set.
func (d *Database) DeleteEvalSet(ctx context.Context, appName, evalSetID string) error {
	res := d.db.WithContext(ctx).
		Where("app_name = ? AND eval_set_id = ?", appName, evalSetID).
		Delete(&evalSetRow{})
	if res.Error != nil {
		return fmt.Errorf("storage: delete eval set: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return evaluation.ErrNotFound
	}
	return nil
}

// SaveEvalSetResult stores a run result.
func (d *Database) SaveEvalSetResult(ctx context.Context, appName string, result *evaluation.EvalSetResult) error {
	if result == nil || result.EvalSetResultID == "" {
		return evaluation.ErrInvalidInput
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("storage: marshal result: %w", err)
	}
	row := evalSetResultRow{
		AppName:         appName,
		EvalSetResultID: result.EvalSetResultID,
		EvalSetID:       result.EvalSetID,
		Payload:         string(payload),
	}
	err = d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("storage: save result: %w", err)
	}
	return nil
}

// GetEvalSetResult retrieves a run result by ID.
func (d *Database) GetEvalSetResult(ctx context.Context, appName, resultID string) (*evaluation.EvalSetResult, error) {
	var row evalSetResultRow
	err := d.db.WithContext(ctx).
		Where("app_name = ? AND eval_set_result_id = ?", appName, resultID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, evaluation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get result: %w", err)
	}

	var result evaluation.EvalSetResult
	if err := json.Unmarshal([]byte(row.Payload), &result); err != nil {
		return nil, fmt.Errorf("storage: unmarshal result: %w", err)
	}
	return &result, nil
}

// ListEvalSetResults returns all run results for an application.
func (d *Database) ListEvalSetResults(ctx context.Context, appName string) ([]evaluation.EvalSetResult, error) {
	var rows []evalSetResultRow
	err := d.db.WithContext(ctx).
		Where("app_name = ?", appName).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("storage: list results: %w", err)
	}

	results := make([]evaluation.EvalSetResult, 0, len(rows))
	for _, row := range rows {
		var result evaluation.EvalSetResult
		if err := json.Unmarshal([]byte(row.Payload), &result); err != nil {
			return nil, fmt.Errorf("storage: unmarshal result %s: %w", row.EvalSetResultID, err)
		}
		results = append(results, result)
	}
	return results, nil
}
