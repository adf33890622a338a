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

// Package eval runs an eval set against recorded agent responses.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raterkit/raterkit/cmd/cli/root"
	"github.com/raterkit/raterkit/evaluation"
	_ "github.com/raterkit/raterkit/evaluation/finalresponsematch"
	"github.com/raterkit/raterkit/evaluation/runner"
	"github.com/raterkit/raterkit/evaluation/storage"
	"github.com/raterkit/raterkit/model/gemini"
)

type evalFlags struct {
	appName    string
	evalSet    string
	actuals    string
	metricName string
	threshold  float64
	judgeModel string
	numSamples int
	outDir     string
	parallel   int
}

var flags evalFlags

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Scores an eval set of recorded agent responses with a judge model.",
	Long: `Loads an eval set (expected conversations) and a file of recorded
actual invocations keyed by eval case ID, asks the judge model whether
each actual final response matches the expected one, and prints the
per-case verdicts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return flags.run(cmd.Context())
	},
}

func init() {
	root.RootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&flags.appName, "app", "default", "Application name results are stored under")
	evalCmd.Flags().StringVar(&flags.evalSet, "evalset", "", "Path to the eval set JSON file")
	evalCmd.Flags().StringVar(&flags.actuals, "actuals", "", "Path to the recorded actual invocations JSON file")
	evalCmd.Flags().StringVar(&flags.metricName, "metric", evaluation.MetricFinalResponseMatch, "Metric to evaluate")
	evalCmd.Flags().Float64Var(&flags.threshold, "threshold", 0.5, "Pass threshold for the overall score")
	evalCmd.Flags().StringVar(&flags.judgeModel, "judge-model", "gemini-2.5-flash", "Judge model name")
	evalCmd.Flags().IntVar(&flags.numSamples, "samples", 1, "Judge samples per invocation")
	evalCmd.Flags().StringVar(&flags.outDir, "out", "", "Directory to persist results under; empty disables persistence")
	evalCmd.Flags().IntVar(&flags.parallel, "parallel", 4, "Eval cases evaluated concurrently")

	evalCmd.MarkFlagRequired("evalset")
	evalCmd.MarkFlagRequired("actuals")
}

func (f *evalFlags) run(ctx context.Context) error {
	var evalSet evaluation.EvalSet
	if err := readJSONFile(f.evalSet, &evalSet); err != nil {
		return err
	}

	// Actuals are keyed by eval case ID.
	var actuals map[string][]evaluation.Invocation
	if err := readJSONFile(f.actuals, &actuals); err != nil {
		return err
	}

	llm, err := gemini.New(ctx, f.judgeModel, nil)
	if err != nil {
		return fmt.Errorf("create judge model client: %w", err)
	}

	metric := evaluation.EvalMetric{
		MetricName: f.metricName,
		Threshold:  f.threshold,
		JudgeModelOptions: &evaluation.JudgeModelOptions{
			JudgeModel: f.judgeModel,
			NumSamples: f.numSamples,
		},
	}

	opts := []runner.Option{runner.WithConcurrency(f.parallel)}
	if f.outDir != "" {
		store, err := storage.NewFile(f.outDir)
		if err != nil {
			return fmt.Errorf("open result storage: %w", err)
		}
		opts = append(opts, runner.WithStorage(store))
	}
	r := runner.New(llm, opts...)

	result, err := r.RunEvalSet(ctx, f.appName, &evalSet, metric, func(ctx context.Context, evalCase *evaluation.EvalCase) ([]evaluation.Invocation, error) {
		recorded, ok := actuals[evalCase.EvalID]
		if !ok {
			return nil, fmt.Errorf("no recorded invocations for eval case %s", evalCase.EvalID)
		}
		return recorded, nil
	})
	if err != nil {
		return err
	}

	for _, cr := range result.EvalCaseResults {
		fmt.Printf("%s: %s (score %.3f, %d invocations)\n",
			cr.EvalID, cr.Result.OverallStatus, cr.Result.OverallScore, len(cr.Result.PerInvocationResults))
	}
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
