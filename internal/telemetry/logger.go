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

// Package telemetry emits OpenTelemetry log events for judge-model
// traffic and evaluation failures.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	semconv "go.opentelemetry.io/otel/semconv/v1.36.0"

	"github.com/raterkit/raterkit/internal/version"
	"github.com/raterkit/raterkit/model"
)

const scopeName = "github.com/raterkit/raterkit"

// Prompt and response content is not logged by default. Set the following
// env variable to enable logging of judge prompt/response content.
// OTEL_INSTRUMENTATION_GENAI_CAPTURE_MESSAGE_CONTENT=true
var elideMessageContent = !isEnvVarTrue("OTEL_INSTRUMENTATION_GENAI_CAPTURE_MESSAGE_CONTENT")

const elidedContent = "<elided>"

func logger() log.Logger {
	return global.GetLoggerProvider().Logger(
		scopeName,
		log.WithSchemaURL(semconv.SchemaURL),
		log.WithInstrumentationVersion(version.Version),
	)
}

// LogJudgePrompt logs the prompt sent to the judge model as a
// gen_ai.user.message event.
func LogJudgePrompt(ctx context.Context, judgeModel, prompt string) {
	record := log.Record{}
	record.SetEventName("gen_ai.user.message")
	record.SetBody(log.MapValue(
		log.KeyValue{Key: "content", Value: textToLogValue(prompt)},
	))
	record.AddAttributes(
		log.String(string(semconv.GenAIRequestModelKey), judgeModel),
	)
	logger().Emit(ctx, record)
}

// LogJudgeResponse logs one judge-model completion as a gen_ai.choice
// event. A nil response with a non-nil err records the failure instead.
func LogJudgeResponse(ctx context.Context, judgeModel string, resp *model.LLMResponse, err error) {
	record := log.Record{}
	record.SetEventName("gen_ai.choice")

	if err != nil {
		record.SetSeverity(log.SeverityError)
		record.SetBody(log.StringValue(fmt.Sprintf("judge model call failed: %v", err)))
		logger().Emit(ctx, record)
		return
	}

	kvs := []log.KeyValue{
		// The data model keeps a single candidate; index is always 0.
		log.Int("index", 0),
		{Key: "content", Value: contentToLogValue(resp)},
	}
	if resp != nil && resp.FinishReason != "" {
		kvs = append(kvs, log.String("finish_reason", string(resp.FinishReason)))
	}
	record.SetBody(log.MapValue(kvs...))
	record.AddAttributes(
		log.String(string(semconv.GenAIRequestModelKey), judgeModel),
	)
	logger().Emit(ctx, record)
}

// Errorf emits an error-severity record. Used where a recoverable
// failure must be visible without aborting the run.
func Errorf(ctx context.Context, format string, args ...any) {
	record := log.Record{}
	record.SetSeverity(log.SeverityError)
	record.SetSeverityText("ERROR")
	record.SetBody(log.StringValue(fmt.Sprintf(format, args...)))
	logger().Emit(ctx, record)
}

func contentToLogValue(resp *model.LLMResponse) log.Value {
	if resp == nil || resp.Content == nil {
		return log.Value{}
	}
	var texts []string
	for _, part := range resp.Content.Parts {
		if part != nil && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return textToLogValue(strings.Join(texts, "\n"))
}

func textToLogValue(text string) log.Value {
	if elideMessageContent {
		return log.StringValue(elidedContent)
	}
	return log.StringValue(text)
}

func isEnvVarTrue(name string) bool {
	val, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	val = strings.ToLower(val)
	return val == "true" || val == "1"
}
