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

package telemetry

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"google.golang.org/genai"

	"github.com/raterkit/raterkit/model"
)

func setup(t *testing.T, elided bool) *inMemoryExporter {
	t.Helper()

	exporter := &inMemoryExporter{}
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)),
	)
	original := global.GetLoggerProvider()
	global.SetLoggerProvider(provider)
	t.Cleanup(func() {
		global.SetLoggerProvider(original)
	})

	originalElide := elideMessageContent
	elideMessageContent = elided
	t.Cleanup(func() {
		elideMessageContent = originalElide
	})
	return exporter
}

type inMemoryExporter struct {
	records []sdklog.Record
}

func (e *inMemoryExporter) Export(ctx context.Context, records []sdklog.Record) error {
	e.records = append(e.records, records...)
	return nil
}

func (e *inMemoryExporter) Shutdown(ctx context.Context) error   { return nil }
func (e *inMemoryExporter) ForceFlush(ctx context.Context) error { return nil }

// toGoValue converts a log.Value to a plain Go value. log.Value is not
// comparable by design.
func toGoValue(v log.Value) any {
	switch v.Kind() {
	case log.KindBool:
		return v.AsBool()
	case log.KindFloat64:
		return v.AsFloat64()
	case log.KindInt64:
		return v.AsInt64()
	case log.KindString:
		return v.AsString()
	case log.KindBytes:
		return v.AsBytes()
	case log.KindSlice:
		var s []any
		for _, v := range v.AsSlice() {
			s = append(s, toGoValue(v))
		}
		return s
	case log.KindMap:
		m := make(map[string]any)
		for _, kv := range v.AsMap() {
			m[kv.Key] = toGoValue(kv.Value)
		}
		return m
	default:
		return nil
	}
}

func TestLogJudgePrompt(t *testing.T) {
	tests := []struct {
		name     string
		elide    bool
		wantBody map[string]any
	}{
		{
			name:  "content captured",
			elide: false,
			wantBody: map[string]any{
				"content": "Is this response valid?",
			},
		},
		{
			name:  "content elided",
			elide: true,
			wantBody: map[string]any{
				"content": "<elided>",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exporter := setup(t, tc.elide)

			LogJudgePrompt(context.Background(), "gemini-2.5-flash", "Is this response valid?")

			if len(exporter.records) != 1 {
				t.Fatalf("got %d records, want 1", len(exporter.records))
			}
			record := exporter.records[0]
			if got := record.EventName(); got != "gen_ai.user.message" {
				t.Errorf("EventName() = %q, want %q", got, "gen_ai.user.message")
			}
			if diff := cmp.Diff(tc.wantBody, toGoValue(record.Body())); diff != "" {
				t.Errorf("Body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogJudgeResponse(t *testing.T) {
	tests := []struct {
		name     string
		elide    bool
		resp     *model.LLMResponse
		err      error
		wantBody any
	}{
		{
			name: "response captured",
			resp: &model.LLMResponse{
				Content:      genai.NewContentFromText("{\"is_the_agent_response_valid\": \"valid\"}", genai.RoleModel),
				FinishReason: genai.FinishReasonStop,
			},
			wantBody: map[string]any{
				"index":         int64(0),
				"content":       "{\"is_the_agent_response_valid\": \"valid\"}",
				"finish_reason": "STOP",
			},
		},
		{
			name:  "response elided",
			elide: true,
			resp: &model.LLMResponse{
				Content: genai.NewContentFromText("secret verdict", genai.RoleModel),
			},
			wantBody: map[string]any{
				"index":   int64(0),
				"content": "<elided>",
			},
		},
		{
			name:     "call failure recorded",
			err:      fmt.Errorf("deadline exceeded"),
			wantBody: "judge model call failed: deadline exceeded",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exporter := setup(t, tc.elide)

			LogJudgeResponse(context.Background(), "gemini-2.5-flash", tc.resp, tc.err)

			if len(exporter.records) != 1 {
				t.Fatalf("got %d records, want 1", len(exporter.records))
			}
			record := exporter.records[0]
			if got := record.EventName(); got != "gen_ai.choice" {
				t.Errorf("EventName() = %q, want %q", got, "gen_ai.choice")
			}
			if diff := cmp.Diff(tc.wantBody, toGoValue(record.Body())); diff != "" {
				t.Errorf("Body mismatch (-want +got):\n%s", diff)
			}
			if tc.err != nil && record.Severity() != log.SeverityError {
				t.Errorf("Severity() = %v, want %v", record.Severity(), log.SeverityError)
			}
		})
	}
}

func TestErrorf(t *testing.T) {
	exporter := setup(t, false)

	Errorf(context.Background(), "failed to parse auto-rater response: %q", "garbage")

	if len(exporter.records) != 1 {
		t.Fatalf("got %d records, want 1", len(exporter.records))
	}
	record := exporter.records[0]
	if record.Severity() != log.SeverityError {
		t.Errorf("Severity() = %v, want %v", record.Severity(), log.SeverityError)
	}
	body := record.Body().AsString()
	if !strings.Contains(body, "garbage") {
		t.Errorf("Body = %q, want it to mention the raw response", body)
	}
}
