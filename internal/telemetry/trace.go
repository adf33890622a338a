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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.36.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/raterkit/raterkit/internal/version"
)

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(
		scopeName,
		trace.WithInstrumentationVersion(version.Version),
	)
}

// StartJudgeSpan starts a span covering one judge-model call.
func StartJudgeSpan(ctx context.Context, metricName, judgeModel string) (context.Context, trace.Span) {
	return tracer().Start(ctx, "evaluate "+metricName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.GenAIRequestModel(judgeModel),
			attribute.String("raterkit.metric", metricName),
		),
	)
}

// EndJudgeSpan finalizes the span, recording err when non-nil.
func EndJudgeSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
