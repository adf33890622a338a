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

// Package model defines the LLM client surface consumed by the evaluation
// harness. The judge model is modeled as an opaque generator; callers that
// need timeouts or cancellation wrap the call with a context.
package model

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// LLM is a language model that can generate content.
type LLM interface {
	Name() string
	GenerateContent(ctx context.Context, req *LLMRequest, stream bool) LLMResponseStream
}

// LLMRequest is the input to an LLM's generate call.
type LLMRequest struct {
	// Model overrides the model name for implementations that can serve
	// multiple models. Optional.
	Model string

	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// LLMResponseStream yields model responses. Non-streaming calls yield a
// single response.
type LLMResponseStream iter.Seq2[*LLMResponse, error]

// LLMResponse carries the first candidate returned by the model.
type LLMResponse struct {
	Content      *genai.Content
	FinishReason genai.FinishReason

	// Partial indicates the content is a chunk of an unfinished stream.
	Partial bool
	// TurnComplete indicates the model finished the whole turn.
	TurnComplete bool
}
