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

// Package gemini provides a Gemini-backed model.LLM.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/raterkit/raterkit/model"
)

// Model calls the Gemini API through the genai client.
type Model struct {
	client *genai.Client
	name   string
}

var _ model.LLM = (*Model)(nil)

// New creates a Gemini-backed model. cfg may be nil, in which case the
// client is configured from the environment (GOOGLE_API_KEY etc.).
func New(ctx context.Context, name string, cfg *genai.ClientConfig) (*Model, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Model{client: client, name: name}, nil
}

func (m *Model) Name() string {
	return m.name
}

// GenerateContent generates a response for req. Streaming yields partial
// chunks until the model reports a finish reason.
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) model.LLMResponseStream {
	name := m.name
	if req.Model != "" {
		name = req.Model
	}
	if m.client == nil {
		return func(yield func(*model.LLMResponse, error) bool) {
			yield(nil, fmt.Errorf("gemini: model uninitialized"))
		}
	}
	if stream {
		return func(yield func(*model.LLMResponse, error) bool) {
			for resp, err := range m.client.Models.GenerateContentStream(ctx, name, req.Contents, req.Config) {
				if err != nil {
					yield(nil, err)
					return
				}
				if len(resp.Candidates) == 0 {
					yield(nil, fmt.Errorf("gemini: empty response"))
					return
				}
				candidate := resp.Candidates[0]
				complete := candidate.FinishReason != ""
				if !yield(&model.LLMResponse{
					Content:      candidate.Content,
					FinishReason: candidate.FinishReason,
					Partial:      !complete,
					TurnComplete: complete,
				}, nil) {
					return
				}
			}
		}
	}
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.client.Models.GenerateContent(ctx, name, req.Contents, req.Config)
		if err != nil {
			yield(nil, err)
			return
		}
		if len(resp.Candidates) == 0 {
			yield(nil, fmt.Errorf("gemini: empty response"))
			return
		}
		candidate := resp.Candidates[0]
		yield(&model.LLMResponse{
			Content:      candidate.Content,
			FinishReason: candidate.FinishReason,
			TurnComplete: true,
		}, nil)
	}
}
