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

package agent

import "fmt"

// IncludeContents controls how much conversation history an LLM agent
// sees per turn.
type IncludeContents string

const (
	IncludeContentsDefault IncludeContents = "default"
	IncludeContentsNone    IncludeContents = "none"
)

// Tool is anything an LLM agent can call. Concrete tools are registered
// by name and resolved when an agent is built from config.
type Tool interface {
	Name() string
	Description() string
}

// LLMAgent is an LLM-based agent.
type LLMAgent struct {
	agentSpec AgentSpec

	// Model may be empty, in which case the agent uses its parent's model.
	Model       string
	Instruction string

	Tools []Tool

	DisallowTransferToParent bool
	DisallowTransferToPeers  bool

	IncludeContents IncludeContents

	// OutputKey names the session state key the final response is saved
	// under. Empty means the response is not saved.
	OutputKey string
}

// NewLLMAgent creates an LLMAgent.
func NewLLMAgent(name, instruction string, opts ...Option) (*LLMAgent, error) {
	if name == "" {
		return nil, fmt.Errorf("agent requires a name")
	}
	a := &LLMAgent{
		agentSpec:       AgentSpec{Name: name},
		Instruction:     instruction,
		IncludeContents: IncludeContentsDefault,
	}
	for _, o := range opts {
		o(&a.agentSpec)
	}
	return a, nil
}

func (a *LLMAgent) Spec() *AgentSpec { return &a.agentSpec }
