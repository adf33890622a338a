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

// LoopAgent repeatedly runs its sub-agents for a specified number of
// iterations or until a sub-agent escalates.
type LoopAgent struct {
	agentSpec AgentSpec

	// MaxIterations of 0 means loop until escalation.
	MaxIterations int
}

// NewLoopAgent creates a LoopAgent.
func NewLoopAgent(name string, maxIterations int, opts ...Option) (*LoopAgent, error) {
	if name == "" {
		return nil, fmt.Errorf("agent requires a name")
	}
	if maxIterations < 0 {
		return nil, fmt.Errorf("max iterations must not be negative, got %d", maxIterations)
	}
	a := &LoopAgent{
		agentSpec:     AgentSpec{Name: name},
		MaxIterations: maxIterations,
	}
	for _, o := range opts {
		o(&a.agentSpec)
	}
	return a, nil
}

func (a *LoopAgent) Spec() *AgentSpec { return &a.agentSpec }
