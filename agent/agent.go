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

// Package agent defines the agent surface that configurations build.
package agent

import "fmt"

// Agent is a node in an agent tree.
type Agent interface {
	// Spec returns the agent's shared fields.
	Spec() *AgentSpec
}

// AgentSpec holds the fields every agent carries.
type AgentSpec struct {
	Name        string
	Description string

	parent    Agent
	subAgents []Agent
}

// Parent returns the agent this one is attached to, or nil for a root.
func (s *AgentSpec) Parent() Agent { return s.parent }

// SubAgents returns the attached sub-agents in attachment order.
func (s *AgentSpec) SubAgents() []Agent { return s.subAgents }

// AddSubAgent attaches sub as a child of self. An agent may have at most
// one parent.
func (s *AgentSpec) AddSubAgent(self, sub Agent) error {
	if p := sub.Spec().parent; p != nil {
		return fmt.Errorf("agent %s already has parent %s", sub.Spec().Name, p.Spec().Name)
	}
	sub.Spec().parent = self
	s.subAgents = append(s.subAgents, sub)
	return nil
}

// Option configures an agent under construction.
type Option func(*AgentSpec)

// WithDescription sets the agent description.
func WithDescription(description string) Option {
	return func(s *AgentSpec) { s.Description = description }
}

// Find returns the agent named name in the tree rooted at root, or nil.
func Find(root Agent, name string) Agent {
	if root == nil {
		return nil
	}
	if root.Spec().Name == name {
		return root
	}
	for _, sub := range root.Spec().SubAgents() {
		if found := Find(sub, name); found != nil {
			return found
		}
	}
	return nil
}
