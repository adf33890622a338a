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

// Package agentconfig declares the YAML configuration surface for agents.
//
// A config document either lists multiple agents under a top-level
// "agents:" key, or describes a single agent with "type:" and "config:"
// keys. Decoding is strict; unknown fields are rejected, and the decoded
// document is validated against a schema derived from the config structs.
package agentconfig

import "gopkg.in/yaml.v3"

// Agent type names accepted in the "type" field.
const (
	TypeLLMAgent    = "LlmAgent"
	TypeLoopAgent   = "LoopAgent"
	TypeCustomAgent = "CustomAgent"
)

// AgentsConfig is a config document listing multiple agents. The first
// agent is the root; the rest are reachable as sub-agents by name.
type AgentsConfig struct {
	Agents []AgentConfig `yaml:"agents" json:"agents"`
}

// AgentConfig pairs an agent type name with its type-specific config.
// The config payload stays an unresolved yaml.Node until the type is
// known; Decode it with the struct matching Type.
type AgentConfig struct {
	Type   string    `yaml:"type" json:"type"`
	Config yaml.Node `yaml:"config" json:"-"`
}

// BaseConfig holds the fields shared by every agent type.
type BaseConfig struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	BeforeAgentCallbacks []CodeConfig `yaml:"before_agent_callbacks,omitempty" json:"before_agent_callbacks,omitempty"`
	AfterAgentCallbacks  []CodeConfig `yaml:"after_agent_callbacks,omitempty" json:"after_agent_callbacks,omitempty"`

	SubAgents []SubAgentConfig `yaml:"sub_agents,omitempty" json:"sub_agents,omitempty"`
}

// LLMAgentConfig configures an LLM-based agent.
type LLMAgentConfig struct {
	BaseConfig `yaml:",inline"`

	// Model is optional; when empty the agent inherits the parent's model.
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	Instruction string `yaml:"instruction" json:"instruction"`

	Tools []CodeConfig `yaml:"tools,omitempty" json:"tools,omitempty"`

	InputSchema  *CodeConfig `yaml:"input_schema,omitempty" json:"input_schema,omitempty"`
	OutputSchema *CodeConfig `yaml:"output_schema,omitempty" json:"output_schema,omitempty"`

	BeforeModelCallbacks []CodeConfig `yaml:"before_model_callbacks,omitempty" json:"before_model_callbacks,omitempty"`
	AfterModelCallbacks  []CodeConfig `yaml:"after_model_callbacks,omitempty" json:"after_model_callbacks,omitempty"`
	BeforeToolCallbacks  []CodeConfig `yaml:"before_tool_callbacks,omitempty" json:"before_tool_callbacks,omitempty"`
	AfterToolCallbacks   []CodeConfig `yaml:"after_tool_callbacks,omitempty" json:"after_tool_callbacks,omitempty"`

	DisallowTransferToParent *bool `yaml:"disallow_transfer_to_parent,omitempty" json:"disallow_transfer_to_parent,omitempty"`
	DisallowTransferToPeers  *bool `yaml:"disallow_transfer_to_peers,omitempty" json:"disallow_transfer_to_peers,omitempty"`

	// IncludeContents is "default" or "none". Empty means "default".
	IncludeContents string `yaml:"include_contents,omitempty" json:"include_contents,omitempty"`

	OutputKey string `yaml:"output_key,omitempty" json:"output_key,omitempty"`
}

// LoopAgentConfig configures a loop agent.
type LoopAgentConfig struct {
	BaseConfig `yaml:",inline"`

	// MaxIterations of 0 means loop until a sub-agent escalates.
	MaxIterations int `yaml:"max_iterations,omitempty" json:"max_iterations,omitempty"`
}

// CustomAgentConfig configures an agent implemented in code.
type CustomAgentConfig struct {
	BaseConfig `yaml:",inline"`

	// Path is the registered code reference of the agent.
	Path string `yaml:"path" json:"path"`

	Args []ArgumentConfig `yaml:"args,omitempty" json:"args,omitempty"`
}

// SubAgentConfig references a sub-agent either by config (a file path or
// the name of another agent in the same document) or by code. Code takes
// precedence when both are set.
type SubAgentConfig struct {
	Config string      `yaml:"config,omitempty" json:"config,omitempty"`
	Code   *CodeConfig `yaml:"code,omitempty" json:"code,omitempty"`
}

// CodeConfig references a registered code object, optionally with
// constructor arguments.
type CodeConfig struct {
	Name string           `yaml:"name" json:"name"`
	Args []ArgumentConfig `yaml:"args,omitempty" json:"args,omitempty"`
}

// ArgumentConfig is one argument passed to a code reference. Name may be
// empty for positional arguments.
type ArgumentConfig struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Value any    `yaml:"value" json:"value"`
}
