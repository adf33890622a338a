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

package agentconfig

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Load parses a YAML config document. A document with a top-level
// "agents:" list is returned as is; a single-agent document with "type:"
// and "config:" keys is wrapped in an AgentsConfig with one entry.
func Load(data []byte) (*AgentsConfig, error) {
	var probe struct {
		Agents []yaml.Node `yaml:"agents"`
		Type   string      `yaml:"type"`
		Config yaml.Node   `yaml:"config"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse agent config: %w", err)
	}

	switch {
	case probe.Agents != nil:
		var cfg AgentsConfig
		if err := decodeStrict(data, &cfg); err != nil {
			return nil, err
		}
		if len(cfg.Agents) == 0 {
			return nil, fmt.Errorf("agent config must contain at least one agent")
		}
		return &cfg, nil
	case probe.Type != "" && probe.Config.Kind != 0:
		var cfg AgentConfig
		if err := decodeStrict(data, &cfg); err != nil {
			return nil, err
		}
		return &AgentsConfig{Agents: []AgentConfig{cfg}}, nil
	default:
		return nil, fmt.Errorf("agent config must have either an agents list or type and config fields")
	}
}

// LoadFile reads and parses the YAML config at path.
func LoadFile(path string) (*AgentsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent config: %w", err)
	}
	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode resolves the type-specific payload of ac into its config
// struct, rejecting unknown fields and validating the document against
// the schema for the agent type. The result is one of *LLMAgentConfig,
// *LoopAgentConfig or *CustomAgentConfig.
func (ac *AgentConfig) Decode() (any, error) {
	switch ac.Type {
	case TypeLLMAgent:
		return decodeTyped[LLMAgentConfig](&ac.Config, llmAgentSchema)
	case TypeLoopAgent:
		return decodeTyped[LoopAgentConfig](&ac.Config, loopAgentSchema)
	case TypeCustomAgent:
		return decodeTyped[CustomAgentConfig](&ac.Config, customAgentSchema)
	default:
		return nil, fmt.Errorf("unknown agent type: %q", ac.Type)
	}
}

// Base resolves just the shared BaseConfig fields of ac.
func (ac *AgentConfig) Base() (*BaseConfig, error) {
	cfg, err := ac.Decode()
	if err != nil {
		return nil, err
	}
	switch c := cfg.(type) {
	case *LLMAgentConfig:
		return &c.BaseConfig, nil
	case *LoopAgentConfig:
		return &c.BaseConfig, nil
	case *CustomAgentConfig:
		return &c.BaseConfig, nil
	}
	return nil, fmt.Errorf("unknown agent type: %q", ac.Type)
}

func decodeTyped[T any](node *yaml.Node, schema func() (*jsonschema.Resolved, error)) (*T, error) {
	resolved, err := schema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode agent config: %w", err)
	}
	if err := resolved.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}

	// Round-trip through bytes so the decoder can reject unknown fields;
	// yaml.Node.Decode has no strict mode.
	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("re-encode agent config: %w", err)
	}
	var cfg T
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode agent config: %w", err)
	}
	return nil
}

func schemaFor[T any]() func() (*jsonschema.Resolved, error) {
	return sync.OnceValues(func() (*jsonschema.Resolved, error) {
		schema, err := jsonschema.For[T](nil)
		if err != nil {
			return nil, fmt.Errorf("derive config schema: %w", err)
		}
		// Extra keys are caught by strict decoding with better positions.
		forEachSchema(schema, func(s *jsonschema.Schema) {
			s.AdditionalProperties = nil
		})
		return schema.Resolve(nil)
	})
}

func forEachSchema(s *jsonschema.Schema, fn func(*jsonschema.Schema)) {
	if s == nil {
		return
	}
	fn(s)
	for _, sub := range s.Properties {
		forEachSchema(sub, fn)
	}
	forEachSchema(s.Items, fn)
}

var (
	llmAgentSchema    = schemaFor[LLMAgentConfig]()
	loopAgentSchema   = schemaFor[LoopAgentConfig]()
	customAgentSchema = schemaFor[CustomAgentConfig]()
)
