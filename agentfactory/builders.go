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

package agentfactory

import (
	"fmt"

	"github.com/raterkit/raterkit/agent"
	"github.com/raterkit/raterkit/agentconfig"
)

func buildLLMAgent(f *Factory, cfg any) (agent.Agent, error) {
	c, ok := cfg.(*agentconfig.LLMAgentConfig)
	if !ok {
		return nil, fmt.Errorf("expected LlmAgent config, got %T", cfg)
	}

	a, err := agent.NewLLMAgent(c.Name, c.Instruction, agent.WithDescription(c.Description))
	if err != nil {
		return nil, err
	}
	a.Model = c.Model
	a.OutputKey = c.OutputKey
	if c.IncludeContents != "" {
		a.IncludeContents = agent.IncludeContents(c.IncludeContents)
	}
	if c.DisallowTransferToParent != nil {
		a.DisallowTransferToParent = *c.DisallowTransferToParent
	}
	if c.DisallowTransferToPeers != nil {
		a.DisallowTransferToPeers = *c.DisallowTransferToPeers
	}

	for i := range c.Tools {
		obj, err := f.resolveCode(&c.Tools[i])
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", c.Name, err)
		}
		tool, ok := obj.(agent.Tool)
		if !ok {
			return nil, fmt.Errorf("agent %s: code reference %s is %T, not a tool", c.Name, c.Tools[i].Name, obj)
		}
		a.Tools = append(a.Tools, tool)
	}
	return a, nil
}

func buildLoopAgent(f *Factory, cfg any) (agent.Agent, error) {
	c, ok := cfg.(*agentconfig.LoopAgentConfig)
	if !ok {
		return nil, fmt.Errorf("expected LoopAgent config, got %T", cfg)
	}
	return agent.NewLoopAgent(c.Name, c.MaxIterations, agent.WithDescription(c.Description))
}

func buildCustomAgent(f *Factory, cfg any) (agent.Agent, error) {
	c, ok := cfg.(*agentconfig.CustomAgentConfig)
	if !ok {
		return nil, fmt.Errorf("expected CustomAgent config, got %T", cfg)
	}
	obj, err := f.resolveCode(&agentconfig.CodeConfig{Name: c.Path, Args: c.Args})
	if err != nil {
		return nil, err
	}
	a, ok := obj.(agent.Agent)
	if !ok {
		return nil, fmt.Errorf("custom agent %s: code reference %s is %T, not an agent", c.Name, c.Path, obj)
	}
	return a, nil
}
