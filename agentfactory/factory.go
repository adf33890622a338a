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

// Package agentfactory builds agent trees from configurations.
//
// Configs reference code objects (tools, callbacks, whole agents) by
// dotted name. Unlike dynamic languages there is no import machinery to
// resolve those names at run time, so the factory keeps an explicit code
// registry: applications register their objects under the names the
// configs use, and built-ins are pre-registered.
package agentfactory

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/raterkit/raterkit/agent"
	"github.com/raterkit/raterkit/agentconfig"
)

// Builder constructs an agent of one type from its decoded config. cfg
// is the type-specific config struct produced by AgentConfig.Decode.
type Builder func(f *Factory, cfg any) (agent.Agent, error)

// Factory builds agents from configurations. The zero value is not
// usable; call New.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]Builder
	code     map[string]any
}

// New creates a Factory with the built-in agent types registered.
func New() *Factory {
	f := &Factory{
		builders: make(map[string]Builder),
		code:     make(map[string]any),
	}
	f.RegisterAgentType(agentconfig.TypeLLMAgent, buildLLMAgent)
	f.RegisterAgentType(agentconfig.TypeLoopAgent, buildLoopAgent)
	f.RegisterAgentType(agentconfig.TypeCustomAgent, buildCustomAgent)
	return f
}

// RegisterAgentType registers a builder for an agent type name,
// replacing any previous registration.
func (f *Factory) RegisterAgentType(name string, b Builder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[name] = b
}

// RegisterCode registers a code object under a dotted name so configs
// can reference it.
func (f *Factory) RegisterCode(name string, obj any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code[name] = obj
}

// FromFile loads the YAML config at path and builds its root agent.
// Relative sub-agent config paths resolve against path's directory.
func (f *Factory) FromFile(path string) (agent.Agent, error) {
	cfg, err := agentconfig.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.fromConfig(cfg, filepath.Dir(path))
}

// FromConfig builds the root agent of cfg. The first agent in the list
// is the root; later agents are attachable as sub-agents by name.
func (f *Factory) FromConfig(cfg *agentconfig.AgentsConfig) (agent.Agent, error) {
	return f.fromConfig(cfg, "")
}

func (f *Factory) fromConfig(cfg *agentconfig.AgentsConfig, baseDir string) (agent.Agent, error) {
	if len(cfg.Agents) == 0 {
		return nil, fmt.Errorf("agent config must contain at least one agent")
	}
	b := &build{factory: f, baseDir: baseDir, siblings: cfg.Agents}
	return b.agent(&cfg.Agents[0])
}

// build carries the per-document state of one FromConfig call.
type build struct {
	factory  *Factory
	baseDir  string
	siblings []agentconfig.AgentConfig
}

func (b *build) agent(ac *agentconfig.AgentConfig) (agent.Agent, error) {
	b.factory.mu.RLock()
	builder, ok := b.factory.builders[ac.Type]
	b.factory.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown agent type: %q", ac.Type)
	}

	cfg, err := ac.Decode()
	if err != nil {
		return nil, err
	}
	a, err := builder(b.factory, cfg)
	if err != nil {
		return nil, err
	}

	base, err := ac.Base()
	if err != nil {
		return nil, err
	}
	for i := range base.SubAgents {
		sub, err := b.subAgent(&base.SubAgents[i])
		if err != nil {
			return nil, fmt.Errorf("build sub-agent of %s: %w", base.Name, err)
		}
		if err := a.Spec().AddSubAgent(a, sub); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (b *build) subAgent(sc *agentconfig.SubAgentConfig) (agent.Agent, error) {
	switch {
	case sc.Code != nil:
		obj, err := b.factory.resolveCode(sc.Code)
		if err != nil {
			return nil, err
		}
		a, ok := obj.(agent.Agent)
		if !ok {
			return nil, fmt.Errorf("code reference %s is %T, not an agent", sc.Code.Name, obj)
		}
		return a, nil
	case sc.Config != "":
		if sibling := b.sibling(sc.Config); sibling != nil {
			return b.agent(sibling)
		}
		path := sc.Config
		if !filepath.IsAbs(path) {
			path = filepath.Join(b.baseDir, path)
		}
		return b.factory.FromFile(path)
	default:
		return nil, fmt.Errorf("sub-agent must set either config or code")
	}
}

// sibling finds an agent defined in the same document by name. Config
// references with a path separator or extension are file paths, never
// sibling names.
func (b *build) sibling(ref string) *agentconfig.AgentConfig {
	if strings.ContainsAny(ref, `/\`) || filepath.Ext(ref) != "" {
		return nil
	}
	for i := range b.siblings {
		base, err := b.siblings[i].Base()
		if err == nil && base.Name == ref {
			return &b.siblings[i]
		}
	}
	return nil
}

func (f *Factory) resolveCode(cc *agentconfig.CodeConfig) (any, error) {
	if cc.Name == "" {
		return nil, fmt.Errorf("code reference requires a name")
	}
	f.mu.RLock()
	obj, ok := f.code[cc.Name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unregistered code reference: %q", cc.Name)
	}

	// A constructor function gets called with the configured arguments.
	if ctor, ok := obj.(func(args map[string]any) (any, error)); ok {
		args := make(map[string]any, len(cc.Args))
		for _, arg := range cc.Args {
			if arg.Name == "" {
				return nil, fmt.Errorf("code reference %s: positional arguments are not supported", cc.Name)
			}
			args[arg.Name] = arg.Value
		}
		return ctor(args)
	}
	if len(cc.Args) > 0 {
		return nil, fmt.Errorf("code reference %s does not take arguments", cc.Name)
	}
	return obj, nil
}
