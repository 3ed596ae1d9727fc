package agent

import (
	"context"
	"fmt"
	"sync"

	"property_valuation/pkg/core/llm"
)

// TaskComparableSelection is the task key for AI-assisted comparable selection.
const TaskComparableSelection = "comparable_selection"

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
	Gemini         GeminiConfig           `yaml:"gemini"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Description string `yaml:"description"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

// Manager resolves the provider for each task. Safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{Model: config.Gemini.Model},
			"disabled": llm.DisabledProvider{},
		},
	}
}

// Register adds or replaces a named provider.
func (m *Manager) Register(p llm.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[p.Name()] = p
}

// GetProvider returns the task override, else the active provider, else the
// disabled provider.
func (m *Manager) GetProvider(task string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if agentConfig, ok := m.config.Agents[task]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return llm.DisabledProvider{}
}

func (m *Manager) SetGlobalProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	return nil
}

func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists registered provider names.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}

// TaskProvider returns a provider that resolves the task's provider on every
// call, so later switches take effect.
func (m *Manager) TaskProvider(task string) llm.Provider {
	return taskProvider{m: m, task: task}
}

type taskProvider struct {
	m    *Manager
	task string
}

func (p taskProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	return p.m.GetProvider(p.task).GenerateResponse(ctx, prompt, systemPrompt, options)
}

func (p taskProvider) Name() string { return p.m.GetProvider(p.task).Name() }
