package llm

import (
	"context"
	"fmt"
	"sync"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	Name() string
}

// StaticProvider replies with canned text. It serves offline runs and tests.
type StaticProvider struct {
	Reply string
	Err   error

	mu      sync.Mutex
	prompts []string
}

var _ Provider = (*StaticProvider)(nil)

func (p *StaticProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()
	if p.Err != nil {
		return "", p.Err
	}
	return p.Reply, nil
}

func (p *StaticProvider) Name() string { return "static" }

// Prompts returns every prompt received so far.
func (p *StaticProvider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

// DisabledProvider always fails; it stands in when no provider is configured.
type DisabledProvider struct{}

func (DisabledProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	return "", fmt.Errorf("no llm provider configured")
}

func (DisabledProvider) Name() string { return "disabled" }
