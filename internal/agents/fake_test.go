package agents

import (
	"context"
	"sync"

	"github.com/jonathan/resume-reviewer/internal/llm"
)

// fakeClient returns canned responses and records prompts.
type fakeClient struct {
	mu      sync.Mutex
	text    string
	json    string
	err     error
	prompts []string
	tiers   []llm.ModelTier
}

func (f *fakeClient) record(prompt string, tier llm.ModelTier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.record(prompt, tier)
	return f.text, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.record(prompt, tier)
	return f.json, f.err
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-" + string(tier) }

func (f *fakeClient) Close() error { return nil }
