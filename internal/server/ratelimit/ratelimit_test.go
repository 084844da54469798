package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	rules := AgentRules(60)

	tests := []struct {
		method, path string
		want         string
	}{
		{"POST", "/review", "/review"},
		{"POST", "/review/jobs", "/review/jobs"},
		{"POST", "/companies/acme/jobs", "/companies/"},
		{"POST", "/people/jane/import", "/people/"},
		{"GET", "/review", ""},
		{"POST", "/people", ""},
		{"GET", "/health", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rule := Match(tt.path, tt.method, rules)
			if tt.want == "" {
				assert.Nil(t, rule)
				return
			}
			require.NotNil(t, rule)
			assert.Equal(t, tt.want, rule.Path)
		})
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Rules:   []Rule{{Path: "/build", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2}},
	})

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("POST", "/build")
		assert.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
	}

	allowed, info := l.Allow("POST", "/build")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, 6*time.Minute)

	// Other endpoints keep their own budget.
	allowed, _ = l.Allow("GET", "/people")
	assert.True(t, allowed)
}

func TestLimiter_RulesShareNothing(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Rules: AgentRules(10)})

	allowed, _ := l.Allow("POST", "/review")
	assert.True(t, allowed)
	allowed, _ = l.Allow("POST", "/review")
	assert.False(t, allowed)

	allowed, _ = l.Allow("POST", "/build")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	for _, l := range []*Limiter{NewLimiter(nil), NewLimiter(&Config{Enabled: false, Rules: AgentRules(1)})} {
		for i := 0; i < 5; i++ {
			allowed, info := l.Allow("POST", "/review")
			assert.True(t, allowed)
			assert.True(t, info.Allowed)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(func(string) string { return "" })
	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultAgentCallsPerHour, cfg.Rules[0].Limit)
	assert.Equal(t, 6, cfg.Rules[0].Burst)

	env := map[string]string{EnvEnabled: "false", EnvAgentLimit: "5"}
	cfg = LoadConfig(func(k string) string { return env[k] })
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.Rules[0].Limit)
	assert.Equal(t, 1, cfg.Rules[0].Burst)

	env = map[string]string{EnvAgentLimit: "-3"}
	cfg = LoadConfig(func(k string) string { return env[k] })
	assert.Equal(t, DefaultAgentCallsPerHour, cfg.Rules[0].Limit)
}
