// Package ratelimit throttles the API endpoints that spend LLM calls.
package ratelimit

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the outcome of an Allow call.
type Info struct {
	Allowed    bool
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
}

// Limiter keeps one token bucket per matching rule.
type Limiter struct {
	config   *Config
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLimiter creates a Limiter. A nil config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{}
	}
	return &Limiter{
		config:   config,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether a request to method and path may proceed, consuming
// a token when it does.
func (l *Limiter) Allow(method, path string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}
	rule := Match(path, method, l.config.Rules)
	if rule == nil || rule.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	info := Info{Limit: rule.Limit, Window: rule.Window}
	r := l.bucket(rule).Reserve()
	if !r.OK() {
		return false, info
	}
	if delay := r.Delay(); delay > 0 {
		r.Cancel()
		info.RetryAfter = delay
		return false, info
	}
	info.Allowed = true
	return true, info
}

func (l *Limiter) bucket(rule *Rule) *rate.Limiter {
	key := rule.Method + " " + rule.Path

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.limiters[key]; ok {
		return b
	}
	burst := rule.Burst
	if burst <= 0 {
		burst = rule.Limit
	}
	b := rate.NewLimiter(rate.Every(rule.Window/time.Duration(rule.Limit)), burst)
	l.limiters[key] = b
	return b
}

// Match returns the rule for path and method. Exact paths win over prefix
// rules; nil means unlimited.
func Match(path, method string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}
