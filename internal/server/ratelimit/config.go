package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Environment variables read by LoadConfig.
const (
	EnvEnabled    = "RESUME_REVIEWER_RATE_LIMIT"
	EnvAgentLimit = "RESUME_REVIEWER_AGENT_CALLS_PER_HOUR"
)

// DefaultAgentCallsPerHour caps requests that reach the LLM.
const DefaultAgentCallsPerHour = 60

// Rule limits one endpoint. A Path ending in "/" matches by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window; <= 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	Rules   []Rule
}

// LoadConfig builds a Config from the environment. Rate limiting is on by
// default and only covers endpoints that call the LLM.
func LoadConfig(getenv func(string) string) *Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	enabled := true
	if v, err := strconv.ParseBool(getenv(EnvEnabled)); err == nil {
		enabled = v
	}
	limit := DefaultAgentCallsPerHour
	if v, err := strconv.Atoi(getenv(EnvAgentLimit)); err == nil && v > 0 {
		limit = v
	}
	return &Config{Enabled: enabled, Rules: AgentRules(limit)}
}

// AgentRules returns rules for the LLM-backed endpoints with limit calls per
// hour each and a burst of a tenth of that.
func AgentRules(limit int) []Rule {
	burst := max(1, limit/10)
	return []Rule{
		{Path: "/review", Method: "POST", Limit: limit, Window: time.Hour, Burst: burst},
		{Path: "/review/jobs", Method: "POST", Limit: limit, Window: time.Hour, Burst: burst},
		{Path: "/build", Method: "POST", Limit: limit, Window: time.Hour, Burst: burst},
		{Path: "/people/", Method: "POST", Limit: limit, Window: time.Hour, Burst: burst},
		{Path: "/companies/", Method: "POST", Limit: limit, Window: time.Hour, Burst: burst},
	}
}
