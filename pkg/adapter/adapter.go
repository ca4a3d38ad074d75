// Package adapter defines the {Discover, Convert} contract every vendor
// plugs into, plus a Registry so additional vendors add a new package
// without touching the core (spec §4.4).
package adapter

import (
	"fmt"
	"time"

	"github.com/spoolhq/spool/pkg/spoolfile"
)

// AgentType identifies which vendor produced a session transcript.
type AgentType string

const (
	AgentClaudeCode    AgentType = "claude_code"
	AgentCodex         AgentType = "codex"
	AgentCursor        AgentType = "cursor"
	AgentAider         AgentType = "aider"
	AgentGithubCopilot AgentType = "github_copilot"
	AgentUnknown       AgentType = "unknown"
)

// SessionInfo is the lightweight handle Discover returns for a session
// found on disk, before the (potentially expensive) full Convert pass.
type SessionInfo struct {
	Path         string
	Agent        AgentType
	CreatedAt    *time.Time
	ModifiedAt   *time.Time
	Title        *string
	ProjectDir   *string
	MessageCount *int
}

// Adapter discovers vendor session files on disk and converts one into a
// canonical SpoolFile.
type Adapter interface {
	// Discover finds candidate session files, newest-modified first.
	Discover() ([]SessionInfo, error)
	// Convert reads and converts a single session into a canonical file.
	Convert(info SessionInfo) (*spoolfile.SpoolFile, error)
}

// Registry dispatches Discover/Convert by vendor, so the CLI and cache
// layers work against any number of registered adapters uniformly.
type Registry struct {
	adapters map[AgentType]Adapter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[AgentType]Adapter)}
}

// Register adds (or replaces) the adapter for agent.
func (r *Registry) Register(agent AgentType, a Adapter) {
	r.adapters[agent] = a
}

// Get returns the adapter registered for agent, if any.
func (r *Registry) Get(agent AgentType) (Adapter, bool) {
	a, ok := r.adapters[agent]
	return a, ok
}

// DiscoverAll runs Discover across every registered adapter and returns the
// combined list. A single adapter's discovery failure is wrapped and
// returned immediately rather than silently dropping that vendor's
// sessions, since a failed discovery (e.g. unreadable config directory)
// usually means misconfiguration worth surfacing.
func (r *Registry) DiscoverAll() ([]SessionInfo, error) {
	var all []SessionInfo
	for agent, a := range r.adapters {
		infos, err := a.Discover()
		if err != nil {
			return nil, fmt.Errorf("adapter: discover %s: %w", agent, err)
		}
		all = append(all, infos...)
	}
	return all, nil
}

// Convert dispatches to the adapter registered for info.Agent.
func (r *Registry) Convert(info SessionInfo) (*spoolfile.SpoolFile, error) {
	a, ok := r.Get(info.Agent)
	if !ok {
		return nil, fmt.Errorf("adapter: no adapter registered for agent %q", info.Agent)
	}
	return a.Convert(info)
}
