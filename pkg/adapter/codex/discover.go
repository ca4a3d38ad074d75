package codex

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spoolhq/spool/pkg/adapter"
)

// Adapter discovers and converts Codex CLI session transcripts.
type Adapter struct {
	// HomeDir overrides the user's home directory; empty uses os.UserHomeDir.
	HomeDir string
}

// New returns an Adapter using the real user home directory.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) codexDir() (string, error) {
	if a.HomeDir != "" {
		return filepath.Join(a.HomeDir, ".codex"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("codex: find home directory: %w", err)
	}
	return filepath.Join(home, ".codex"), nil
}

// Discover walks ~/.codex/sessions/YYYY/MM/DD/rollout-*.jsonl, newest-
// modified first. history.jsonl (an aggregate index alongside the sessions
// tree) is never treated as a session itself.
func (a *Adapter) Discover() ([]adapter.SessionInfo, error) {
	codexDir, err := a.codexDir()
	if err != nil {
		return nil, err
	}
	sessionsDir := filepath.Join(codexDir, "sessions")
	if _, err := os.Stat(sessionsDir); os.IsNotExist(err) {
		return nil, nil
	}

	var sessions []adapter.SessionInfo
	err = filepath.Walk(sessionsDir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal to discovery
		}
		if fi.IsDir() {
			return nil
		}
		name := fi.Name()
		if !strings.HasPrefix(name, "rollout-") || !strings.HasSuffix(name, ".jsonl") {
			return nil
		}
		modified := fi.ModTime()
		sessions = append(sessions, adapter.SessionInfo{
			Path:       path,
			Agent:      adapter.AgentCodex,
			ModifiedAt: &modified,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("codex: walk %s: %w", sessionsDir, err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		ti, tj := sessions[i].ModifiedAt, sessions[j].ModifiedAt
		if ti == nil || tj == nil {
			return false
		}
		return ti.After(*tj)
	})

	return sessions, nil
}
