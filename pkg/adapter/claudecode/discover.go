package claudecode

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spoolhq/spool/pkg/adapter"
)

// Adapter discovers and converts Claude Code session transcripts.
type Adapter struct {
	// HomeDir overrides the user's home directory; empty uses os.UserHomeDir.
	HomeDir string
}

// New returns an Adapter using the real user home directory.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) claudeDir() (string, error) {
	if a.HomeDir != "" {
		return filepath.Join(a.HomeDir, ".claude"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("claudecode: find home directory: %w", err)
	}
	return filepath.Join(home, ".claude"), nil
}

// Discover walks ~/.claude/projects/<project-hash>/*.jsonl, newest-modified
// first. Subagent sidecar files (agent-*.jsonl) are filtered out of the
// top-level session list rather than parsed (spec §9 open question,
// deferred rather than guessed at).
func (a *Adapter) Discover() ([]adapter.SessionInfo, error) {
	claudeDir, err := a.claudeDir()
	if err != nil {
		return nil, err
	}
	projectsDir := filepath.Join(claudeDir, "projects")

	projectDirs, err := os.ReadDir(projectsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claudecode: read %s: %w", projectsDir, err)
	}

	var sessions []adapter.SessionInfo
	for _, pd := range projectDirs {
		if !pd.IsDir() {
			continue
		}
		projectPath := filepath.Join(projectsDir, pd.Name())
		entries, err := os.ReadDir(projectPath)
		if err != nil {
			continue
		}
		for _, fe := range entries {
			name := fe.Name()
			if fe.IsDir() || !strings.HasSuffix(name, ".jsonl") {
				continue
			}
			if strings.HasPrefix(name, "agent-") {
				continue // subagent sidecar, not a top-level session
			}
			info, err := fe.Info()
			if err != nil {
				continue
			}
			modified := info.ModTime()
			sessions = append(sessions, adapter.SessionInfo{
				Path:       filepath.Join(projectPath, name),
				Agent:      adapter.AgentClaudeCode,
				ModifiedAt: &modified,
				ProjectDir: &projectPath,
			})
		}
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
