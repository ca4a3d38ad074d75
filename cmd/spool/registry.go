package main

import (
	"github.com/spoolhq/spool/pkg/adapter"
	"github.com/spoolhq/spool/pkg/adapter/claudecode"
	"github.com/spoolhq/spool/pkg/adapter/codex"
)

func buildRegistry() *adapter.Registry {
	r := adapter.NewRegistry()
	r.Register(adapter.AgentClaudeCode, claudecode.New())
	r.Register(adapter.AgentCodex, codex.New())
	return r
}
