package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRedactionConfigMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "redaction.yaml")
	content := "detect_phones: false\ncustom_patterns:\n  - pattern: 'internal-[0-9]+'\n    category: custom\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadRedactionConfig(path)
	if err != nil {
		t.Fatalf("LoadRedactionConfig: %v", err)
	}
	if cfg.DetectPhones {
		t.Error("expected detect_phones to be overridden to false")
	}
	if !cfg.DetectEmails {
		t.Error("expected detect_emails to keep its default of true")
	}
	if len(cfg.CustomPatterns) != 1 || cfg.CustomPatterns[0].Pattern != "internal-[0-9]+" {
		t.Errorf("expected 1 custom pattern, got %v", cfg.CustomPatterns)
	}
}
