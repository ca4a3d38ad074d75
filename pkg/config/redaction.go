// Package config loads human-authored YAML configuration — currently just
// the redaction pattern catalog's category toggles and custom patterns.
// The canonical .spool wire format stays JSON throughout; YAML is only
// used here, for config a person edits by hand.
package config

import (
	"fmt"
	"os"

	"github.com/spoolhq/spool/pkg/redaction"
	"gopkg.in/yaml.v3"
)

// RedactionFile is the on-disk shape of a redaction config file.
type RedactionFile struct {
	DetectAPIKeys      *bool                  `yaml:"detect_api_keys"`
	DetectPasswords    *bool                  `yaml:"detect_passwords"`
	DetectEmails       *bool                  `yaml:"detect_emails"`
	DetectPhones       *bool                  `yaml:"detect_phones"`
	DetectIPAddresses  *bool                  `yaml:"detect_ip_addresses"`
	DetectPrivateKeys  *bool                  `yaml:"detect_private_keys"`
	DetectAWSKeys      *bool                  `yaml:"detect_aws_keys"`
	DetectGitHubTokens *bool                  `yaml:"detect_github_tokens"`
	DetectJWTTokens    *bool                  `yaml:"detect_jwt_tokens"`
	CustomPatterns     []customPatternYAML    `yaml:"custom_patterns"`
}

type customPatternYAML struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// LoadRedactionConfig reads a YAML redaction config file and merges it over
// redaction.DefaultConfig(): any key absent from the file keeps the
// default's value.
func LoadRedactionConfig(path string) (redaction.Config, error) {
	cfg := redaction.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return redaction.Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file RedactionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return redaction.Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyBool(&cfg.DetectAPIKeys, file.DetectAPIKeys)
	applyBool(&cfg.DetectPasswords, file.DetectPasswords)
	applyBool(&cfg.DetectEmails, file.DetectEmails)
	applyBool(&cfg.DetectPhones, file.DetectPhones)
	applyBool(&cfg.DetectIPAddresses, file.DetectIPAddresses)
	applyBool(&cfg.DetectPrivateKeys, file.DetectPrivateKeys)
	applyBool(&cfg.DetectAWSKeys, file.DetectAWSKeys)
	applyBool(&cfg.DetectGitHubTokens, file.DetectGitHubTokens)
	applyBool(&cfg.DetectJWTTokens, file.DetectJWTTokens)

	for _, cp := range file.CustomPatterns {
		cat := redaction.CategoryCustom
		if cp.Category != "" {
			cat = redaction.Category(cp.Category)
		}
		cfg.CustomPatterns = append(cfg.CustomPatterns, redaction.CustomPattern{
			Pattern:  cp.Pattern,
			Category: cat,
		})
	}

	return cfg, nil
}

func applyBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
