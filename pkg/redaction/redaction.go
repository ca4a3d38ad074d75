// Package redaction implements the Spool secret detector: a compiled-once
// regex catalog keyed by category, non-destructive Detect and destructive
// Redact, with overlap resolution that always keeps the longer match.
//
// Redaction is destructive by design: once applied, the original secret
// text is gone from the output. This package never stores or recovers it.
package redaction

import (
	"regexp"
	"sort"
)

// Category classifies a detected secret.
type Category string

const (
	CategoryAPIKey     Category = "api_key"
	CategoryPassword   Category = "password"
	CategoryEmail      Category = "email"
	CategoryPhone      Category = "phone"
	CategoryIPAddress  Category = "ip_address"
	CategoryPrivateKey Category = "private_key"
	CategoryAWSKey     Category = "aws_key"
	CategoryGitHubToken Category = "github_token"
	CategoryJWTToken   Category = "jwt_token"
	CategoryCustom     Category = "custom"
)

func (c Category) replacement() string {
	return "[REDACTED:" + string(c) + "]"
}

// Detection is a single secret match in a scanned text.
type Detection struct {
	Start    int
	End      int
	Category Category
	Matched  string
}

type pattern struct {
	re       *regexp.Regexp
	category Category
}

// Config toggles which built-in categories are scanned for, plus any
// custom (pattern, category) pairs supplied via pkg/config.
type Config struct {
	DetectAPIKeys      bool
	DetectPasswords    bool
	DetectEmails       bool
	DetectPhones       bool
	DetectIPAddresses  bool
	DetectPrivateKeys  bool
	DetectAWSKeys      bool
	DetectGitHubTokens bool
	DetectJWTTokens    bool
	CustomPatterns     []CustomPattern
}

// CustomPattern is a user-supplied regex and the category to label its
// matches with.
type CustomPattern struct {
	Pattern  string
	Category Category
}

// DefaultConfig enables every built-in category and adds no custom
// patterns, matching the format's default redaction policy.
func DefaultConfig() Config {
	return Config{
		DetectAPIKeys:      true,
		DetectPasswords:    true,
		DetectEmails:       true,
		DetectPhones:       true,
		DetectIPAddresses:  true,
		DetectPrivateKeys:  true,
		DetectAWSKeys:      true,
		DetectGitHubTokens: true,
		DetectJWTTokens:    true,
	}
}

// Detector holds a compiled-once pattern catalog. It is read-only and safe
// to share across goroutines once constructed (spec §5).
type Detector struct {
	patterns []pattern
}

// New compiles the pattern catalog for cfg. A malformed custom pattern is a
// programming/configuration error and panics here at construction time,
// never during Detect/Redact.
func New(cfg Config) *Detector {
	var patterns []pattern

	add := func(expr string, cat Category) {
		patterns = append(patterns, pattern{re: regexp.MustCompile(expr), category: cat})
	}

	if cfg.DetectAPIKeys {
		add(`sk-ant-api\d{2}-[a-zA-Z0-9_-]{40,}`, CategoryAPIKey)
		add(`sk-[a-zA-Z0-9]{32,}`, CategoryAPIKey)
		add(`['"](api[_-]?)?key['"]?\s*[:=]\s*['"][a-zA-Z0-9_-]{20,}['"]`, CategoryAPIKey)
	}
	if cfg.DetectPasswords {
		add(`(?i)password['"]?\s*[:=]\s*\S+`, CategoryPassword)
	}
	if cfg.DetectEmails {
		add(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`, CategoryEmail)
	}
	if cfg.DetectPhones {
		add(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`, CategoryPhone)
		add(`\+\d{1,3}[-.\s]?\d{1,14}`, CategoryPhone)
	}
	if cfg.DetectIPAddresses {
		add(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`, CategoryIPAddress)
	}
	if cfg.DetectPrivateKeys {
		add(`-----BEGIN [A-Z ]+ PRIVATE KEY-----`, CategoryPrivateKey)
	}
	if cfg.DetectAWSKeys {
		add(`AKIA[0-9A-Z]{16}`, CategoryAWSKey)
	}
	if cfg.DetectGitHubTokens {
		add(`ghp_[a-zA-Z0-9]{36}`, CategoryGitHubToken)
		add(`github_pat_[a-zA-Z0-9]{22}_[a-zA-Z0-9]{59}`, CategoryGitHubToken)
	}
	if cfg.DetectJWTTokens {
		add(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`, CategoryJWTToken)
	}
	for _, cp := range cfg.CustomPatterns {
		cat := cp.Category
		if cat == "" {
			cat = CategoryCustom
		}
		add(cp.Pattern, cat)
	}

	return &Detector{patterns: patterns}
}

// WithDefaults builds a Detector with DefaultConfig().
func WithDefaults() *Detector {
	return New(DefaultConfig())
}

// Detect scans text against every enabled pattern and returns all matches,
// ascending by start offset, with overlaps resolved (the longer match
// wins; ties keep the earlier-starting match).
func (d *Detector) Detect(text string) []Detection {
	var found []Detection
	for _, p := range d.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			found = append(found, Detection{
				Start:    loc[0],
				End:      loc[1],
				Category: p.category,
				Matched:  text[loc[0]:loc[1]],
			})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Start < found[j].Start })
	return deduplicateOverlapping(found)
}

// Redact returns text with every detected secret replaced by its category
// token, plus the detections used to produce it.
func (d *Detector) Redact(text string) (string, []Detection) {
	detections := d.Detect(text)
	if len(detections) == 0 {
		return text, detections
	}

	var result []byte
	lastEnd := 0
	for _, det := range detections {
		result = append(result, text[lastEnd:det.Start]...)
		result = append(result, det.Category.replacement()...)
		lastEnd = det.End
	}
	result = append(result, text[lastEnd:]...)
	return string(result), detections
}

// RedactWith rewrites text using a caller-supplied detection set rather
// than re-running Detect, so the review orchestrator can apply only the
// detections a caller accepted (spec §4.6). detections must already be
// sorted ascending by Start with no overlaps, as Detect's output is.
func RedactWith(text string, detections []Detection) string {
	if len(detections) == 0 {
		return text
	}
	var result []byte
	lastEnd := 0
	for _, det := range detections {
		result = append(result, text[lastEnd:det.Start]...)
		result = append(result, det.Category.replacement()...)
		lastEnd = det.End
	}
	result = append(result, text[lastEnd:]...)
	return string(result)
}

// deduplicateOverlapping removes overlapping matches, keeping the longer
// span; ties keep the earlier-starting match. d must already be sorted
// ascending by Start.
func deduplicateOverlapping(d []Detection) []Detection {
	i := 0
	for i+1 < len(d) {
		if d[i].End > d[i+1].Start {
			lenI := d[i].End - d[i].Start
			lenNext := d[i+1].End - d[i+1].Start
			if lenI >= lenNext {
				d = append(d[:i+1], d[i+2:]...)
			} else {
				d = append(d[:i], d[i+1:]...)
			}
		} else {
			i++
		}
	}
	return d
}
