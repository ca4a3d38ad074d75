package adapter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var systemReminderRe = regexp.MustCompile(`(?s)<system-reminder>.*?</system-reminder>`)

// StripSystemTags removes <system-reminder>...</system-reminder> blocks a
// vendor client injects into prompt/response text, which carry no
// session-authored content (spec §4.4).
func StripSystemTags(s string) string {
	return strings.TrimSpace(systemReminderRe.ReplaceAllString(s, ""))
}

var commandMessagePrefixes = []string{
	"<command-name>",
	"<local-command-stdout>",
	"<local-command-caveat>",
}

// IsCommandMessage reports whether s is one of the vendor's own
// slash-command echo/caveat records rather than session content, so
// adapters can skip it entirely (spec §4.4).
func IsCommandMessage(s string) bool {
	trimmed := strings.TrimSpace(s)
	for _, prefix := range commandMessagePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// CleanText strips system tags and reports whether the remaining text is
// empty, so callers can drop the record entirely rather than emit a
// content-free entry (spec §4.4's "empty-after-cleaning record dropping").
func CleanText(s string) (cleaned string, empty bool) {
	cleaned = StripSystemTags(s)
	return cleaned, cleaned == ""
}

// titleMaxBytes is Session.Title's byte budget, per spec's title
// derivation order.
const titleMaxBytes = 60

// DeriveTitle picks a session title following spec's declared precedence:
// an adapter-supplied SessionInfo.title, then a vendor-native summary
// line, then the first cleaned user prompt — truncated to 60 bytes at a
// character boundary with a "..." suffix appended if truncation occurred.
// Returns nil if every candidate is empty.
func DeriveTitle(infoTitle *string, vendorSummary string, firstPrompt string) *string {
	var candidate string
	switch {
	case infoTitle != nil && strings.TrimSpace(*infoTitle) != "":
		candidate = strings.TrimSpace(*infoTitle)
	case strings.TrimSpace(vendorSummary) != "":
		candidate = strings.TrimSpace(vendorSummary)
	case strings.TrimSpace(firstPrompt) != "":
		candidate = firstPrompt
	default:
		return nil
	}

	truncated := TruncateUTF8Safe(candidate, titleMaxBytes)
	if len(truncated) < len(candidate) {
		truncated += "..."
	}
	return &truncated
}

// TruncateUTF8Safe truncates s to at most maxBytes bytes without splitting
// a multi-byte UTF-8 code point, for deriving title/first_prompt previews.
func TruncateUTF8Safe(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	b := s[:maxBytes]
	for len(b) > 0 && !utf8.RuneStart(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	// RuneStart only tells us the last byte starts a rune; if that rune's
	// full encoding was itself cut off, drop it too.
	if len(b) > 0 {
		if r, size := utf8.DecodeLastRuneInString(b); r == utf8.RuneError && size <= 1 {
			b = b[:len(b)-1]
		}
	}
	return b
}
