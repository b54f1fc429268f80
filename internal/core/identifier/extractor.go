package identifier

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/penwyp/vapi-transcripts/internal/util"
)

// patternStrategy extracts an assistant ID candidate from one known URL
// shape. Strategies run in registration order and the first validated match
// wins, so more specific shapes must stay ahead of looser ones.
type patternStrategy struct {
	name string
	re   *regexp.Regexp
}

// urlPatterns covers the dashboard URL shapes seen in the wild. The bare
// UUID scan is not part of this list; it runs only after every structured
// pattern has failed.
var urlPatterns = []patternStrategy{
	{name: "query-param", re: regexp.MustCompile(`assistantId=([^&,\s]+)`)},
	{name: "assistant-path", re: regexp.MustCompile(`/assistant/([^/,\s]+)`)},
	{name: "assistants-path", re: regexp.MustCompile(`/assistants/([^/,\s]+)`)},
	{name: "calls-query", re: regexp.MustCompile(`calls\?assistantId=([^&,\s]+)`)},
}

// uuidPattern is the last-resort scan for a UUID-shaped substring anywhere
// in the input. Lowercase only; the dashboard never emits uppercase IDs.
var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// Clean trims surrounding whitespace and trailing commas from a candidate.
// Tab listings arrive comma-glued often enough that this runs on the raw
// input and on every captured group.
func Clean(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), ",")
}

// IsValid reports whether id is a canonical lowercase hyphenated UUID. The
// candidate must round-trip through uuid.Parse unchanged, which rejects the
// uppercase, braced, and URN forms uuid.Parse alone would accept.
func IsValid(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.String() == id
}

// Extract pulls a validated assistant ID out of a URL-like string. Each
// structured pattern is tried in order; a capture that fails UUID validation
// does not stop the chain. Scanning for a bare UUID anywhere in the input is
// the most permissive fallback and runs only after every pattern failed.
func Extract(text string) (string, bool) {
	text = Clean(text)
	if text == "" {
		return "", false
	}

	for _, p := range urlPatterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := Clean(match[1])
		if IsValid(candidate) {
			util.LogDebugf("Extracted assistant ID via %s pattern: %s", p.name, candidate)
			return candidate, true
		}
		util.LogDebugf("Pattern %s captured %q which is not a valid assistant ID", p.name, candidate)
	}

	if match := uuidPattern.FindString(text); match != "" {
		util.LogDebugf("Extracted assistant ID via bare UUID scan: %s", match)
		return match, true
	}

	return "", false
}
