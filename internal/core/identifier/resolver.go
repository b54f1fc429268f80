package identifier

import (
	"strings"

	"github.com/penwyp/vapi-transcripts/internal/util"
)

// Discovery stages reported in Resolution.Source.
const (
	SourceActiveTab = "active-tab"
	SourceTabScan   = "tab-scan"
)

// TabSource enumerates browser context URLs. Implementations are best
// effort; the resolver treats every error as "this stage yielded nothing".
type TabSource interface {
	// ActiveTabURL returns the URL of the frontmost tab, empty when the
	// browser has no window or is not running.
	ActiveTabURL() (string, error)
	// AllTabURLs returns every open tab URL in window order.
	AllTabURLs() ([]string, error)
}

// relevanceMarkers flag tab URLs that are likely VAPI dashboard pages.
// Marker-bearing tabs are scanned first so an unrelated tab that happens to
// embed a UUID cannot shadow the dashboard tab.
var relevanceMarkers = []string{"vapi", "dashboard"}

// Candidate is one tab URL that yielded a validated assistant ID.
type Candidate struct {
	URL string
	ID  string
}

// Resolution is the outcome of assistant ID discovery.
type Resolution struct {
	// ID is the selected assistant ID, always the first match.
	ID string
	// Source names the stage that produced the ID.
	Source string
	// Candidates holds every URL/ID pair found during the tab scan,
	// empty for active-tab resolutions.
	Candidates []Candidate
	// Ambiguous is set when the candidates carry more than one distinct
	// ID. The first one still wins; callers decide how loudly to report.
	Ambiguous bool
}

// Resolver discovers an assistant ID from browser state.
type Resolver struct {
	tabs TabSource
}

// NewResolver creates a resolver over the given tab source.
func NewResolver(tabs TabSource) *Resolver {
	return &Resolver{tabs: tabs}
}

// Resolve walks the discovery chain. A match in the active tab
// short-circuits the scan of the full tab list.
func (r *Resolver) Resolve() (Resolution, bool) {
	if active, err := r.tabs.ActiveTabURL(); err != nil {
		util.LogDebugf("Active tab lookup failed: %v", err)
	} else if active != "" {
		if id, ok := Extract(active); ok {
			util.LogInfof("Found assistant ID in active tab: %s", id)
			return Resolution{ID: id, Source: SourceActiveTab}, true
		}
	}

	urls, err := r.tabs.AllTabURLs()
	if err != nil {
		util.LogDebugf("Tab enumeration failed: %v", err)
		return Resolution{}, false
	}

	var candidates []Candidate
	for _, url := range prioritizeTabs(urls) {
		if id, ok := Extract(url); ok {
			candidates = append(candidates, Candidate{URL: url, ID: id})
		}
	}
	if len(candidates) == 0 {
		return Resolution{}, false
	}

	resolution := Resolution{
		ID:         candidates[0].ID,
		Source:     SourceTabScan,
		Candidates: candidates,
	}
	for _, c := range candidates[1:] {
		if c.ID != resolution.ID {
			resolution.Ambiguous = true
			break
		}
	}
	return resolution, true
}

// prioritizeTabs moves marker-bearing URLs to the front, preserving the
// original relative order within both partitions.
func prioritizeTabs(urls []string) []string {
	prioritized := make([]string, 0, len(urls))
	var rest []string
	for _, url := range urls {
		if HasRelevanceMarker(url) {
			prioritized = append(prioritized, url)
		} else {
			rest = append(rest, url)
		}
	}
	return append(prioritized, rest...)
}

// HasRelevanceMarker reports whether a URL looks like a VAPI dashboard page.
func HasRelevanceMarker(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range relevanceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
