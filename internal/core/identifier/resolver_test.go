package identifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTabSource struct {
	activeURL   string
	activeErr   error
	allURLs     []string
	allErr      error
	activeCalls int
	allCalls    int
}

func (f *fakeTabSource) ActiveTabURL() (string, error) {
	f.activeCalls++
	return f.activeURL, f.activeErr
}

func (f *fakeTabSource) AllTabURLs() ([]string, error) {
	f.allCalls++
	return f.allURLs, f.allErr
}

func TestResolverActiveTabShortCircuits(t *testing.T) {
	tabs := &fakeTabSource{
		activeURL: "https://dashboard.vapi.ai/calls?assistantId=" + uuidA,
		allURLs:   []string{"https://dashboard.vapi.ai/assistant/" + uuidB},
	}
	resolver := NewResolver(tabs)

	resolution, ok := resolver.Resolve()
	require.True(t, ok)
	assert.Equal(t, uuidA, resolution.ID)
	assert.Equal(t, SourceActiveTab, resolution.Source)
	assert.Empty(t, resolution.Candidates)
	assert.False(t, resolution.Ambiguous)

	// The full tab list must never be consulted
	assert.Equal(t, 0, tabs.allCalls)
}

func TestResolverFallsBackToTabScan(t *testing.T) {
	tabs := &fakeTabSource{
		activeURL: "https://news.ycombinator.com/",
		allURLs: []string{
			"https://mail.google.com/",
			"https://dashboard.vapi.ai/assistant/" + uuidA,
		},
	}
	resolver := NewResolver(tabs)

	resolution, ok := resolver.Resolve()
	require.True(t, ok)
	assert.Equal(t, uuidA, resolution.ID)
	assert.Equal(t, SourceTabScan, resolution.Source)
	require.Len(t, resolution.Candidates, 1)
	assert.False(t, resolution.Ambiguous)
}

func TestResolverMarkerTabsScannedFirst(t *testing.T) {
	// The unrelated tab embeds a UUID and comes first in window order, but
	// the dashboard tab carries a relevance marker and must win.
	tabs := &fakeTabSource{
		allURLs: []string{
			"https://app.example.com/logs/" + uuidB,
			"https://dashboard.vapi.ai/assistants/" + uuidA,
		},
	}
	resolver := NewResolver(tabs)

	resolution, ok := resolver.Resolve()
	require.True(t, ok)
	assert.Equal(t, uuidA, resolution.ID)
	require.Len(t, resolution.Candidates, 2)
	assert.Equal(t, uuidA, resolution.Candidates[0].ID)
	assert.Equal(t, uuidB, resolution.Candidates[1].ID)
	assert.True(t, resolution.Ambiguous)
}

func TestResolverAmbiguityRequiresDistinctIDs(t *testing.T) {
	// Two tabs pointing at the same assistant are not ambiguous.
	tabs := &fakeTabSource{
		allURLs: []string{
			"https://dashboard.vapi.ai/assistant/" + uuidA,
			"https://dashboard.vapi.ai/calls?assistantId=" + uuidA,
		},
	}
	resolver := NewResolver(tabs)

	resolution, ok := resolver.Resolve()
	require.True(t, ok)
	assert.Equal(t, uuidA, resolution.ID)
	require.Len(t, resolution.Candidates, 2)
	assert.False(t, resolution.Ambiguous)
}

func TestResolverThreeWayAmbiguity(t *testing.T) {
	tabs := &fakeTabSource{
		allURLs: []string{
			"https://dashboard.vapi.ai/assistant/" + uuidA,
			"https://dashboard.vapi.ai/assistant/" + uuidB,
			"https://dashboard.vapi.ai/assistant/" + uuidC,
		},
	}
	resolver := NewResolver(tabs)

	resolution, ok := resolver.Resolve()
	require.True(t, ok)
	assert.Equal(t, uuidA, resolution.ID)
	assert.Len(t, resolution.Candidates, 3)
	assert.True(t, resolution.Ambiguous)
}

func TestResolverNoCandidates(t *testing.T) {
	tabs := &fakeTabSource{
		allURLs: []string{"https://news.ycombinator.com/", "https://mail.google.com/"},
	}
	resolver := NewResolver(tabs)

	_, ok := resolver.Resolve()
	assert.False(t, ok)
}

func TestResolverEmptyBrowser(t *testing.T) {
	resolver := NewResolver(&fakeTabSource{})

	_, ok := resolver.Resolve()
	assert.False(t, ok)
}

func TestResolverSwallowsSourceErrors(t *testing.T) {
	tabs := &fakeTabSource{
		activeErr: errors.New("osascript: not found"),
		allURLs:   []string{"https://dashboard.vapi.ai/assistant/" + uuidA},
	}
	resolver := NewResolver(tabs)

	resolution, ok := resolver.Resolve()
	require.True(t, ok)
	assert.Equal(t, uuidA, resolution.ID)
	assert.Equal(t, SourceTabScan, resolution.Source)
}

func TestResolverAllSourcesFail(t *testing.T) {
	tabs := &fakeTabSource{
		activeErr: errors.New("no browser"),
		allErr:    errors.New("no browser"),
	}
	resolver := NewResolver(tabs)

	_, ok := resolver.Resolve()
	assert.False(t, ok)
}

func TestHasRelevanceMarker(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "vapi_domain",
			url:      "https://dashboard.vapi.ai/assistants",
			expected: true,
		},
		{
			name:     "dashboard_keyword",
			url:      "https://internal.example.com/dashboard/calls",
			expected: true,
		},
		{
			name:     "case_insensitive",
			url:      "https://DASHBOARD.VAPI.AI/",
			expected: true,
		},
		{
			name:     "unrelated_url",
			url:      "https://news.ycombinator.com/",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasRelevanceMarker(tt.url))
		})
	}
}
