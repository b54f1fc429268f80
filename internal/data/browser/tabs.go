package browser

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/penwyp/vapi-transcripts/internal/util"
)

// AppleScript bodies for Chrome tab enumeration. Chrome is probed through
// System Events first; addressing "Google Chrome" directly would launch it
// when it is not running.
const (
	activeTabScript = `
tell application "Google Chrome"
	try
		get URL of active tab of front window
	on error
		return ""
	end try
end tell
`

	chromeRunningScript = `
on is_running(appName)
	tell application "System Events"
		return (count of (every process whose name is appName)) > 0
	end tell
end is_running

is_running("Google Chrome")
`

	allTabsScript = `
tell application "Google Chrome"
	set tabList to ""
	set windowCount to count of windows
	if windowCount > 0 then
		repeat with i from 1 to windowCount
			set theWindow to window i
			set tabCount to count of tabs of theWindow
			repeat with j from 1 to tabCount
				set theTab to tab j of theWindow
				set theURL to URL of theTab
				if tabList is "" then
					set tabList to theURL
				else
					set tabList to tabList & "|" & theURL
				end if
			end repeat
		end repeat
	end if
	return tabList
end tell
`
)

// ChromeTabs reads tab URLs from Google Chrome through osascript. Every
// failure mode, Chrome not running, osascript missing, script error, is an
// empty result rather than an error the resolver would have to interpret.
type ChromeTabs struct{}

// NewChromeTabs creates the Chrome tab source.
func NewChromeTabs() *ChromeTabs {
	return &ChromeTabs{}
}

// ActiveTabURL returns the URL of the frontmost Chrome tab.
func (c *ChromeTabs) ActiveTabURL() (string, error) {
	out, err := runOSAScript(activeTabScript)
	if err != nil {
		util.LogDebugf("Active tab script failed: %v", err)
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// AllTabURLs returns every open Chrome tab URL in window order.
func (c *ChromeTabs) AllTabURLs() ([]string, error) {
	running, err := runOSAScript(chromeRunningScript)
	if err != nil {
		util.LogDebugf("Chrome running check failed: %v", err)
		return nil, nil
	}
	if !strings.EqualFold(strings.TrimSpace(running), "true") {
		util.LogDebug("Chrome is not running")
		return nil, nil
	}

	out, err := runOSAScript(allTabsScript)
	if err != nil {
		util.LogDebugf("Tab listing script failed: %v", err)
		return nil, nil
	}

	tabs := SplitTabList(out)
	util.LogDebugf("Retrieved %d tab URLs from Chrome", len(tabs))
	return tabs, nil
}

// SplitTabList splits the pipe-joined tab listing produced by the
// AppleScript loop, trimming whitespace and trailing commas and dropping
// empty entries.
func SplitTabList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	tabs := make([]string, 0, len(parts))
	for _, part := range parts {
		tab := strings.TrimRight(strings.TrimSpace(part), ",")
		if tab != "" {
			tabs = append(tabs, tab)
		}
	}
	return tabs
}

func runOSAScript(script string) (string, error) {
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return "", fmt.Errorf("osascript: %w", err)
	}
	return string(out), nil
}
