package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/vapi-transcripts/internal/core/identifier"
	"github.com/penwyp/vapi-transcripts/internal/data/browser"
)

// discoverCmd dumps every stage of Chrome discovery. Hidden; it exists for
// diagnosing "wrong assistant picked" reports without a debugger.
var discoverCmd = &cobra.Command{
	Use:    "discover",
	Short:  "Show how the assistant ID would be discovered from Chrome",
	Hidden: true,
	RunE:   runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	if _, err := initRuntime(); err != nil {
		return err
	}

	tabs := browser.NewChromeTabs()

	fmt.Println("Active tab")
	fmt.Println(sectionSeparator())
	if active, err := tabs.ActiveTabURL(); err != nil || active == "" {
		fmt.Println("  (none)")
	} else {
		fmt.Printf("  %s\n", active)
		printExtraction(active)
	}

	fmt.Println()
	fmt.Println("Open tabs (* = relevance marker)")
	fmt.Println(sectionSeparator())
	urls, err := tabs.AllTabURLs()
	if err != nil || len(urls) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, url := range urls {
			marker := " "
			if identifier.HasRelevanceMarker(url) {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, url)
			printExtraction(url)
		}
	}

	fmt.Println()
	fmt.Println("Resolution")
	fmt.Println(sectionSeparator())
	resolution, ok := identifier.NewResolver(tabs).Resolve()
	if !ok {
		fmt.Println("  no assistant ID found")
		return nil
	}
	fmt.Printf("  assistant ID: %s (via %s)\n", resolution.ID, resolution.Source)
	for i, candidate := range resolution.Candidates {
		fmt.Printf("  %d. %s (%s)\n", i+1, candidate.ID, candidate.URL)
	}
	if resolution.Ambiguous {
		fmt.Println("  warning: tabs disagree on the assistant, the first match wins")
	}
	return nil
}

func printExtraction(url string) {
	if id, ok := identifier.Extract(url); ok {
		fmt.Printf("    -> %s\n", id)
	}
}

func sectionSeparator() string {
	return strings.Repeat("─", 78)
}
