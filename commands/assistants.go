package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/vapi-transcripts/internal/data/vapi"
	"github.com/penwyp/vapi-transcripts/internal/presentation/formatter"
)

var assistantsCmd = &cobra.Command{
	Use:   "assistants",
	Short: "List assistants visible to the configured API key",
	Long: `Lists every assistant the configured API key can see, with its ID, name,
and creation time. Useful for finding an ID to pass to --assistant-id.`,
	RunE: runAssistants,
}

func init() {
	rootCmd.AddCommand(assistantsCmd)
}

func runAssistants(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	client := vapi.NewClientWithBaseURL(cfg.APIKey, cfg.BaseURL)
	assistants, err := client.ListAssistants()
	if err != nil {
		return fmt.Errorf("failed to retrieve assistants: %w", err)
	}

	if len(assistants) == 0 {
		fmt.Println("No assistants found")
		return nil
	}

	return formatter.NewAssistantsFormatter().Format(assistants)
}
