package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssistantsCommandStructure(t *testing.T) {
	assert.Equal(t, "assistants", assistantsCmd.Use)
	assert.Contains(t, assistantsCmd.Short, "assistants")
	assert.NotNil(t, assistantsCmd.RunE)
}

func TestAssistantsCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "assistants" {
			found = true
			break
		}
	}
	assert.True(t, found)
}
