package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCallDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{
			name:     "zero yields empty",
			seconds:  0,
			expected: "",
		},
		{
			name:     "whole seconds",
			seconds:  30,
			expected: " (30s)",
		},
		{
			name:     "rounds to nearest second",
			seconds:  45.6,
			expected: " (46s)",
		},
		{
			name:     "sub-second rounds down to zero label",
			seconds:  0.4,
			expected: " (0s)",
		},
		{
			name:     "long call",
			seconds:  3727,
			expected: " (3727s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCallDuration(tt.seconds))
		})
	}
}
