package commands

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverCommandStructure(t *testing.T) {
	assert.Equal(t, "discover", discoverCmd.Use)
	assert.True(t, discoverCmd.Hidden)
	assert.NotNil(t, discoverCmd.RunE)
}

func TestSectionSeparator(t *testing.T) {
	sep := sectionSeparator()
	assert.Equal(t, 78, utf8.RuneCountInString(sep))
	assert.Equal(t, "", strings.Trim(sep, "─"))
}
