package delivery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	content string
	err     error
	calls   int
}

func (f *fakeClipboard) Write(text string) error {
	f.calls++
	f.content = text
	return f.err
}

type fakePaster struct {
	err   error
	calls int
}

func (f *fakePaster) Paste() error {
	f.calls++
	return f.err
}

func TestDispatchToClipboardAndPaste(t *testing.T) {
	cb := &fakeClipboard{}
	paster := &fakePaster{}
	dispatcher := NewDispatcherWithSinks(cb, paster)

	err := dispatcher.Dispatch("the document", Options{})

	require.NoError(t, err)
	assert.Equal(t, 1, cb.calls)
	assert.Equal(t, "the document", cb.content)
	assert.Equal(t, 1, paster.calls)
}

func TestDispatchSuppressedPaste(t *testing.T) {
	cb := &fakeClipboard{}
	paster := &fakePaster{}
	dispatcher := NewDispatcherWithSinks(cb, paster)

	err := dispatcher.Dispatch("the document", Options{SuppressPaste: true})

	require.NoError(t, err)
	assert.Equal(t, 1, cb.calls)
	assert.Equal(t, 0, paster.calls)
}

func TestDispatchPasteFailureIsNotFatal(t *testing.T) {
	cb := &fakeClipboard{}
	paster := &fakePaster{err: errors.New("no accessibility permission")}
	dispatcher := NewDispatcherWithSinks(cb, paster)

	err := dispatcher.Dispatch("the document", Options{})

	// The clipboard copy succeeded, so the run is still a success
	require.NoError(t, err)
	assert.Equal(t, 1, cb.calls)
	assert.Equal(t, 1, paster.calls)
}

func TestDispatchClipboardFailure(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no clipboard utility")}
	paster := &fakePaster{}
	dispatcher := NewDispatcherWithSinks(cb, paster)

	err := dispatcher.Dispatch("the document", Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy to clipboard")
	assert.Equal(t, 0, paster.calls)
}

func TestDispatchToFile(t *testing.T) {
	cb := &fakeClipboard{}
	paster := &fakePaster{}
	dispatcher := NewDispatcherWithSinks(cb, paster)

	path := filepath.Join(t.TempDir(), "transcripts.md")
	err := dispatcher.Dispatch("file content", Options{OutputPath: path})

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file content", string(data))

	// File delivery never touches the clipboard
	assert.Equal(t, 0, cb.calls)
	assert.Equal(t, 0, paster.calls)
}

func TestDispatchToFileCreatesParentDirs(t *testing.T) {
	dispatcher := NewDispatcherWithSinks(&fakeClipboard{}, &fakePaster{})

	path := filepath.Join(t.TempDir(), "nested", "deeper", "transcripts.md")
	err := dispatcher.Dispatch("nested content", Options{OutputPath: path})

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "nested content", string(data))
}

func TestDispatchToFileOverwrites(t *testing.T) {
	dispatcher := NewDispatcherWithSinks(&fakeClipboard{}, &fakePaster{})

	path := filepath.Join(t.TempDir(), "transcripts.md")
	require.NoError(t, os.WriteFile(path, []byte("previous run with much longer content"), 0644))

	err := dispatcher.Dispatch("new", Options{OutputPath: path})

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
