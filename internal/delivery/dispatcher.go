package delivery

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/penwyp/vapi-transcripts/internal/util"
)

// Options selects the destination for a rendered document.
type Options struct {
	// OutputPath routes the document to a file instead of the clipboard.
	OutputPath string
	// SuppressPaste skips the paste keystroke after a clipboard delivery.
	SuppressPaste bool
}

// ClipboardWriter places text on the system clipboard.
type ClipboardWriter interface {
	Write(text string) error
}

// CursorPaster triggers a paste at the current cursor position.
type CursorPaster interface {
	Paste() error
}

// Dispatcher routes a rendered document to its destination.
type Dispatcher struct {
	clipboard ClipboardWriter
	paster    CursorPaster
}

// NewDispatcher builds a dispatcher backed by the system clipboard and the
// paste keystroke.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		clipboard: systemClipboard{},
		paster:    keystrokePaster{},
	}
}

// NewDispatcherWithSinks wires custom sinks, used by tests.
func NewDispatcherWithSinks(cb ClipboardWriter, paster CursorPaster) *Dispatcher {
	return &Dispatcher{clipboard: cb, paster: paster}
}

// Dispatch delivers the document. With an output path the file is written
// whole, overwriting any previous content; otherwise the document goes to
// the clipboard and, unless suppressed, is pasted at the cursor. A paste
// failure is only a note because the clipboard copy already succeeded.
func (d *Dispatcher) Dispatch(document string, opts Options) error {
	if opts.OutputPath != "" {
		return d.writeFile(document, opts.OutputPath)
	}

	if err := d.clipboard.Write(document); err != nil {
		util.LogErrorf("Clipboard write failed: %v", err)
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	util.LogInfof("Copied %d characters to clipboard", len(document))
	fmt.Println("Transcripts copied to clipboard!")

	if !opts.SuppressPaste {
		if err := d.paster.Paste(); err != nil {
			util.LogWarnf("Automatic paste failed: %v", err)
			fmt.Println("Note: Could not automatically paste content")
		}
	}
	return nil
}

func (d *Dispatcher) writeFile(document, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	util.LogInfof("Saved %d characters to %s", len(document), path)
	fmt.Printf("Transcripts saved to file: %s\n", path)
	return nil
}

// systemClipboard is the real clipboard sink.
type systemClipboard struct{}

func (systemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

// pasteScript sends Cmd-V to the frontmost application.
const pasteScript = `
tell application "System Events"
	keystroke "v" using command down
end tell
`

// keystrokePaster pastes through System Events. macOS only; everywhere else
// Paste reports unsupported and the dispatcher downgrades that to a note.
type keystrokePaster struct{}

func (keystrokePaster) Paste() error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("paste keystroke not supported on %s", runtime.GOOS)
	}
	out, err := exec.Command("osascript", "-e", pasteScript).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript paste: %v (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}
