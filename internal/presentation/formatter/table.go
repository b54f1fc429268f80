package formatter

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/penwyp/vapi-transcripts/internal/core/constants"
	"github.com/penwyp/vapi-transcripts/internal/core/model"
	"github.com/penwyp/vapi-transcripts/internal/util"
)

// fallbackTerminalWidth is assumed when stdout is not a terminal.
const fallbackTerminalWidth = 120

// minNameWidth keeps the Name column readable after shrinking.
const minNameWidth = 4

// AssistantsFormatter prints the assistant listing as an aligned table.
type AssistantsFormatter struct {
	headers []string
}

func NewAssistantsFormatter() *AssistantsFormatter {
	return &AssistantsFormatter{
		headers: []string{"ID", "Name", "Created"},
	}
}

// Format prints the assistants table. The Name column shrinks, with
// truncation, until the table fits the terminal.
func (f *AssistantsFormatter) Format(assistants []model.Assistant) error {
	rows := make([][]string, 0, len(assistants))
	for _, assistant := range assistants {
		rows = append(rows, []string{
			assistant.ID,
			assistant.Name,
			formatCreated(assistant.CreatedAt),
		})
	}

	widths := f.calculateColumnWidths(rows)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		row[1] = util.TruncateString(row[1], widths[1])
		f.printRow(row, widths)
	}
	f.printBorder(widths, "bottom")

	fmt.Printf("Total: %d assistants\n", len(assistants))
	return nil
}

// calculateColumnWidths sizes columns to their content, then shrinks the
// Name column until the table fits the terminal width.
func (f *AssistantsFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))

	// Initialize with header widths
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}

	// Check data rows
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Each column adds two padding spaces and one border, plus the
	// leading border
	total := 1
	for _, w := range widths {
		total += w + 3
	}
	if max := terminalWidth(); total > max {
		shrunk := widths[1] - (total - max)
		if shrunk < minNameWidth {
			shrunk = minNameWidth
		}
		widths[1] = shrunk
	}

	return widths
}

// terminalWidth returns the stdout terminal width, or a fallback when
// stdout is redirected.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTerminalWidth
	}
	return width
}

// formatCreated renders the creation timestamp in the configured timezone,
// passing unparseable values through untouched.
func formatCreated(createdAt string) string {
	t, ok := model.ParseTimestamp(createdAt)
	if !ok {
		return createdAt
	}
	return util.GetTimeProvider().Format(t, constants.TimestampLayout)
}

// printBorder prints table borders (top, middle, bottom)
func (f *AssistantsFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat(separator, width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

// printRow prints one left-aligned row using display widths so wide runes
// keep the columns aligned.
func (f *AssistantsFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		fmt.Printf(" %s │", util.PadString(value, widths[i], true))
	}
	fmt.Println()
}
