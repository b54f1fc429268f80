package renderer

import (
	"fmt"
	"strings"

	"github.com/penwyp/vapi-transcripts/internal/core/constants"
	"github.com/penwyp/vapi-transcripts/internal/core/model"
	"github.com/penwyp/vapi-transcripts/internal/util"
)

// Labels for timestamps that are absent or fail to parse.
const (
	unknownStart = "Unknown date"
	unknownEnd   = "Unknown end time"
)

// Entry pairs a call record with its normalized transcript.
type Entry struct {
	Record     model.CallRecord
	Transcript string
}

// Renderer concatenates call entries into one delivery document.
type Renderer struct{}

// NewRenderer creates a document renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the merged document: a summary header with the total call
// count and generation time, then one block per call with its metadata
// lines, transcript, and separator. Timestamps render in the configured
// timezone.
func (r *Renderer) Render(entries []Entry) string {
	tp := util.GetTimeProvider()

	var b strings.Builder
	fmt.Fprintf(&b, "# VAPI Call Transcripts (%d total calls)\n\n", len(entries))
	fmt.Fprintf(&b, "Generated: %s\n\n", tp.FormatNow(constants.TimestampLayout))

	for i, entry := range entries {
		rec := entry.Record

		start := unknownStart
		if created, ok := rec.CreatedTime(); ok {
			start = tp.Format(created, constants.TimestampLayout)
		}
		end := unknownEnd
		if ended, ok := rec.EndedTime(); ok {
			end = tp.Format(ended, constants.TimestampLayout)
		}

		id := rec.ID
		if id == "" {
			id = "unknown"
		}

		fmt.Fprintf(&b, "# Call %d - %s%s (ID: %s)\n",
			i+1, start, util.FormatCallDuration(rec.EffectiveDuration()), id)
		fmt.Fprintf(&b, "Start: %s • End: %s%s%s%s\n\n",
			start, end,
			optionalField("Status", rec.Status),
			optionalField("Ended", rec.EndedReason),
			optionalField("Type", rec.Type))

		b.WriteString(entry.Transcript)
		b.WriteString("\n\n")
		b.WriteString("---\n\n")
	}

	return b.String()
}

// optionalField renders a " • Label: value" segment, or nothing when the
// value is absent.
func optionalField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(" • %s: %s", label, value)
}
