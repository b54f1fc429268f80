package transcript

import (
	"github.com/penwyp/vapi-transcripts/internal/core/model"
	"github.com/penwyp/vapi-transcripts/internal/util"
)

// Placeholder is emitted for calls where no source yields transcript text.
const Placeholder = "No transcript available for this call"

// Source renders one of the transcript representations a call record may
// carry. Render reports false when its representation is absent or yields
// no text, which hands over to the next source in line.
type Source interface {
	Name() string
	Render(rec model.CallRecord) (string, bool)
}

// sources lists the representations in authority order: the provider's own
// preformatted artifact transcript first, then the structured artifact
// message log, then the two legacy top-level shapes. Exactly one source
// wins per record; representations are never merged.
var sources = []Source{
	artifactTranscriptSource{},
	artifactMessagesSource{},
	topLevelTranscriptSource{},
	topLevelMessagesSource{},
}

// Normalize renders a call record's transcript as speaker-labeled plain
// text. It never fails: records without any usable representation yield the
// placeholder line.
func Normalize(rec model.CallRecord) string {
	for _, src := range sources {
		if text, ok := src.Render(rec); ok {
			util.LogDebugf("Call %s: transcript rendered from %s source", rec.ID, src.Name())
			return text
		}
	}
	util.LogDebugf("Call %s: no transcript in any source", rec.ID)
	return Placeholder
}
