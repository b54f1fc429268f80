package transcript

import (
	"sort"
	"strings"

	"github.com/penwyp/vapi-transcripts/internal/core/model"
)

// Speaker labels used in rendered transcripts.
const (
	labelAI    = "AI"
	labelHuman = "Human"
)

// artifactTranscriptSource uses the preformatted transcript string the
// provider renders into the artifact. The text is trusted as already
// chronological; only the two known role-prefix conventions are rewritten.
type artifactTranscriptSource struct{}

func (artifactTranscriptSource) Name() string { return "artifact-transcript" }

func (artifactTranscriptSource) Render(rec model.CallRecord) (string, bool) {
	if rec.Artifact == nil || strings.TrimSpace(rec.Artifact.Transcript) == "" {
		return "", false
	}
	text := rec.Artifact.Transcript
	text = strings.ReplaceAll(text, "AI:", "AI: ")
	text = strings.ReplaceAll(text, "User:", "Human: ")
	return text, true
}

// artifactMessagesSource renders the structured artifact message log,
// ordered by its numeric time key. System turns are dropped, role "bot"
// maps to AI and everything else to Human.
type artifactMessagesSource struct{}

func (artifactMessagesSource) Name() string { return "artifact-messages" }

func (artifactMessagesSource) Render(rec model.CallRecord) (string, bool) {
	if rec.Artifact == nil || len(rec.Artifact.Messages) == 0 {
		return "", false
	}

	messages := make([]model.ArtifactMessage, len(rec.Artifact.Messages))
	copy(messages, rec.Artifact.Messages)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Time < messages[j].Time
	})

	var turns []string
	for _, msg := range messages {
		if msg.Role == "system" {
			continue
		}
		if strings.TrimSpace(msg.Message) == "" {
			continue
		}
		label := labelHuman
		if msg.Role == "bot" {
			label = labelAI
		}
		turns = append(turns, label+": "+msg.Message)
	}
	if len(turns) == 0 {
		return "", false
	}
	return strings.Join(turns, "\n\n"), true
}

// topLevelTranscriptSource renders the legacy top-level transcript shape.
type topLevelTranscriptSource struct{}

func (topLevelTranscriptSource) Name() string { return "transcript" }

func (topLevelTranscriptSource) Render(rec model.CallRecord) (string, bool) {
	return renderTurns(rec.Transcript)
}

// topLevelMessagesSource renders the alternate top-level messages shape
// with the same rules as the top-level transcript.
type topLevelMessagesSource struct{}

func (topLevelMessagesSource) Name() string { return "messages" }

func (topLevelMessagesSource) Render(rec model.CallRecord) (string, bool) {
	return renderTurns(rec.Messages)
}

// renderTurns orders turns by their createdAt string, maps role "assistant"
// to AI and everything else to Human, and drops turns without content.
func renderTurns(list model.TurnList) (string, bool) {
	if len(list) == 0 {
		return "", false
	}

	turns := make([]model.Turn, len(list))
	copy(turns, list)
	sort.SliceStable(turns, func(i, j int) bool {
		return turns[i].CreatedAt < turns[j].CreatedAt
	})

	var rendered []string
	for _, turn := range turns {
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		label := labelHuman
		if turn.Role == "assistant" {
			label = labelAI
		}
		rendered = append(rendered, label+": "+turn.Content)
	}
	if len(rendered) == 0 {
		return "", false
	}
	return strings.Join(rendered, "\n\n"), true
}
