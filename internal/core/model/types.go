package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// CallRecord is one call as returned by the VAPI REST API. The API has
// shipped several payload shapes over time, so every field is optional and
// the transcript may live in any of four places: the artifact transcript
// string, the artifact message log, or the two legacy top-level shapes.
type CallRecord struct {
	ID          string    `json:"id,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	EndedAt     string    `json:"endedAt,omitempty"`
	Duration    float64   `json:"duration,omitempty"`
	Status      string    `json:"status,omitempty"`
	EndedReason string    `json:"endedReason,omitempty"`
	Type        string    `json:"type,omitempty"`
	Artifact    *Artifact `json:"artifact,omitempty"`
	Transcript  TurnList  `json:"transcript,omitempty"`
	Messages    TurnList  `json:"messages,omitempty"`
}

// Artifact is the provider-curated transcript container nested in a call.
type Artifact struct {
	Transcript string            `json:"transcript,omitempty"`
	Messages   []ArtifactMessage `json:"messages,omitempty"`
}

// ArtifactMessage is one turn of the artifact message log. Time is a
// numeric ordering key, epoch milliseconds in current payloads.
type ArtifactMessage struct {
	Role             string  `json:"role,omitempty"`
	Message          string  `json:"message,omitempty"`
	Time             float64 `json:"time,omitempty"`
	SecondsFromStart float64 `json:"secondsFromStart,omitempty"`
}

// Turn is one utterance in the legacy top-level transcript and messages
// shapes.
type Turn struct {
	Role      string `json:"role,omitempty"`
	Content   string `json:"content,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// TurnList decodes either an array of turns or a bare string. Some payloads
// carry the top-level transcript as preformatted text; that text is wrapped
// into a single turn so callers only ever deal with turns.
type TurnList []Turn

func (tl *TurnList) UnmarshalJSON(data []byte) error {
	// First try to parse as an array of turns
	var turns []Turn
	if err := sonic.Unmarshal(data, &turns); err == nil {
		*tl = turns
		return nil
	}

	// If array parsing fails, try to parse as a bare string
	var text string
	if err := sonic.Unmarshal(data, &text); err == nil {
		if text == "" {
			*tl = nil
			return nil
		}
		*tl = TurnList{{Content: text}}
		return nil
	}

	return fmt.Errorf("transcript must be either string or array of turns")
}

// timestampLayouts are tried in order. The API normally emits RFC 3339 with
// a Z suffix; older records have been seen without a zone designator.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses any of the timestamp shapes found in call records.
// The second return is false when the value is empty or matches no layout.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreatedTime returns the parsed creation timestamp.
func (r *CallRecord) CreatedTime() (time.Time, bool) {
	return ParseTimestamp(r.CreatedAt)
}

// EndedTime returns the parsed end timestamp.
func (r *CallRecord) EndedTime() (time.Time, bool) {
	return ParseTimestamp(r.EndedAt)
}

// EffectiveDuration returns the call duration in seconds: the explicit
// duration field when non-zero, otherwise the span between the created and
// ended timestamps, otherwise zero.
func (r *CallRecord) EffectiveDuration() float64 {
	if r.Duration != 0 {
		return r.Duration
	}
	created, okCreated := r.CreatedTime()
	ended, okEnded := r.EndedTime()
	if okCreated && okEnded {
		if seconds := ended.Sub(created).Seconds(); seconds > 0 {
			return seconds
		}
	}
	return 0
}

// Assistant is one configured assistant from the /assistants endpoint.
type Assistant struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
