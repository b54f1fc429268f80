package fixtures

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/penwyp/vapi-transcripts/internal/core/model"
)

// CallBuilder assembles call records for tests. Methods return the builder
// so a payload reads as one chain.
type CallBuilder struct {
	record model.CallRecord
}

// NewCall starts a builder for a call with the given ID.
func NewCall(id string) *CallBuilder {
	return &CallBuilder{record: model.CallRecord{ID: id}}
}

// CreatedAt sets the creation timestamp.
func (b *CallBuilder) CreatedAt(value string) *CallBuilder {
	b.record.CreatedAt = value
	return b
}

// EndedAt sets the end timestamp.
func (b *CallBuilder) EndedAt(value string) *CallBuilder {
	b.record.EndedAt = value
	return b
}

// Duration sets the explicit duration in seconds.
func (b *CallBuilder) Duration(seconds float64) *CallBuilder {
	b.record.Duration = seconds
	return b
}

// Status sets the call status.
func (b *CallBuilder) Status(status string) *CallBuilder {
	b.record.Status = status
	return b
}

// EndedReason sets the call end reason.
func (b *CallBuilder) EndedReason(reason string) *CallBuilder {
	b.record.EndedReason = reason
	return b
}

// Type sets the call type.
func (b *CallBuilder) Type(callType string) *CallBuilder {
	b.record.Type = callType
	return b
}

// ArtifactTranscript sets the preformatted artifact transcript text.
func (b *CallBuilder) ArtifactTranscript(text string) *CallBuilder {
	b.ensureArtifact()
	b.record.Artifact.Transcript = text
	return b
}

// ArtifactMessage appends one turn to the artifact message log. The at value
// is the numeric ordering key the API emits.
func (b *CallBuilder) ArtifactMessage(role, message string, at float64) *CallBuilder {
	b.ensureArtifact()
	b.record.Artifact.Messages = append(b.record.Artifact.Messages, model.ArtifactMessage{
		Role:    role,
		Message: message,
		Time:    at,
	})
	return b
}

// TranscriptTurn appends one turn to the top-level transcript.
func (b *CallBuilder) TranscriptTurn(role, content, createdAt string) *CallBuilder {
	b.record.Transcript = append(b.record.Transcript, model.Turn{
		Role:      role,
		Content:   content,
		CreatedAt: createdAt,
	})
	return b
}

// MessageTurn appends one turn to the top-level message log.
func (b *CallBuilder) MessageTurn(role, content, createdAt string) *CallBuilder {
	b.record.Messages = append(b.record.Messages, model.Turn{
		Role:      role,
		Content:   content,
		CreatedAt: createdAt,
	})
	return b
}

// Build returns the assembled record.
func (b *CallBuilder) Build() model.CallRecord {
	return b.record
}

// JSON renders the record as an API payload.
func (b *CallBuilder) JSON() string {
	return mustMarshal(b.record)
}

// CallListJSON renders the calls as the bare-array list payload.
func CallListJSON(calls ...*CallBuilder) string {
	return mustMarshal(buildAll(calls))
}

// CallEnvelopeJSON renders the calls wrapped in a data envelope.
func CallEnvelopeJSON(calls ...*CallBuilder) string {
	return mustMarshal(map[string][]model.CallRecord{"data": buildAll(calls)})
}

func (b *CallBuilder) ensureArtifact() {
	if b.record.Artifact == nil {
		b.record.Artifact = &model.Artifact{}
	}
}

func buildAll(calls []*CallBuilder) []model.CallRecord {
	records := make([]model.CallRecord, 0, len(calls))
	for _, c := range calls {
		records = append(records, c.Build())
	}
	return records
}

func mustMarshal(v any) string {
	data, err := sonic.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal call fixture: %v", err))
	}
	return string(data)
}
