package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/vapi-transcripts/internal/core/identifier"
	"github.com/penwyp/vapi-transcripts/internal/core/model"
	"github.com/penwyp/vapi-transcripts/internal/core/selector"
	"github.com/penwyp/vapi-transcripts/internal/core/transcript"
	"github.com/penwyp/vapi-transcripts/internal/delivery"
	"github.com/penwyp/vapi-transcripts/internal/presentation/renderer"
	"github.com/penwyp/vapi-transcripts/internal/util"
)

// Terminal failure states the CLI distinguishes.
var (
	// ErrNoAssistantID means discovery exhausted every source.
	ErrNoAssistantID = errors.New("no assistant identifier found")
	// ErrInvalidAssistantID means a supplied identifier is not a
	// canonical UUID.
	ErrInvalidAssistantID = errors.New("invalid assistant ID format")
)

// CallFetcher retrieves the raw call history for an assistant.
type CallFetcher interface {
	ListCalls(assistantID string) ([]model.CallRecord, error)
}

// Dispatcher delivers the rendered document.
type Dispatcher interface {
	Dispatch(document string, opts delivery.Options) error
}

// Config carries the per-run parameters of a transcript extraction.
type Config struct {
	// AssistantID skips browser discovery when set. It is still cleaned
	// and validated.
	AssistantID string

	// Filter criteria.
	MinDurationSeconds int
	DaysAgo            int
	TodayOnly          bool
	Limit              int

	// Delivery options.
	OutputPath    string
	SuppressPaste bool
}

// Pipeline is one single-shot transcript extraction run: resolve an
// assistant ID, fetch its calls, filter, normalize, render, dispatch. The
// phases run strictly sequentially and nothing persists between runs.
type Pipeline struct {
	config     *Config
	resolver   *identifier.Resolver
	fetcher    CallFetcher
	dispatcher Dispatcher
	renderer   *renderer.Renderer
	log        util.LoggerInterface
}

// New creates a pipeline over the given collaborators.
func New(config *Config, resolver *identifier.Resolver, fetcher CallFetcher, dispatcher Dispatcher) *Pipeline {
	return &Pipeline{
		config:     config,
		resolver:   resolver,
		fetcher:    fetcher,
		dispatcher: dispatcher,
		renderer:   renderer.NewRenderer(),
		log:        util.ActiveLogger(),
	}
}

// Run executes the pipeline once. The two empty outcomes, no calls at all
// and every call filtered out, are terminal successes: a message is printed
// and the dispatcher never runs.
func (p *Pipeline) Run() error {
	startTime := time.Now()
	p.log.Info("Starting transcript extraction")

	// Phase 1: resolve the assistant ID
	resolveStart := time.Now()
	assistantID, err := p.resolveAssistantID()
	if err != nil {
		return err
	}
	p.log.Debugf("Phase 1 - Resolve assistant duration: %v, assistant: %s", time.Since(resolveStart), assistantID)

	fmt.Printf("Fetching transcripts for assistant ID: %s\n", assistantID)

	// Phase 2: fetch the call history
	fetchStart := time.Now()
	records, err := p.fetcher.ListCalls(assistantID)
	if err != nil {
		p.log.Errorf("Call fetch failed: %v", err)
		return fmt.Errorf("failed to retrieve calls: %w", err)
	}
	p.log.Debugf("Phase 2 - Fetch calls duration: %v, records: %d", time.Since(fetchStart), len(records))

	if len(records) == 0 {
		fmt.Println("No calls found")
		return nil
	}

	// Phase 3: filter and order
	selectStart := time.Now()
	selected := selector.Select(records, selector.Criteria{
		MinDurationSeconds: p.config.MinDurationSeconds,
		DaysAgo:            p.config.DaysAgo,
		TodayOnly:          p.config.TodayOnly,
		Limit:              p.config.Limit,
	})
	p.log.Debugf("Phase 3 - Select calls duration: %v, kept: %d of %d", time.Since(selectStart), len(selected), len(records))

	if len(selected) == 0 {
		fmt.Println("No calls match the specified filters")
		return nil
	}

	// Phase 4: normalize transcripts
	normalizeStart := time.Now()
	entries := make([]renderer.Entry, 0, len(selected))
	for _, rec := range selected {
		entries = append(entries, renderer.Entry{
			Record:     rec,
			Transcript: transcript.Normalize(rec),
		})
	}
	p.log.Debugf("Phase 4 - Normalize transcripts duration: %v", time.Since(normalizeStart))

	// Phase 5: render the document
	renderStart := time.Now()
	document := p.renderer.Render(entries)
	p.log.Debugf("Phase 5 - Render document duration: %v, size: %d bytes", time.Since(renderStart), len(document))

	// Phase 6: dispatch
	dispatchStart := time.Now()
	err = p.dispatcher.Dispatch(document, delivery.Options{
		OutputPath:    p.config.OutputPath,
		SuppressPaste: p.config.SuppressPaste,
	})
	p.log.Debugf("Phase 6 - Dispatch duration: %v", time.Since(dispatchStart))
	if err != nil {
		return err
	}

	p.log.Debugf("Pipeline complete, total duration: %v", time.Since(startTime))
	return nil
}

// resolveAssistantID validates an explicitly supplied ID or walks browser
// discovery. An ambiguous discovery, multiple tabs naming different
// assistants, is reported in full but still resolves to the first match.
func (p *Pipeline) resolveAssistantID() (string, error) {
	if p.config.AssistantID != "" {
		id := identifier.Clean(p.config.AssistantID)
		if !identifier.IsValid(id) {
			return "", fmt.Errorf("%w: %s", ErrInvalidAssistantID, id)
		}
		return id, nil
	}

	fmt.Println("Looking for VAPI assistant tabs in Chrome...")
	resolution, ok := p.resolver.Resolve()
	if !ok {
		fmt.Println("No VAPI assistant tabs found in Chrome. Please open a VAPI dashboard tab in Chrome.")
		return "", ErrNoAssistantID
	}

	if resolution.Ambiguous {
		p.log.Warnf("Tabs disagree on the assistant, using the first of %d candidates", len(resolution.Candidates))
		fmt.Printf("Found %d tabs with assistant IDs:\n", len(resolution.Candidates))
		for i, candidate := range resolution.Candidates {
			fmt.Printf("%d. %s (%s)\n", i+1, candidate.ID, candidate.URL)
		}
		fmt.Printf("Using the first one: %s\n", resolution.ID)
	}

	return resolution.ID, nil
}
