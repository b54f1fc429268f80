package selector

import (
	"sort"
	"time"

	"github.com/penwyp/vapi-transcripts/internal/core/constants"
	"github.com/penwyp/vapi-transcripts/internal/core/model"
	"github.com/penwyp/vapi-transcripts/internal/util"
)

// Criteria narrows a call history down to the calls worth rendering. Zero
// values mean no constraint for every field.
type Criteria struct {
	// MinDurationSeconds drops calls shorter than this many seconds.
	MinDurationSeconds int
	// DaysAgo keeps only calls created within the last N days. Takes
	// precedence over TodayOnly when both are set.
	DaysAgo int
	// TodayOnly keeps only calls created since local midnight.
	TodayOnly bool
	// Limit caps the result to the most recent N calls.
	Limit int
}

// Select filters records down to the calls matching the criteria, sorted
// ascending by creation time. An empty result is valid and means nothing
// matched.
func Select(records []model.CallRecord, criteria Criteria) []model.CallRecord {
	sorted := sortByCreation(records)

	cutoff, hasCutoff := cutoffTime(criteria)

	filtered := make([]model.CallRecord, 0, len(sorted))
	for _, rec := range sorted {
		if rec.EffectiveDuration() < float64(criteria.MinDurationSeconds) {
			continue
		}
		if hasCutoff {
			// Records without a parseable creation time are never
			// excluded by the recency window
			if created, ok := rec.CreatedTime(); ok && created.Before(cutoff) {
				continue
			}
		}
		filtered = append(filtered, rec)
	}

	if criteria.Limit > 0 && len(filtered) > criteria.Limit {
		util.LogDebugf("Limiting %d filtered calls to the most recent %d", len(filtered), criteria.Limit)
		filtered = filtered[len(filtered)-criteria.Limit:]
	}

	return filtered
}

// sortByCreation orders records ascending by creation time without mutating
// the input. Records whose creation time does not parse sort before
// everything else, ordered among themselves by the raw string.
func sortByCreation(records []model.CallRecord) []model.CallRecord {
	sorted := make([]model.CallRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := sorted[i].CreatedTime()
		tj, okj := sorted[j].CreatedTime()
		switch {
		case oki && okj:
			return ti.Before(tj)
		case oki != okj:
			return !oki
		default:
			return sorted[i].CreatedAt < sorted[j].CreatedAt
		}
	})
	return sorted
}

// cutoffTime computes the recency cutoff. A positive DaysAgo wins over
// TodayOnly; without either there is no cutoff.
func cutoffTime(criteria Criteria) (time.Time, bool) {
	tp := util.GetTimeProvider()
	now := tp.Now()
	if criteria.DaysAgo > 0 {
		return now.Add(-time.Duration(criteria.DaysAgo) * constants.DayDuration), true
	}
	if criteria.TodayOnly {
		return tp.StartOfDay(now), true
	}
	return time.Time{}, false
}
