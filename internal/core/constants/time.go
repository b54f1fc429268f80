package constants

import "time"

const (
	// Timestamp rendering shared by the document renderer and table output
	TimestampLayout = "2006-01-02 15:04:05"

	// Recency window arithmetic
	DayDuration = 24 * time.Hour
)
