// Package model defines shared data structures.
package model

import "time"

// Config defines dashboard settings.
type Config struct {
	BaseURL      string        `validate:"required,url"`
	PageSize     int           `validate:"gte=1,lte=500"`
	Debounce     time.Duration `validate:"gte=0"`
	Timeout      time.Duration `validate:"gt=0"`
	RateLimit    float64       `validate:"gte=0"`
	ExportDir    string        `validate:"required"`
	ExportFormat string        `validate:"oneof=xlsx csv pdf"`
	JournalPath  string        `validate:"required"`
	LogLevel     string        `validate:"oneof=trace debug info warn error"`
	LogPath      string
}

// Status is the lifecycle of the characters request.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SortOrder is the direction of the name column sort.
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Toggle flips the order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

func (o SortOrder) String() string {
	if o == SortDesc {
		return "desc"
	}
	return "asc"
}

// ParseSortOrder accepts "asc" or "desc".
func ParseSortOrder(s string) (SortOrder, bool) {
	switch s {
	case "asc", "":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	default:
		return SortAsc, false
	}
}
