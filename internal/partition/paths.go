package partition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Recognized data types.
const (
	TypeDecisions = "decisions"
	TypeEvents    = "events"
)

// ErrInvalidType indicates a type filter that is not a recognized data type.
var ErrInvalidType = errors.New("invalid type")

// ErrInvalidDateRange indicates a start date after the end date.
var ErrInvalidDateRange = errors.New("invalid date range")

// Filter is the immutable set of narrowing filters for one invocation.
// Fields are raw flag values; validation happens during path construction.
type Filter struct {
	Type           string
	Start          string
	End            string
	PartitionKey   string
	PartitionValue string
}

// Prefix is one logical key prefix to operate on: the relative key below the
// base path and the absolute S3 URI it expands to.
type Prefix struct {
	Relative string
	Absolute string
}

// DateRange returns the ascending, inclusive sequence of calendar days from
// start to end.
//
// An absent start means no date filtering: the sequence is empty. An absent
// end defaults to start, a single-day range. A start after the end fails
// with ErrInvalidDateRange.
func DateRange(start, end string) ([]Date, error) {
	if start == "" {
		return nil, nil
	}
	if end == "" {
		end = start
	}

	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: start %s is after end %s", ErrInvalidDateRange, from, to)
	}

	var days []Date
	for d := from; !d.After(to); d = d.Next() {
		days = append(days, d)
	}
	return days, nil
}

// RelativeKeys computes the ordered relative key prefixes the filter selects.
//
// With no type filter every other filter is ignored and the single empty key
// (the whole base path) is returned; this progressive-narrowing behavior is
// deliberate. Type validity is checked before the date range, so an invalid
// type is reported even when the range is also bad.
func (f Filter) RelativeKeys() ([]string, error) {
	if f.Type == "" {
		if f.Start != "" || f.End != "" || f.PartitionKey != "" || f.PartitionValue != "" {
			log.Warn().Msg("no type filter set; ignoring date and partition filters")
		}
		return []string{""}, nil
	}

	if f.Type != TypeDecisions && f.Type != TypeEvents {
		return nil, fmt.Errorf("%w: %q is not one of %q or %q", ErrInvalidType, f.Type, TypeDecisions, TypeEvents)
	}

	days, err := DateRange(f.Start, f.End)
	if err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return []string{"type=" + f.Type}, nil
	}

	var suffix string
	if f.PartitionKey != "" && f.PartitionValue != "" {
		suffix = fmt.Sprintf("/%s=%s", f.PartitionKey, f.PartitionValue)
	}

	keys := make([]string, 0, len(days))
	for _, day := range days {
		keys = append(keys, fmt.Sprintf("type=%s/date=%s%s", f.Type, day, suffix))
	}
	return keys, nil
}

// AbsoluteKeys expands relative keys against the base path. The base path
// always ends in a separator; a separator is appended after the relative
// component only when it is non-empty.
func AbsoluteKeys(basePath string, relativeKeys []string) []string {
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}

	keys := make([]string, 0, len(relativeKeys))
	for _, rel := range relativeKeys {
		abs := basePath + rel
		if rel != "" {
			abs += "/"
		}
		keys = append(keys, abs)
	}
	return keys
}

// Prefixes computes the index-aligned (relative, absolute) prefix pairs the
// filter selects under basePath.
func (f Filter) Prefixes(basePath string) ([]Prefix, error) {
	rels, err := f.RelativeKeys()
	if err != nil {
		return nil, err
	}
	abs := AbsoluteKeys(basePath, rels)

	prefixes := make([]Prefix, len(rels))
	for i := range rels {
		prefixes[i] = Prefix{Relative: rels[i], Absolute: abs[i]}
	}
	return prefixes, nil
}
