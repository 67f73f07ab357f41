//
//  Copyright © Courseflow Inc. All rights reserved.
//

package accessrule

import "time"

// Instant layouts accepted by [ParseInstant].  A missing seconds component
// is normalized to ":00" during parsing.
const (
	layoutZone       = "2006-01-02T15:04:05Z07:00"
	layoutLocal      = "2006-01-02T15:04:05"
	layoutZoneNoSec  = "2006-01-02T15:04Z07:00"
	layoutLocalNoSec = "2006-01-02T15:04"
)

// Instant is a point in time parsed from an ISO-8601-like string.
//
// Instant keeps both the normalized source text and the parsed time.  Text
// that fails to parse produces an Instant with Valid == false; the
// structural validator reports such values with a precise field path, so
// parse failures never surface as errors from deep inside merge or
// scheduling logic.
type Instant struct {
	// Raw is the normalized source text.  For invalid Instants it holds
	// the original text unchanged, for error reporting.
	Raw string
	// Time is the parsed value.  Meaningless unless Valid.
	Time time.Time
	// Valid reports whether the source text parsed to a usable time.
	Valid bool
}

// ParseInstant parses an ISO-8601-like date-time string, accepting values
// with or without a seconds component and with an optional zone offset.
// Values lacking seconds are normalized to ":00"; re-parsing a normalized
// value is a no-op.
//
// ParseInstant never fails.  Check Valid before using the parsed time.
func ParseInstant(s string) Instant {
	if s == "" {
		return Instant{}
	}

	for _, layout := range []string{layoutZone, layoutLocal, layoutZoneNoSec, layoutLocalNoSec} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		normalized := layoutLocal
		if layout == layoutZone || layout == layoutZoneNoSec {
			normalized = layoutZone
		}

		return Instant{
			Raw:   t.Format(normalized),
			Time:  t,
			Valid: true,
		}
	}

	return Instant{Raw: s}
}

// InstantOf constructs a valid Instant directly from a time value.
func InstantOf(t time.Time) Instant {
	return Instant{
		Raw:   t.Format(layoutLocal),
		Time:  t,
		Valid: true,
	}
}

// IsZero reports whether the Instant was never set.
func (i Instant) IsZero() bool {
	return i.Raw == "" && !i.Valid
}

// String returns the normalized source text.
func (i Instant) String() string {
	return i.Raw
}
