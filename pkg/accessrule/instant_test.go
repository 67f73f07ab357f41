//
//  Copyright © Courseflow Inc. All rights reserved.
//

package accessrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstantNormalizesSeconds(t *testing.T) {
	withSeconds := ParseInstant("2024-03-14T00:01:00")
	withoutSeconds := ParseInstant("2024-03-14T00:01")

	require.True(t, withSeconds.Valid)
	require.True(t, withoutSeconds.Valid)
	assert.Equal(t, withSeconds.Time, withoutSeconds.Time)
	assert.Equal(t, withSeconds.String(), withoutSeconds.String())
	assert.Equal(t, "2024-03-14T00:01:00", withoutSeconds.String())
}

func TestParseInstantRoundTripIsNoOp(t *testing.T) {
	first := ParseInstant("2024-03-14T00:01")
	second := ParseInstant(first.String())

	assert.Equal(t, first, second)
}

func TestParseInstantWithZoneOffset(t *testing.T) {
	i := ParseInstant("2024-03-14T00:01-06:00")
	require.True(t, i.Valid)
	assert.Equal(t, "2024-03-14T00:01:00-06:00", i.String())

	reparsed := ParseInstant(i.String())
	assert.Equal(t, i.String(), reparsed.String())
	assert.True(t, i.Time.Equal(reparsed.Time))
}

func TestParseInstantInvalid(t *testing.T) {
	tests := []string{
		"not a date",
		"2024-13-40T99:99",
		"2024-03-14",
		"00:01:00",
	}
	for _, text := range tests {
		i := ParseInstant(text)
		assert.False(t, i.Valid, "expected %q to be invalid", text)
		assert.Equal(t, text, i.String(), "invalid text must be preserved for reporting")
	}
}

func TestParseInstantEmpty(t *testing.T) {
	i := ParseInstant("")
	assert.False(t, i.Valid)
	assert.True(t, i.IsZero())
}

func TestInstantOf(t *testing.T) {
	at := time.Date(2024, 3, 21, 23, 59, 0, 0, time.UTC)
	i := InstantOf(at)
	require.True(t, i.Valid)
	assert.Equal(t, at, i.Time)
	assert.Equal(t, "2024-03-21T23:59:00", i.String())
}
