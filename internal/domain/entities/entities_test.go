package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline(t *testing.T) {
	t.Parallel()

	valid := map[string]time.Time{
		"2030-01-02":                time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		"2030-01-02T09:30":          time.Date(2030, 1, 2, 9, 30, 0, 0, time.UTC),
		"2030-01-02T09:30:15":       time.Date(2030, 1, 2, 9, 30, 15, 0, time.UTC),
		"2030-01-02T09:30:15Z":      time.Date(2030, 1, 2, 9, 30, 15, 0, time.UTC),
		" 2030-01-02T09:30:15.5Z ": time.Date(2030, 1, 2, 9, 30, 15, 500000000, time.UTC),
	}
	for in, want := range valid {
		got, err := ParseDeadline(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	for _, in := range []string{"", "soon", "02/01/2030", "2030-13-01"} {
		_, err := ParseDeadline(in)
		assert.ErrorIs(t, err, ErrInvalidDeadline, in)
	}
}

func TestParseLabels(t *testing.T) {
	t.Parallel()

	tag, err := ParseTag("High")
	require.NoError(t, err)
	assert.Equal(t, TagHigh, tag)

	_, err = ParseTag("high")
	assert.ErrorIs(t, err, ErrInvalidTag)

	section, err := ParseSection("underReview")
	require.NoError(t, err)
	assert.Equal(t, SectionUnderReview, section)

	_, err = ParseSection("done")
	assert.ErrorIs(t, err, ErrInvalidSection)
}
