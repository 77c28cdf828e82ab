package tasks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEffort_Tokens(t *testing.T) {
	want := map[string]float64{
		"30m": 0.5,
		"1h":  1,
		"2h":  2,
		"4h":  4,
		"1d":  8,
		"2d":  16,
		"3d":  24,
		"1w":  40,
	}
	for token, hours := range want {
		h, err := ParseEffort(token)
		require.NoError(t, err, token)
		require.NotNil(t, h, token)
		assert.Equal(t, hours, float64(*h), token)
	}
}

func TestParseEffort_BareNumber(t *testing.T) {
	h, err := ParseEffort("2.5")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, 2.5, float64(*h))
}

func TestParseEffort_EmptyMeansUnset(t *testing.T) {
	h, err := ParseEffort("")
	require.NoError(t, err)
	assert.Nil(t, h, "empty token is unset, not zero")

	h, err = ParseEffort("   ")
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestParseEffort_Invalid(t *testing.T) {
	for _, token := range []string{"bogus", "h", "1x", "-2", "0", "-1d", "0h", "one hour", "nan", "nand", "nanh", "inf", "+inf", "infd"} {
		_, err := ParseEffort(token)
		require.Error(t, err, token)
		assert.ErrorIs(t, err, ErrInvalidEffort, token)
	}
}

func TestEffortLabel(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0.5, "30m"},
		{0.25, "15m"},
		{1, "1h"},
		{2, "2h"},
		{2.5, "2.5h"},
		{4, "4h"},
		{8, "1d"},
		{10, "1d 2h"},
		{16, "2d"},
		{24, "3d"},
		{40, "5d"},
		{8.5, "1d 0.5h"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Hours(tc.hours).Label(), "%v hours", tc.hours)
	}
}

// Formatting a parsed label must be stable: once a token is rendered to its
// canonical label, parsing and rendering that label changes nothing.
func TestEffortLabel_RoundTrip(t *testing.T) {
	for _, token := range EffortTokens() {
		h, err := ParseEffort(token)
		require.NoError(t, err, token)

		label := h.Label()
		h2, err := ParseEffort(label)
		require.NoError(t, err, label)
		assert.Equal(t, *h, *h2, "parsing label %q of token %q", label, token)
		assert.Equal(t, label, h2.Label())
	}
}

func TestHoursJSON(t *testing.T) {
	h := Hours(2.5)
	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `"2.5"`, string(b), "effort travels as text")

	var back Hours
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, h, back)

	// Older files stored a bare number.
	require.NoError(t, json.Unmarshal([]byte(`8`), &back))
	assert.Equal(t, Hours(8), back)

	require.Error(t, json.Unmarshal([]byte(`"nope"`), &back))

	// Stored values are held to the same rule as parsed tokens: finite and
	// positive. NaN in particular would silently spread through summary math.
	for _, raw := range []string{`"NaN"`, `"nan"`, `"-3"`, `"0"`, `"+Inf"`, `0`, `-1`} {
		assert.Error(t, json.Unmarshal([]byte(raw), &back), raw)
	}
}
