package tasks

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hours is an effort estimate in hours. On the wire it is carried as text so
// the stored collection stays readable and format-stable.
type Hours float64

func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(formatHours(float64(h)))
}

func (h *Hours) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !validHours(v) {
			return fmt.Errorf("invalid effort %q", s)
		}
		*h = Hours(v)
		return nil
	}
	// Older files stored effort as a bare number.
	var v float64
	if err := json.Unmarshal(b, &v); err != nil || !validHours(v) {
		return fmt.Errorf("invalid effort: %s", string(b))
	}
	*h = Hours(v)
	return nil
}

// validHours reports whether v is a usable hour count: finite and positive.
// The comparison also screens out NaN.
func validHours(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// hoursPerSuffix maps an effort unit suffix to its hour multiplier. A working
// day is 8 hours and a working week is 40.
var hoursPerSuffix = map[byte]float64{
	'm': 1.0 / 60,
	'h': 1,
	'd': 8,
	'w': 40,
}

// EffortTokens lists the documented effort shortcuts, smallest first.
func EffortTokens() []string {
	return []string{"30m", "1h", "2h", "4h", "1d", "2d", "3d", "1w"}
}

// ParseEffort converts an effort token into an hour count. Recognized forms
// are a bare number of hours or a number with an m/h/d/w suffix ("30m", "2h",
// "1d", "1w"). An empty token means "no estimate" and returns nil. Anything
// else fails with ErrInvalidEffort.
func ParseEffort(token string) (*Hours, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, nil
	}

	if v, err := strconv.ParseFloat(token, 64); err == nil {
		if !validHours(v) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEffort, token)
		}
		h := Hours(v)
		return &h, nil
	}

	mult, ok := hoursPerSuffix[token[len(token)-1]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEffort, token)
	}
	v, err := strconv.ParseFloat(token[:len(token)-1], 64)
	if err != nil || !validHours(v) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEffort, token)
	}
	h := Hours(v * mult)
	return &h, nil
}

// Label renders an hour count as a short display string: minutes under one
// hour, whole/partial days from eight hours up, plain hours in between.
func (h Hours) Label() string {
	v := float64(h)
	switch {
	case v < 1:
		return fmt.Sprintf("%dm", int(math.Round(v*60)))
	case v >= 8:
		days := int(v / 8)
		rem := v - float64(days)*8
		if rem == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd %sh", days, formatHours(rem))
	default:
		return formatHours(v) + "h"
	}
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
