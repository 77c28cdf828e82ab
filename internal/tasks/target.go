package tasks

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Classify computes the target-date status for a task and the signed number of
// days until its target. Completed tasks classify as completed regardless of
// date; days are still reported when a target exists. Date-only arithmetic,
// no time of day.
func Classify(status Status, target *Date, today Date) (TargetStatus, *int) {
	var days *int
	if target != nil {
		d := target.DaysUntil(today)
		days = &d
	}

	if status == StatusCompleted {
		return TargetCompleted, days
	}
	if target == nil {
		return TargetNoTarget, nil
	}

	switch {
	case *days < 0:
		return TargetOverdue, days
	case *days == 0:
		return TargetDueToday, days
	case *days <= 2:
		return TargetDueSoon, days
	default:
		return TargetOnTrack, days
	}
}

// targetRank orders target statuses for display. Completed tasks sort after
// everything so the status key decides their position.
func targetRank(s TargetStatus) int {
	switch s {
	case TargetOverdue:
		return 0
	case TargetDueToday:
		return 1
	case TargetDueSoon:
		return 2
	case TargetOnTrack:
		return 3
	case TargetNoTarget:
		return 4
	default:
		return 5
	}
}

// ParseTargetDate converts a date token into a calendar date. Accepted forms:
// an explicit YYYY-MM-DD literal, "today", "tomorrow", or "Nd" meaning N days
// from today. An empty token means "no deadline" and returns nil. Anything
// else fails with ErrInvalidDate.
func ParseTargetDate(token string, today Date) (*Date, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, nil
	}

	switch token {
	case "today":
		return &today, nil
	case "tomorrow":
		d := today.AddDays(1)
		return &d, nil
	}

	if strings.HasSuffix(token, "d") {
		if n, err := strconv.Atoi(token[:len(token)-1]); err == nil {
			if n < 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidDate, token)
			}
			d := today.AddDays(n)
			return &d, nil
		}
	}

	t, err := time.Parse(dateLayout, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, token)
	}
	d := DateOf(t)
	return &d, nil
}
