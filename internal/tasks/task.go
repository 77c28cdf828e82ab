package tasks

import (
	"encoding/json"
	"fmt"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusOnHold     Status = "on_hold"
	StatusCompleted  Status = "completed"
)

// TargetStatus is a derived classification of deadline urgency. It is
// recomputed on every read and never persisted.
type TargetStatus string

const (
	TargetOverdue   TargetStatus = "overdue"
	TargetDueToday  TargetStatus = "due_today"
	TargetDueSoon   TargetStatus = "due_soon"
	TargetOnTrack   TargetStatus = "on_track"
	TargetNoTarget  TargetStatus = "no_target"
	TargetCompleted TargetStatus = "completed"
)

// ValidStatuses lists every status value in lifecycle order.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusOnHold, StatusCompleted}
}

// ValidPriorities lists every priority value from most to least urgent.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

func validPriority(p Priority) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

func validStatus(s Status) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusOnHold || s == StatusCompleted
}

// statusRank orders statuses for display: active work first, completed last.
func statusRank(s Status) int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusOnHold:
		return 2
	default:
		return 3
	}
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Task is one tracked task. Effort and TargetDate are optional; CompletedAt is
// set exactly while Status is completed.
type Task struct {
	ID          int        `json:"id"`
	Text        string     `json:"task"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Effort      *Hours     `json:"effort"`
	TargetDate  *Date      `json:"target_date"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// View is a Task plus the derived fields added at query time.
type View struct {
	Task
	DaysUntilTarget *int         `json:"days_until_target"`
	TargetStatus    TargetStatus `json:"target_status"`
}

// View computes the derived fields for a task relative to today.
func (t Task) View(today Date) View {
	status, days := Classify(t.Status, t.TargetDate, today)
	return View{Task: t, DaysUntilTarget: days, TargetStatus: status}
}

// Date is a calendar date with no time component, serialized as YYYY-MM-DD.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysUntil returns the signed whole-day distance from from to d.
func (d Date) DaysUntil(from Date) int {
	return int(d.t.Sub(from.t) / (24 * time.Hour))
}

func (d Date) String() string { return d.t.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.t = t
	return nil
}
