package tasks

import (
	"fmt"
	"iter"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store persists the full task list. The collection loads it once at startup
// and rewrites it after every mutation.
type Store interface {
	Load() ([]Task, error)
	Save([]Task) error
}

// Filter selects which tasks a listing returns.
type Filter string

const (
	FilterAll Filter = "all"
	// FilterOverdue and FilterDueSoon select on the recomputed target status;
	// due_soon includes tasks due today.
	FilterOverdue Filter = "overdue"
	FilterDueSoon Filter = "due_soon"
)

// ParseFilter validates a filter token. Besides "all", "overdue" and
// "due_soon" every status value is a filter. An empty token means "all".
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", string(FilterAll):
		return FilterAll, nil
	case string(FilterOverdue), string(FilterDueSoon):
		return Filter(s), nil
	}
	if validStatus(Status(s)) {
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown filter: %q", s)
}

// Summary aggregates counts and effort over the full collection.
type Summary struct {
	TotalTasks           int     `json:"total_tasks"`
	CompletedTasks       int     `json:"completed_tasks"`
	TotalEffortHours     float64 `json:"total_effort_hours"`
	CompletedEffortHours float64 `json:"completed_effort_hours"`
	RemainingEffortHours float64 `json:"remaining_effort_hours"`
	OverdueCount         int     `json:"overdue_count"`
	DueSoonCount         int     `json:"due_soon_count"`
}

// Update carries the fields of a partial update. A nil field is left
// untouched; for Effort and TargetDate a pointer to the empty string clears
// the value.
type Update struct {
	Text       *string
	Priority   *string
	Status     *string
	Effort     *string
	TargetDate *string
}

// Collection owns the in-memory task list. Mutations are serialized by a
// single write lock and persisted through the injected store before they
// become visible; reads may run concurrently with each other.
type Collection struct {
	mu    sync.RWMutex
	store Store
	tasks []Task
	now   func() time.Time
}

// NewCollection loads the persisted task list from the store.
func NewCollection(store Store) (*Collection, error) {
	list, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return &Collection{store: store, tasks: list, now: time.Now}, nil
}

// Add validates and appends a new task, assigns the next id and persists.
// Priority defaults to medium when empty; effort and target date tokens are
// optional.
func (c *Collection) Add(text string, priority Priority, effortToken, dateToken string) (View, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return View{}, ErrEmptyTask
	}
	priority = Priority(strings.ToLower(strings.TrimSpace(string(priority))))
	if priority == "" {
		priority = PriorityMedium
	}
	if !validPriority(priority) {
		return View{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	today := DateOf(now)

	effort, err := ParseEffort(effortToken)
	if err != nil {
		return View{}, err
	}
	target, err := ParseTargetDate(dateToken, today)
	if err != nil {
		return View{}, err
	}

	t := Task{
		ID:         c.nextID(),
		Text:       text,
		Priority:   priority,
		Status:     StatusPending,
		Effort:     effort,
		TargetDate: target,
		CreatedAt:  now,
	}

	next := append(append([]Task(nil), c.tasks...), t)
	if err := c.store.Save(next); err != nil {
		return View{}, fmt.Errorf("save tasks: %w", err)
	}
	c.tasks = next
	return t.View(today), nil
}

// Update applies the provided fields to the task with the given id. Setting
// status to completed stamps completed_at; moving away from completed clears
// it. On any validation failure nothing changes, in memory or on disk.
func (c *Collection) Update(id int, u Update) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return View{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	now := c.now()
	today := DateOf(now)
	t := c.tasks[idx]

	if u.Text != nil {
		text := strings.TrimSpace(*u.Text)
		if text == "" {
			return View{}, ErrEmptyTask
		}
		t.Text = text
	}
	if u.Priority != nil {
		p := Priority(strings.ToLower(strings.TrimSpace(*u.Priority)))
		if !validPriority(p) {
			return View{}, fmt.Errorf("%w: %q", ErrInvalidPriority, *u.Priority)
		}
		t.Priority = p
	}
	if u.Status != nil {
		s := Status(strings.ToLower(strings.TrimSpace(*u.Status)))
		if !validStatus(s) {
			return View{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *u.Status)
		}
		if s == StatusCompleted && t.Status != StatusCompleted {
			done := now
			t.CompletedAt = &done
		}
		if s != StatusCompleted {
			t.CompletedAt = nil
		}
		t.Status = s
	}
	if u.Effort != nil {
		effort, err := ParseEffort(*u.Effort)
		if err != nil {
			return View{}, err
		}
		t.Effort = effort
	}
	if u.TargetDate != nil {
		target, err := ParseTargetDate(*u.TargetDate, today)
		if err != nil {
			return View{}, err
		}
		t.TargetDate = target
	}

	next := append([]Task(nil), c.tasks...)
	next[idx] = t
	if err := c.store.Save(next); err != nil {
		return View{}, fmt.Errorf("save tasks: %w", err)
	}
	c.tasks = next
	return t.View(today), nil
}

// Delete removes the task with the given id and persists.
func (c *Collection) Delete(id int) (Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	removed := c.tasks[idx]
	next := append([]Task(nil), c.tasks[:idx]...)
	next = append(next, c.tasks[idx+1:]...)
	if err := c.store.Save(next); err != nil {
		return Task{}, fmt.Errorf("save tasks: %w", err)
	}
	c.tasks = next
	return removed, nil
}

// ClearCompleted removes every completed task and returns how many were
// removed, which may be zero.
func (c *Collection) ClearCompleted() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if t.Status != StatusCompleted {
			next = append(next, t)
		}
	}
	removed := len(c.tasks) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := c.store.Save(next); err != nil {
		return 0, fmt.Errorf("save tasks: %w", err)
	}
	c.tasks = next
	return removed, nil
}

// List returns the matching tasks as a restartable sequence, sorted for
// display. The sequence iterates a snapshot; the collection is not touched.
func (c *Collection) List(filter Filter) iter.Seq[View] {
	views := c.snapshot()

	matched := views[:0:0]
	for _, v := range views {
		if matchFilter(v, filter) {
			matched = append(matched, v)
		}
	}

	return func(yield func(View) bool) {
		for _, v := range matched {
			if !yield(v) {
				return
			}
		}
	}
}

func matchFilter(v View, filter Filter) bool {
	switch filter {
	case FilterAll, "":
		return true
	case FilterOverdue:
		return v.TargetStatus == TargetOverdue
	case FilterDueSoon:
		return v.TargetStatus == TargetDueToday || v.TargetStatus == TargetDueSoon
	default:
		return v.Status == Status(filter)
	}
}

// Summary computes the aggregate counts over the full collection. Overdue and
// due-soon counts exclude completed tasks by construction: completed tasks
// classify as completed.
func (c *Collection) Summary() Summary {
	var s Summary
	for _, v := range c.snapshot() {
		s.TotalTasks++
		if v.Status == StatusCompleted {
			s.CompletedTasks++
		}
		if v.Effort != nil {
			s.TotalEffortHours += float64(*v.Effort)
			if v.Status == StatusCompleted {
				s.CompletedEffortHours += float64(*v.Effort)
			}
		}
		switch v.TargetStatus {
		case TargetOverdue:
			s.OverdueCount++
		case TargetDueToday, TargetDueSoon:
			s.DueSoonCount++
		}
	}
	s.RemainingEffortHours = s.TotalEffortHours - s.CompletedEffortHours
	return s
}

// snapshot copies the collection as views and sorts them for display:
// target-status rank, then status rank, then priority rank, then newest first.
func (c *Collection) snapshot() []View {
	c.mu.RLock()
	today := DateOf(c.now())
	views := make([]View, len(c.tasks))
	for i, t := range c.tasks {
		views[i] = t.View(today)
	}
	c.mu.RUnlock()

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if ra, rb := targetRank(a.TargetStatus), targetRank(b.TargetStatus); ra != rb {
			return ra < rb
		}
		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra < rb
		}
		if ra, rb := priorityRank(a.Priority), priorityRank(b.Priority); ra != rb {
			return ra < rb
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return views
}

// nextID is max existing id + 1. Ids are never reused after deletion.
func (c *Collection) nextID() int {
	max := 0
	for _, t := range c.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func (c *Collection) indexOf(id int) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
