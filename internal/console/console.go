// Package console implements the interactive line-oriented front end. It is a
// thin wrapper over the task collection so both front ends share one
// implementation of the derived-field and sorting rules.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/insighteck/todo-app/internal/tasks"
)

var timeNow = time.Now

var helpText = `DAILY TODO LIST MANAGER
=======================

Commands:
  add <task> [priority] [effort] [date]  - Add a task (priority: high, medium, low)
  list [filter]                          - List tasks (all, a status, overdue, due_soon)
  done <id>                              - Mark a task as completed
  start <id>                             - Mark a task as in progress
  hold <id>                              - Put a task on hold
  reopen <id>                            - Move a task back to pending
  edit <id> <text>                       - Rewrite a task's text
  delete <id>                            - Delete a task
  clear                                  - Clear all completed tasks
  summary                                - Show aggregate statistics
  help                                   - Show this help message
  quit                                   - Exit

Examples:
  add "Buy groceries" high 1h tomorrow
  add "Read a book" low
  done 1
  list overdue

Effort tokens: ` + strings.Join(tasks.EffortTokens(), ", ") + ` or a bare hour count.
Date tokens: YYYY-MM-DD, today, tomorrow, or Nd (N days from today).`

type Console struct {
	col *tasks.Collection
	in  io.Reader
	out io.Writer
}

func New(col *tasks.Collection, in io.Reader, out io.Writer) *Console {
	return &Console{col: col, in: in, out: out}
}

// Run reads commands until quit or EOF. Command errors are printed and the
// loop continues.
func (c *Console) Run() error {
	fmt.Fprintln(c.out, "Welcome to your Daily Todo List Manager!")
	fmt.Fprintln(c.out, "Type 'help' for available commands.")

	sc := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "todo> ")
		if !sc.Scan() {
			fmt.Fprintln(c.out)
			return sc.Err()
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		cmd, args, _ := strings.Cut(line, " ")
		args = strings.TrimSpace(args)

		switch strings.ToLower(cmd) {
		case "quit", "exit", "q":
			fmt.Fprintln(c.out, "Goodbye! Have a productive day!")
			return nil
		case "help", "h":
			fmt.Fprintln(c.out, helpText)
		case "add", "a":
			c.add(args)
		case "list", "ls", "l":
			c.list(args)
		case "done", "d":
			c.setStatus(args, tasks.StatusCompleted, "Completed")
		case "start":
			c.setStatus(args, tasks.StatusInProgress, "Started")
		case "hold":
			c.setStatus(args, tasks.StatusOnHold, "On hold")
		case "reopen":
			c.setStatus(args, tasks.StatusPending, "Reopened")
		case "edit":
			c.edit(args)
		case "delete", "del", "rm":
			c.delete(args)
		case "clear":
			c.clear()
		case "summary":
			c.summary()
		default:
			fmt.Fprintf(c.out, "Unknown command: %q. Type 'help' for available commands.\n", cmd)
		}
	}
}

// add splits trailing priority/effort/date tokens off the task text, the same
// trailing-token heuristic the console has always used for priority.
func (c *Console) add(args string) {
	if args == "" {
		fmt.Fprintln(c.out, "Please provide a task. Example: add 'Buy milk' high")
		return
	}

	text, priority, effort, date := splitAddArgs(args)

	v, err := c.col.Add(text, priority, effort, date)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Added: %q (priority: %s)\n", v.Text, v.Priority)
}

func splitAddArgs(args string) (text string, priority tasks.Priority, effort, date string) {
	fields := strings.Fields(args)

	// Peel recognized tokens off the end, one of each kind at most.
	for len(fields) > 1 {
		last := strings.ToLower(fields[len(fields)-1])
		switch {
		case priority == "" && (last == "high" || last == "medium" || last == "low"):
			priority = tasks.Priority(last)
		case effort == "" && isEffortToken(last):
			effort = last
		case date == "" && isDateToken(last):
			date = last
		default:
			text = strings.Join(fields, " ")
			return strings.Trim(text, `"'`), priority, effort, date
		}
		fields = fields[:len(fields)-1]
	}

	text = strings.Join(fields, " ")
	return strings.Trim(text, `"'`), priority, effort, date
}

func isEffortToken(s string) bool {
	h, err := tasks.ParseEffort(s)
	return err == nil && h != nil
}

func isDateToken(s string) bool {
	d, err := tasks.ParseTargetDate(s, tasks.DateOf(timeNow()))
	return err == nil && d != nil
}

func (c *Console) list(args string) {
	filter, err := tasks.ParseFilter(args)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	shown := 0
	for v := range c.col.List(filter) {
		if shown == 0 {
			fmt.Fprintln(c.out, strings.Repeat("=", 60))
			fmt.Fprintln(c.out, "YOUR TODO LIST")
			fmt.Fprintln(c.out, strings.Repeat("=", 60))
		}
		fmt.Fprintln(c.out, renderTask(v))
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(c.out, "No tasks to show.")
		return
	}

	fmt.Fprintln(c.out, strings.Repeat("=", 60))
	s := c.col.Summary()
	fmt.Fprintf(c.out, "Progress: %d/%d tasks completed\n", s.CompletedTasks, s.TotalTasks)
}

func renderTask(v tasks.View) string {
	mark := " "
	if v.Status == tasks.StatusCompleted {
		mark = "x"
	}

	line := fmt.Sprintf("[%s] #%-3d %-7s %-11s %s", mark, v.ID, v.Priority, v.Status, v.Text)

	var notes []string
	if v.Effort != nil {
		notes = append(notes, v.Effort.Label())
	}
	if v.TargetDate != nil {
		notes = append(notes, fmt.Sprintf("due %s (%s)", v.TargetDate, v.TargetStatus))
	}
	if len(notes) > 0 {
		line += "  (" + strings.Join(notes, ", ") + ")"
	}
	return line
}

func (c *Console) setStatus(args string, status tasks.Status, verb string) {
	id, ok := c.parseID(args)
	if !ok {
		return
	}
	s := string(status)
	v, err := c.col.Update(id, tasks.Update{Status: &s})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "%s: %q\n", verb, v.Text)
}

func (c *Console) edit(args string) {
	idRaw, text, _ := strings.Cut(args, " ")
	id, ok := c.parseID(idRaw)
	if !ok {
		return
	}
	text = strings.Trim(strings.TrimSpace(text), `"'`)
	v, err := c.col.Update(id, tasks.Update{Text: &text})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Updated: %q\n", v.Text)
}

func (c *Console) delete(args string) {
	id, ok := c.parseID(args)
	if !ok {
		return
	}
	removed, err := c.col.Delete(id)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Deleted: %q\n", removed.Text)
}

func (c *Console) clear() {
	count, err := c.col.ClearCompleted()
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if count == 0 {
		fmt.Fprintln(c.out, "No completed tasks to clear.")
		return
	}
	fmt.Fprintf(c.out, "Cleared %d completed task(s).\n", count)
}

func (c *Console) summary() {
	s := c.col.Summary()
	fmt.Fprintf(c.out, "Tasks:     %d total, %d completed\n", s.TotalTasks, s.CompletedTasks)
	fmt.Fprintf(c.out, "Effort:    %s total, %s done, %s remaining\n",
		tasks.Hours(s.TotalEffortHours).Label(),
		tasks.Hours(s.CompletedEffortHours).Label(),
		tasks.Hours(s.RemainingEffortHours).Label())
	fmt.Fprintf(c.out, "Deadlines: %d overdue, %d due soon\n", s.OverdueCount, s.DueSoonCount)
}

func (c *Console) parseID(args string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || id <= 0 {
		fmt.Fprintln(c.out, "Please provide a numeric task id. Example: done 1")
		return 0, false
	}
	return id, true
}
