package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// NewMux wires the JSON API routes onto a fresh ServeMux. The caller wraps it
// with CORS and serves it.
func NewMux(c *Collection) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/todos", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ListTasksHandler(c)(w, r)
		case http.MethodPost:
			CreateTaskHandler(c)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Registered alongside the catch-all id route; the longer pattern wins.
	mux.HandleFunc("/api/todos/clear-completed", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			ClearCompletedHandler(c)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/todos/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			UpdateTaskHandler(c)(w, r)
		case http.MethodDelete:
			DeleteTaskHandler(c)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/statuses", StatusesHandler())
	mux.HandleFunc("/api/efforts", EffortsHandler())
	mux.HandleFunc("/api/summary", SummaryHandler(c))

	return mux
}

func ListTasksHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := ParseFilter(r.URL.Query().Get("filter"))
		if err != nil {
			writeError(w, err)
			return
		}

		// Collect so the response is a JSON array even when empty.
		result := []View{}
		for v := range c.List(filter) {
			result = append(result, v)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func CreateTaskHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Task       string `json:"task"`
			Priority   string `json:"priority"`
			Effort     string `json:"effort"`
			TargetDate string `json:"target_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, errors.New("invalid json"))
			return
		}

		v, err := c.Add(body.Task, Priority(body.Priority), body.Effort, body.TargetDate)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func UpdateTaskHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r.URL.Path)
		if err != nil {
			writeError(w, err)
			return
		}

		// Field presence matters: an absent field is left untouched while an
		// explicit null clears effort/target_date, so decode keys first.
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, errors.New("invalid json"))
			return
		}

		var u Update
		if u.Text, err = stringField(body, "task"); err != nil {
			writeError(w, err)
			return
		}
		if u.Priority, err = stringField(body, "priority"); err != nil {
			writeError(w, err)
			return
		}
		if u.Status, err = stringField(body, "status"); err != nil {
			writeError(w, err)
			return
		}
		if u.Effort, err = stringField(body, "effort"); err != nil {
			writeError(w, err)
			return
		}
		if u.TargetDate, err = stringField(body, "target_date"); err != nil {
			writeError(w, err)
			return
		}

		v, err := c.Update(id, u)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

func DeleteTaskHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromPath(r.URL.Path)
		if err != nil {
			writeError(w, err)
			return
		}

		removed, err := c.Delete(id)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Todo deleted",
			"todo":    removed,
		})
	}
}

func ClearCompletedHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := c.ClearCompleted()
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": fmt.Sprintf("Cleared %d completed todo(s)", count),
			"count":   count,
		})
	}
}

func SummaryHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(c.Summary())
	}
}

func StatusesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ValidStatuses())
	}
}

func EffortsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(EffortTokens())
	}
}

func idFromPath(path string) (int, error) {
	raw := strings.TrimPrefix(path, "/api/todos/")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %q", raw)
	}
	return id, nil
}

// stringField extracts an optional string field from a decoded body. A missing
// key returns nil; an explicit null returns a pointer to "", which clears the
// field downstream.
func stringField(body map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := body[key]
	if !ok {
		return nil, nil
	}
	if string(raw) == "null" {
		empty := ""
		return &empty, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("field %q must be a string", key)
	}
	return &s, nil
}

// writeError maps a failure to its HTTP status: NotFound to 404, everything
// else in the validation taxonomy to 400.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, ErrNotFound) {
		code = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
