package calc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one recognised expression.
type Entry struct {
	Expr   string `json:"expr"`
	Result string `json:"result"`
	Assign bool   `json:"assign"`
}

// Outcome is the decoded reply: one of Success, Empty or Failure.
type Outcome interface {
	outcome()
}

// Success carries at least one entry.
type Success struct {
	Entries []Entry
}

// Empty is a successful reply without entries.
type Empty struct{}

// Failure is a reply that reported success=false.
type Failure struct {
	Message string
}

func (Success) outcome() {}
func (Empty) outcome()   {}
func (Failure) outcome() {}

// Assignments returns expr→result for every entry flagged assign.
func (s Success) Assignments() map[string]string {
	out := map[string]string{}
	for _, e := range s.Entries {
		if e.Assign {
			out[e.Expr] = e.Result
		}
	}
	return out
}

// wireResponse accepts both {"success": bool} and the {"status": "success"}
// form, and results given as JSON strings or numbers.
type wireResponse struct {
	Success *bool       `json:"success"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    []wireEntry `json:"data"`
}

type wireEntry struct {
	Expr   json.RawMessage `json:"expr"`
	Result json.RawMessage `json:"result"`
	Assign bool            `json:"assign"`
}

// Decode parses a reply body into an Outcome.
func Decode(body []byte) (Outcome, error) {
	var w wireResponse
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	ok := true
	switch {
	case w.Success != nil:
		ok = *w.Success
	case w.Status != "":
		ok = strings.EqualFold(w.Status, "success") || strings.EqualFold(w.Status, "ok")
	}
	if !ok {
		msg := strings.TrimSpace(w.Message)
		if msg == "" {
			msg = "request failed"
		}
		return Failure{Message: msg}, nil
	}
	if len(w.Data) == 0 {
		return Empty{}, nil
	}
	entries := make([]Entry, 0, len(w.Data))
	for i, d := range w.Data {
		expr, err := scalar(d.Expr)
		if err != nil {
			return nil, fmt.Errorf("decode response: data[%d].expr: %w", i, err)
		}
		result, err := scalar(d.Result)
		if err != nil {
			return nil, fmt.Errorf("decode response: data[%d].result: %w", i, err)
		}
		entries = append(entries, Entry{Expr: expr, Result: result, Assign: d.Assign})
	}
	return Success{Entries: entries}, nil
}

func scalar(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return fmt.Sprint(b), nil
	}
	return "", fmt.Errorf("unsupported value %s", raw)
}
