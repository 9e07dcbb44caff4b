package mealplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParseFailurePrefix starts the message reported when model output cannot be
// read as a plan.
const ParseFailurePrefix = "AI output was received but failed to parse as JSON. Raw output starts: "

// previewLength is how many characters of the raw output a failure carries.
const previewLength = 300

var (
	errNoObject    = errors.New("could not find a JSON object in the response")
	errMissingPlan = errors.New("response has no plan array")
)

// Day is one day of a generated meal plan.
type Day struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snack     string `json:"snack"`
}

// Result is the outcome of reading a plan out of model output. Exactly one of
// Plan (on success) or Message and Err (on failure) is set.
type Result struct {
	Plan    []Day
	Message string
	Err     error
}

// OK reports whether a plan was extracted.
func (r Result) OK() bool {
	return r.Err == nil
}

// Parse extracts the plan from free-form model output. The text between the
// first '{' and the last '}' must decode to an object with a "plan" array.
// Any other input yields a failed Result; Parse never panics.
func Parse(raw string) Result {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || start > end {
		return failure(raw, errNoObject)
	}

	var envelope struct {
		Plan json.RawMessage `json:"plan"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &envelope); err != nil {
		return failure(raw, fmt.Errorf("invalid JSON: %w", err))
	}

	trimmed := strings.TrimSpace(string(envelope.Plan))
	if !strings.HasPrefix(trimmed, "[") {
		return failure(raw, errMissingPlan)
	}

	var days []Day
	if err := json.Unmarshal(envelope.Plan, &days); err != nil {
		return failure(raw, fmt.Errorf("invalid plan entry: %w", err))
	}
	if days == nil {
		days = []Day{}
	}
	return Result{Plan: days}
}

func failure(raw string, err error) Result {
	return Result{
		Message: ParseFailurePrefix + preview(raw) + "...",
		Err:     err,
	}
}

// preview returns the first previewLength characters of s without splitting
// a multi-byte character.
func preview(s string) string {
	count := 0
	for i := range s {
		if count == previewLength {
			return s[:i]
		}
		count++
	}
	return s
}
