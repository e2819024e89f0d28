package models

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationErrors aggregates multiple validation failures.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// AddMessage records a validation error with a custom message.
func (v *ValidationErrors) AddMessage(field, message string) {
	if message == "" {
		return
	}
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any failures were recorded.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "no validation errors"
	}
	messages := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		messages = append(messages, e.Error())
	}
	return strings.Join(messages, "; ")
}

// Validate checks a historical event before it is stored.
func (e HistoricalEvent) Validate() error {
	var errs ValidationErrors
	if e.Title == "" {
		errs.AddMessage("title", "title is required")
	}
	if !ValidTrack(e.Track) {
		errs.AddMessage("track", fmt.Sprintf("track must be %q or %q", TrackChina, TrackWorld))
	}
	if errs.HasErrors() {
		return &errs
	}
	return nil
}

// Validate checks an AI provider record.
func (p AIProvider) Validate() error {
	var errs ValidationErrors
	if p.Name == "" {
		errs.AddMessage("name", "name is required")
	}
	if p.BaseURL != "" && !strings.HasPrefix(p.BaseURL, "http") {
		errs.AddMessage("base_url", "base_url must be an http(s) URL")
	}
	if errs.HasErrors() {
		return &errs
	}
	return nil
}
