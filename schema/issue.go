// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"errors"
	"strings"
)

// Issue describes one validation failure.
type Issue struct {
	// Path locates the failing value as a JSON pointer, e.g.
	// "/address/city". It is empty for the root value.
	Path string `json:"path,omitempty"`

	// Code identifies the failing rule, e.g. "min_len".
	Code string `json:"code"`

	// Message is human readable context.
	Message string `json:"message,omitempty"`
}

// String renders the issue as "path: code: message", omitting empty
// parts.
func (i Issue) String() string {
	parts := make([]string, 0, 3)
	if i.Path != "" {
		parts = append(parts, i.Path)
	}
	parts = append(parts, i.Code)
	if i.Message != "" {
		parts = append(parts, i.Message)
	}
	return strings.Join(parts, ": ")
}

// Issues is the accumulated failure set of a validation pass. It
// implements error so results can carry it.
type Issues []Issue

// Error implements the error interface.
func (is Issues) Error() string {
	if len(is) == 0 {
		return "no issues"
	}

	parts := make([]string, len(is))
	for i, issue := range is {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// AsIssues extracts the issues carried by err. Errors from outside the
// rule layer become a single uncoded issue.
func AsIssues(err error) Issues {
	var is Issues
	if errors.As(err, &is) {
		return is
	}
	return Issues{{Code: "error", Message: err.Error()}}
}

// at rewrites every issue path under prefix.
func at(prefix string, issues Issues) Issues {
	out := make(Issues, len(issues))
	for i, issue := range issues {
		issue.Path = prefix + issue.Path
		out[i] = issue
	}
	return out
}
