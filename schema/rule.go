// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"errors"

	"github.com/binaryshapes/mixor/result"
)

// Rule is a named check over T. A rule may transform the value it
// accepts, so checks thread their outputs forward when composed.
type Rule[T any] struct {
	name    string
	message string
	check   func(T) result.Result[T]
}

// NewRule names a check. When the check fails with a plain error the
// rule lifts it into a single [Issue] coded with the rule name; errors
// already carrying [Issues] pass through untouched.
func NewRule[T any](name string, check func(T) result.Result[T]) Rule[T] {
	if name == "" {
		panic("schema: empty rule name")
	}
	if check == nil {
		panic("schema: nil rule check")
	}
	return Rule[T]{name: name, check: check}
}

// Ensure builds a rule from a plain predicate. Values failing pred get
// a single issue coded with the rule name.
func Ensure[T any](name, message string, pred func(T) bool) Rule[T] {
	r := NewRule(name, func(v T) result.Result[T] {
		if pred(v) {
			return result.Ok(v)
		}
		return result.Err[T](Issues{{Code: name, Message: message}})
	})
	r.message = message
	return r
}

// Name returns the rule's name.
func (r Rule[T]) Name() string { return r.name }

// Message returns the fixed failure message for rules built with
// [Ensure]. Rules built with [NewRule] raise messages from their
// check, so Message returns "".
func (r Rule[T]) Message() string { return r.message }

// Check returns the raw check as given to [NewRule], before the issue
// normalization [Rule.Apply] adds.
func (r Rule[T]) Check() func(T) result.Result[T] { return r.check }

// Apply runs the rule. A failing apply always carries [Issues].
func (r Rule[T]) Apply(v T) result.Result[T] {
	out, err := r.check(v).Get()
	if err == nil {
		return result.Ok(out)
	}

	var is Issues
	if !errors.As(err, &is) {
		is = Issues{{Code: r.name, Message: err.Error()}}
	}
	return result.Err[T](is)
}

// All applies every rule in order, threading transformed values
// forward. Failing rules do not stop the pass: their issues accumulate
// and later rules check the last good value.
func All[T any](rules ...Rule[T]) Rule[T] {
	return NewRule("all", func(v T) result.Result[T] {
		var issues Issues

		current := v
		for _, rule := range rules {
			out, err := rule.Apply(current).Get()
			if err != nil {
				issues = append(issues, AsIssues(err)...)
				continue
			}
			current = out
		}

		if len(issues) > 0 {
			return result.Err[T](issues)
		}
		return result.Ok(current)
	})
}

// Any succeeds with the first rule that accepts the value. When every
// rule fails their issues accumulate; with no rules there is nothing
// to satisfy, so Any fails.
func Any[T any](rules ...Rule[T]) Rule[T] {
	return NewRule("any", func(v T) result.Result[T] {
		if len(rules) == 0 {
			return result.Err[T](Issues{{Code: "any", Message: "no rule to satisfy"}})
		}

		var issues Issues
		for _, rule := range rules {
			out, err := rule.Apply(v).Get()
			if err == nil {
				return result.Ok(out)
			}
			issues = append(issues, AsIssues(err)...)
		}
		return result.Err[T](issues)
	})
}

// Not inverts a rule: it passes the input through when rule rejects it
// and fails with an issue coded name when rule accepts it.
func Not[T any](name string, rule Rule[T]) Rule[T] {
	return NewRule(name, func(v T) result.Result[T] {
		if _, err := rule.Apply(v).Get(); err != nil {
			return result.Ok(v)
		}
		return result.Err[T](Issues{{Code: name, Message: "value satisfies " + rule.Name()}})
	})
}
