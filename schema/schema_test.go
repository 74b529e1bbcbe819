// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/binaryshapes/mixor/result"
)

type address struct {
	City string
	Zip  string
}

type account struct {
	Email   string
	Age     int
	Address address
}

func TestIssue_String(t *testing.T) {
	t.Parallel()

	t.Run("will render path, code and message", func(t *testing.T) {
		t.Parallel()

		issue := Issue{Path: "/email", Code: "non_empty", Message: "must not be empty"}
		assert.Equal(t, "/email: non_empty: must not be empty", issue.String())
	})

	t.Run("will omit empty parts", func(t *testing.T) {
		t.Parallel()

		if !assert.Equal(t, "non_empty: must not be empty", Issue{Code: "non_empty", Message: "must not be empty"}.String()) {
			return
		}
		assert.Equal(t, "non_empty", Issue{Code: "non_empty"}.String())
	})
}

func TestIssues_Error(t *testing.T) {
	t.Parallel()

	t.Run("will join issues", func(t *testing.T) {
		t.Parallel()

		is := Issues{
			{Path: "/email", Code: "non_empty"},
			{Path: "/age", Code: "min", Message: "must be at least 18"},
		}
		assert.Equal(t, "/email: non_empty; /age: min: must be at least 18", is.Error())
	})

	t.Run("with no issues will say so", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "no issues", Issues{}.Error())
	})
}

func TestAsIssues(t *testing.T) {
	t.Parallel()

	t.Run("will keep issues", func(t *testing.T) {
		t.Parallel()

		is := Issues{{Code: "custom"}}
		assert.Equal(t, is, AsIssues(is))
	})

	t.Run("will wrap foreign errors as one uncoded issue", func(t *testing.T) {
		t.Parallel()

		got := AsIssues(errors.New("disk full"))
		assert.Equal(t, Issues{{Code: "error", Message: "disk full"}}, got)
	})
}

func TestValue_Validate(t *testing.T) {
	t.Parallel()

	t.Run("will apply rule transformations", func(t *testing.T) {
		t.Parallel()

		username := NewValue("username",
			NewRule("trim", func(s string) result.Result[string] {
				return result.Ok(strings.TrimSpace(s))
			}),
			MinLen(3),
		)

		if !assert.Equal(t, "username", username.Name()) {
			return
		}
		if !assert.Len(t, username.Rules(), 2) {
			return
		}

		out, err := username.Validate("  ada  ").Get()
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "ada", out)
	})

	t.Run("will accumulate issues across rules", func(t *testing.T) {
		t.Parallel()

		username := NewValue("username", NonEmpty(), MinLen(3))

		_, err := username.Validate("").Get()

		issues := issuesOf(t, err)
		if !assert.Len(t, issues, 2) {
			return
		}
		if !assert.Equal(t, "non_empty", issues[0].Code) {
			return
		}
		assert.Equal(t, "min_len", issues[1].Code)
	})

	t.Run("if the name is empty will panic", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			NewValue[string]("")
		})
	})
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	newAccountSchema := func() *Schema[account] {
		return NewSchema("account",
			Field("email", func(a account) string { return a.Email }, NonEmpty()),
			Field("age", func(a account) int { return a.Age }, Min(18)),
			Nested("address", func(a account) address { return a.Address }, NewSchema("address",
				Field("city", func(ad address) string { return ad.City }, NonEmpty()),
				Field("zip", func(ad address) string { return ad.Zip }, Matches("zip", `^[0-9]{5}$`)),
			)),
		)
	}

	t.Run("will pass a valid struct through unchanged", func(t *testing.T) {
		t.Parallel()

		in := account{
			Email:   "ada@example.com",
			Age:     36,
			Address: address{City: "London", Zip: "12345"},
		}

		out, err := newAccountSchema().Validate(in).Get()
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, in, out)
	})

	t.Run("will accumulate issues across fields with paths", func(t *testing.T) {
		t.Parallel()

		in := account{
			Email:   "",
			Age:     16,
			Address: address{City: "London", Zip: "12345"},
		}

		_, err := newAccountSchema().Validate(in).Get()

		issues := issuesOf(t, err)
		if !assert.Len(t, issues, 2) {
			return
		}
		if !assert.Equal(t, "/email", issues[0].Path) {
			return
		}
		assert.Equal(t, "/age", issues[1].Path)
	})

	t.Run("will path nested schema issues", func(t *testing.T) {
		t.Parallel()

		in := account{
			Email:   "ada@example.com",
			Age:     36,
			Address: address{City: "", Zip: "xyz"},
		}

		_, err := newAccountSchema().Validate(in).Get()

		issues := issuesOf(t, err)
		if !assert.Len(t, issues, 2) {
			return
		}
		if !assert.Equal(t, "/address/city", issues[0].Path) {
			return
		}
		assert.Equal(t, "/address/zip", issues[1].Path)
	})

	t.Run("will list field names in declaration order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"email", "age", "address"}, newAccountSchema().Fields())
	})

	t.Run("will summarize fields and checks as a signature", func(t *testing.T) {
		t.Parallel()

		s := NewSchema("signup",
			Field("email", func(a account) string { return a.Email }, NonEmpty()),
			Field("age", func(a account) int { return a.Age }, Min(18)),
		)

		assert.Equal(t, []string{
			"email=non_empty:must not be empty",
			"age=min:must be at least 18",
		}, s.Signature())
	})

	t.Run("will distinguish rule parameters in the signature", func(t *testing.T) {
		t.Parallel()

		adults := NewSchema("account",
			Field("age", func(a account) int { return a.Age }, Min(18)),
		)
		drivers := NewSchema("account",
			Field("age", func(a account) int { return a.Age }, Min(16)),
		)

		assert.NotEqual(t, adults.Signature(), drivers.Signature())
	})

	t.Run("if a field name is empty will panic", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			Field("", func(a account) string { return a.Email })
		})
	})

	t.Run("if an accessor is nil will panic", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			Field[account, string]("email", nil)
		})
	})
}
