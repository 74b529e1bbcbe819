// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package i18n renders catalog messages as text templates, per language.
//
// A [Catalog] maps languages to message keys to text/template bodies.
// Building a [Translator] compiles every message once and validates
// that all mandatory languages are present. Lookups for a language
// without the requested key fall back to the default language:
//
//	t, err := i18n.New(i18n.Catalog{
//		"en": {"greeting": "hello, {{ .Name }}"},
//		"es": {"greeting": "hola, {{ .Name }}"},
//	})
//	if err != nil {
//		return err
//	}
//
//	msg, err := t.T("es", "greeting", map[string]string{"Name": "Ada"})
package i18n

import (
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/binaryshapes/mixor/config"
	"github.com/binaryshapes/mixor/fault"
)

var (
	// ErrMissingLanguage is returned by New when the catalog does not
	// carry every mandatory language.
	ErrMissingLanguage = fault.New("i18n", "missing_language", "")

	// ErrUnknownKey is returned by T when neither the requested
	// language nor the default language carries the key.
	ErrUnknownKey = fault.New("i18n", "unknown_key", "")
)

// Catalog maps languages to message keys to text/template bodies.
type Catalog map[string]map[string]string

// MessageParseError occurs when a catalog message fails to parse as a
// text/template.
type MessageParseError struct {
	Language string
	Key      string
	Cause    error
}

// Error implements the error interface.
func (e MessageParseError) Error() string {
	return fmt.Sprintf("failed to parse message %q (%s): %s", e.Key, e.Language, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e MessageParseError) Unwrap() error {
	return e.Cause
}

// MessageExecError occurs when a message template fails to execute
// against the given data.
type MessageExecError struct {
	Language string
	Key      string
	Cause    error
}

// Error implements the error interface.
func (e MessageExecError) Error() string {
	return fmt.Sprintf("failed to exec message %q (%s): %s", e.Key, e.Language, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e MessageExecError) Unwrap() error {
	return e.Cause
}

type options struct {
	defaultLanguage string
	mandatory       []string
}

// Option configures a Translator.
type Option func(*options)

// DefaultLanguage sets the language lookups fall back to. It defaults
// to "en".
func DefaultLanguage(lang string) Option {
	return func(o *options) {
		o.defaultLanguage = lang
	}
}

// MandatoryLanguages lists languages the catalog must carry. New fails
// with [ErrMissingLanguage] when any of them are absent.
func MandatoryLanguages(langs ...string) Option {
	return func(o *options) {
		o.mandatory = append(o.mandatory, langs...)
	}
}

// FromSettings derives the default and mandatory languages from the
// process wide settings.
func FromSettings(s config.Settings) Option {
	return func(o *options) {
		if s.DefaultLanguage != "" {
			o.defaultLanguage = s.DefaultLanguage
		}
		o.mandatory = append(o.mandatory, s.MandatoryLanguages...)
	}
}

// Translator renders catalog messages.
type Translator struct {
	def      string
	messages map[string]map[string]*template.Template
}

// New compiles the given catalog into a Translator.
func New(catalog Catalog, opts ...Option) (*Translator, error) {
	o := options{
		defaultLanguage: "en",
	}
	for _, opt := range opts {
		opt(&o)
	}

	var gaps []string
	for _, lang := range o.mandatory {
		if _, ok := catalog[lang]; !ok && !slices.Contains(gaps, lang) {
			gaps = append(gaps, lang)
		}
	}
	if len(gaps) > 0 {
		slices.Sort(gaps)
		return nil, fault.Newf(
			"i18n",
			"missing_language",
			"catalog is missing mandatory languages: %s",
			strings.Join(gaps, ", "),
		)
	}

	messages := make(map[string]map[string]*template.Template, len(catalog))
	for lang, entries := range catalog {
		compiled := make(map[string]*template.Template, len(entries))
		for key, text := range entries {
			tmpl, err := template.New(lang + "/" + key).Parse(text)
			if err != nil {
				return nil, MessageParseError{Language: lang, Key: key, Cause: err}
			}
			compiled[key] = tmpl
		}
		messages[lang] = compiled
	}

	return &Translator{
		def:      o.defaultLanguage,
		messages: messages,
	}, nil
}

// DefaultLanguage returns the language lookups fall back to.
func (t *Translator) DefaultLanguage() string {
	return t.def
}

// Languages returns the catalog languages in sorted order.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.messages))
	for lang := range t.messages {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// T renders the message for key in the given language, falling back to
// the default language when the key is absent.
func (t *Translator) T(lang, key string, data any) (string, error) {
	tmpl, served, ok := t.lookup(lang, key)
	if !ok {
		return "", fault.Newf(
			"i18n",
			"unknown_key",
			"no message for key %q in %q or the default %q",
			key, lang, t.def,
		)
	}

	var sb strings.Builder
	err := tmpl.Execute(&sb, data)
	if err != nil {
		return "", MessageExecError{Language: served, Key: key, Cause: err}
	}
	return sb.String(), nil
}

func (t *Translator) lookup(lang, key string) (*template.Template, string, bool) {
	if entries, ok := t.messages[lang]; ok {
		if tmpl, ok := entries[key]; ok {
			return tmpl, lang, true
		}
	}

	entries, ok := t.messages[t.def]
	if !ok {
		return nil, "", false
	}
	tmpl, ok := entries[key]
	return tmpl, t.def, ok
}
