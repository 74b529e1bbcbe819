// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/binaryshapes/mixor"
	"github.com/binaryshapes/mixor/config"
	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/i18n"
	"github.com/binaryshapes/mixor/registry"
	"github.com/binaryshapes/mixor/schema"
)

type signup struct {
	Email    string
	Password string
	Age      int
}

var messages = i18n.Catalog{
	"en": {
		"non_empty": "must not be empty",
		"min_len":   "is too short",
		"min":       "is below the allowed minimum",
		"email":     "is not a valid email address",
	},
	"es": {
		"non_empty": "no puede estar vacio",
		"min_len":   "es demasiado corto",
		"min":       "es menor que el minimo permitido",
		"email":     "no es una direccion de correo valida",
	},
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		slog.Error("failed to load settings", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if settings.Debug {
		fault.SetDebugLogger(slog.Default())
	}

	translator, err := i18n.New(messages, i18n.FromSettings(settings))
	if err != nil {
		slog.Error("failed to load message catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	email := mixor.DefineValue("email",
		mixor.DefineRule(schema.NonEmpty()),
		mixor.DefineRule(schema.Matches("email", `^[^@\s]+@[^@\s]+$`)),
	)

	form := mixor.DefineSchema(schema.NewSchema("signup",
		schema.Field("email", func(s signup) string { return s.Email }, schema.NonEmpty()),
		schema.Field("password", func(s signup) string { return s.Password }, schema.MinLen(8)),
		schema.Field("age", func(s signup) int { return s.Age }, schema.Min(18)),
	))

	// The value validates single fields, the schema whole structs.
	_, emailErr := email.Validate("not an email").Get()
	report(translator, "es", emailErr)

	_, formErr := form.Validate(signup{Email: "ada@mail.io", Password: "hunter2", Age: 17}).Get()
	report(translator, "en", formErr)

	// Every definition above landed in the shared catalog.
	if err := registry.Default().ExportFile(settings.RegistryExport); err != nil {
		slog.Error("failed to export the catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println("catalog exported to", settings.RegistryExport)
}

func report(tr *i18n.Translator, lang string, err error) {
	if err == nil {
		fmt.Println("valid")
		return
	}

	for _, issue := range schema.AsIssues(err) {
		msg, terr := tr.T(lang, issue.Code, nil)
		if terr != nil {
			msg = issue.Message
		}
		if issue.Path == "" {
			fmt.Println(msg)
			continue
		}
		fmt.Printf("%s %s\n", issue.Path, msg)
	}
}
