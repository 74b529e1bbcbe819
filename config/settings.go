// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

// Settings holds the process wide settings shared by all components.
// Every field maps to a MIXOR_ prefixed environment variable.
type Settings struct {
	// Debug enables verbose logging of component construction and
	// fault origins.
	Debug bool `config:"MIXOR_DEBUG"`

	// DefaultLanguage is the language used when a message catalog
	// has no entry for the requested language.
	DefaultLanguage string `config:"MIXOR_DEFAULT_LANGUAGE"`

	// MandatoryLanguages lists the languages every message catalog
	// must provide, as a comma separated list.
	MandatoryLanguages []string `config:"MIXOR_MANDATORY_LANGUAGES"`

	// RegistryExport is the default file path registry snapshots
	// are exported to.
	RegistryExport string `config:"MIXOR_REGISTRY_EXPORT"`
}

// LoadSettings reads Settings from the ".env" file in the working
// directory and from the process environment. Environment variables
// override the dotenv file.
func LoadSettings() (Settings, error) {
	s := Settings{
		DefaultLanguage: "en",
		RegistryExport:  "registry.json",
	}

	m, err := Read(
		FromDotEnv(".env"),
		FromEnv("MIXOR_"),
	)
	if err != nil {
		return s, err
	}

	err = m.Unmarshal(&s)
	if err != nil {
		return s, err
	}
	return s, nil
}
