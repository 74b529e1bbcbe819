// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides very easy to use and extensible configuration
// management capabilities.
//
// Configuration is read from one or more [Source]s into a single merged
// view which can then be unmarshalled into user defined structs:
//
//	type MyConfig struct {
//		Addr    string        `config:"addr"`
//		Timeout time.Duration `config:"timeout"`
//	}
//
//	m, err := config.Read(
//		config.FromYaml(config.NewFileReader(os.DirFS("."), "config.yaml")),
//		config.FromEnv("MYAPP_"),
//	)
//	if err != nil {
//		return err
//	}
//
//	var cfg MyConfig
//	err = m.Unmarshal(&cfg)
//
// Sources are applied in the order given to [Read], so later sources
// override earlier ones. This makes layering defaults, files and
// environment variables trivial.
//
// Any [Source] reading from an io.Reader can be combined with
// [RenderTextTemplate] to substitute values into the raw config before
// it is parsed, for example to inject environment variables into a
// YAML file.
package config
