package config

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"intellenum-generator/internal/analyze"
)

// DefaultsFile is a program-wide defaults declaration kept outside the
// source tree. Type references use the names given in Imports.
type DefaultsFile struct {
	Underlying     string            `yaml:"underlying" toml:"underlying"`
	Error          string            `yaml:"error" toml:"error"`
	Conversions    []string          `yaml:"conversions" toml:"conversions"`
	Customizations []string          `yaml:"customizations" toml:"customizations"`
	Strictness     string            `yaml:"strictness" toml:"strictness"`
	Debug          string            `yaml:"debug" toml:"debug"`
	Imports        map[string]string `yaml:"imports" toml:"imports"`

	path string
}

// LoadDefaultsFile loads a defaults file. Files ending in .toml are TOML,
// everything else is YAML.
func LoadDefaultsFile(path string) (*DefaultsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file %s: %w", path, err)
	}

	var df *DefaultsFile
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		df, err = ParseTOML(data)
	} else {
		df, err = ParseYAML(data)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	df.path = path

	return df, nil
}

// ParseYAML parses YAML data into a DefaultsFile.
func ParseYAML(data []byte) (*DefaultsFile, error) {
	var df DefaultsFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse defaults YAML: %w", err)
	}

	return &df, nil
}

// ParseTOML parses TOML data into a DefaultsFile.
func ParseTOML(data []byte) (*DefaultsFile, error) {
	var df DefaultsFile
	if _, err := toml.Decode(string(data), &df); err != nil {
		return nil, fmt.Errorf("failed to parse defaults TOML: %w", err)
	}

	return &df, nil
}

// Args renders the file as directive arguments, in key order.
func (df *DefaultsFile) Args() []analyze.Arg {
	var args []analyze.Arg

	add := func(key, value string) {
		if value != "" {
			args = append(args, analyze.Arg{Key: key, Value: value})
		}
	}

	add(KeyUnderlying, df.Underlying)
	add(KeyError, df.Error)

	// An explicit empty list means "none", which differs from leaving the
	// axis out.
	if df.Conversions != nil {
		args = append(args, analyze.Arg{Key: KeyConversions, Value: strings.Join(df.Conversions, "|")})
	}

	if df.Customizations != nil {
		args = append(args, analyze.Arg{Key: KeyCustomizations, Value: strings.Join(df.Customizations, "|")})
	}

	add(KeyStrictness, df.Strictness)
	add(KeyDebug, df.Debug)

	return args
}

// Decl presents the file as a package-level declaration carrying a defaults
// directive, so that it goes through ResolveDefaults like any other.
func (df *DefaultsFile) Decl() *analyze.Decl {
	var parts []string
	for _, arg := range df.Args() {
		value := arg.Value
		if strings.ContainsAny(value, " \t\"") {
			value = strconv.Quote(value)
		}

		parts = append(parts, arg.Key+"="+value)
	}

	return &analyze.Decl{
		ID:      analyze.DeclID("defaults-file@" + df.path),
		Name:    filepath.Base(df.path),
		Imports: df.Imports,
		Directives: []analyze.Directive{{
			Name: analyze.DefaultsName,
			Args: strings.Join(parts, " "),
			Pos:  token.Position{Filename: df.path, Line: 1, Column: 1},
		}},
	}
}

// WithDefaultsFile appends the file's declaration to decls. The file is
// always the last declaration, so source directives win conflicts.
func WithDefaultsFile(decls []*analyze.Decl, df *DefaultsFile) []*analyze.Decl {
	if df == nil {
		return decls
	}

	return append(slices.Clone(decls), df.Decl())
}
