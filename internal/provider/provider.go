// Package provider recognizes provider packages and derives their test build tag.
//
// A provider package is one whose import path ends in /pkg/provider/<name>,
// where <name> holds no further path separator. Provider packages ship a mock
// client behind a build constraint such as
//
//	//go:build testing_aws
//
// so their tests must run with -tags testing_<name>.
package provider

import (
	"fmt"
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Defaults for the provider pattern and tag prefix.
const (
	DefaultPattern   = `^.*/pkg/provider/([^/]+)$`
	DefaultTagPrefix = "testing_"
)

// Matcher extracts provider names from package identifiers.
type Matcher struct {
	pattern *regexp.Regexp
	prefix  string
}

// NewMatcher compiles pattern and returns a Matcher that prefixes tags with prefix.
// The pattern must contain exactly one capture group: the provider name.
func NewMatcher(pattern, prefix string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid provider pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("provider pattern %q must have exactly one capture group, has %d", pattern, re.NumSubexp())
	}
	return &Matcher{
		pattern: re,
		prefix:  prefix,
	}, nil
}

// DefaultMatcher returns the Matcher for DefaultPattern and DefaultTagPrefix.
func DefaultMatcher() *Matcher {
	m, err := NewMatcher(DefaultPattern, DefaultTagPrefix)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the source of the compiled pattern.
func (m *Matcher) Pattern() string {
	return m.pattern.String()
}

// Prefix returns the tag prefix.
func (m *Matcher) Prefix() string {
	return m.prefix
}

// Name returns the provider name captured from pkg.
// The second result is false when pkg is not a provider package or the
// captured name is empty.
func (m *Matcher) Name(pkg string) (string, bool) {
	match := m.pattern.FindStringSubmatch(pkg)
	if match == nil || match[1] == "" {
		return "", false
	}
	return match[1], true
}

// Tag returns the build tag for pkg, or false if pkg is not a provider package.
func (m *Matcher) Tag(pkg string) (string, bool) {
	name, ok := m.Name(pkg)
	if !ok {
		return "", false
	}
	// A Caser carries state, so each call gets its own.
	return m.prefix + cases.Lower(language.Und).String(name), true
}
