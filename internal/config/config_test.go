package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".pkgtest.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	want := &Config{
		Go:              "go",
		Pattern:         "./...",
		Exclude:         []string{"cmd", "cli", "migration", "vendor"},
		ProviderPattern: `^.*/pkg/provider/([^/]+)$`,
		TagPrefix:       "testing_",
		TestFlags:       []string{"-v"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(Default()) = %v", err)
	}
}

func TestDefault_DoesNotShareExclusions(t *testing.T) {
	t.Parallel()
	a := Default()
	a.Exclude[0] = "changed"

	if DefaultExclude[0] != "cmd" {
		t.Fatalf("DefaultExclude was modified through a Config: %v", DefaultExclude)
	}
}

func TestLoad_Minimal(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "keep_going: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.KeepGoing {
		t.Error("KeepGoing = false, want true")
	}
	if cfg.Exclude != nil {
		t.Errorf("Exclude = %v, want nil before defaults", cfg.Exclude)
	}
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "exclude: [cmd\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("error = %q", err)
	}
}

func TestLoadWithDefaults_ExplicitEmptyExclude(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "exclude: []\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if cfg.Exclude == nil || len(cfg.Exclude) != 0 {
		t.Errorf("Exclude = %#v, want explicit empty list", cfg.Exclude)
	}
}

func TestLoadAndValidate_Full(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `go: go1.24
dir: src
pattern: ./pkg/...
exclude:
  - cmd
  - e2e
provider_pattern: '/drivers/([^/]+)$'
tag_prefix: mock_
test_flags: ["-v", "-count=1"]
env:
  GOFLAGS: -mod=mod
keep_going: true
timeout: 10m
`)

	cfg, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	want := &Config{
		Go:              "go1.24",
		Dir:             "src",
		Pattern:         "./pkg/...",
		Exclude:         []string{"cmd", "e2e"},
		ProviderPattern: `/drivers/([^/]+)$`,
		TagPrefix:       "mock_",
		TestFlags:       []string{"-v", "-count=1"},
		Env:             map[string]string{"GOFLAGS": "-mod=mod"},
		KeepGoing:       true,
		Timeout:         "10m",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadAndValidate() mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.TimeoutDuration(); got != 10*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 10m", got)
	}
}

func TestLoadAndValidate_UnknownFieldWarning(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "keep_going: true\nparallel: 4\n")

	_, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", warnings)
	}
	if !strings.Contains(warnings[0], `"parallel"`) || !strings.Contains(warnings[0], "line 2") {
		t.Errorf("warning = %q", warnings[0])
	}
}

func TestLoadAndValidate_SchemaErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{"exclude not a list", "exclude: cmd\n"},
		{"empty exclude item", "exclude: ['']\n"},
		{"keep_going not bool", "keep_going: sometimes\n"},
		{"timeout not a duration", "timeout: soon\n"},
		{"env value not string", "env:\n  A: [1]\n"},
		{"top level list", "- cmd\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := LoadAndValidate(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadAndValidate() error = nil, want schema error")
			}
			if !strings.Contains(err.Error(), "config validation failed") {
				t.Errorf("error = %q, want schema failure", err)
			}
		})
	}
}

func TestLoadAndValidate_SemanticError(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "provider_pattern: '/pkg/provider/[^/]+$'\n")

	_, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if ve.Field != "provider_pattern" {
		t.Errorf("Field = %q, want provider_pattern", ve.Field)
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvGo, "/opt/go/bin/go")

	cfg := Default()
	ApplyEnvironment(cfg)
	if cfg.Go != "/opt/go/bin/go" {
		t.Errorf("Go = %q, want override from %s", cfg.Go, EnvGo)
	}
}

func TestApplyEnvironment_Unset(t *testing.T) {
	t.Setenv(EnvGo, "")

	cfg := Default()
	ApplyEnvironment(cfg)
	if cfg.Go != "go" {
		t.Errorf("Go = %q, want default", cfg.Go)
	}
}

func TestConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"", 0},
		{"0", 0},
		{"90s", 90 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Timeout: tt.timeout}
			if got := cfg.TimeoutDuration(); got != tt.want {
				t.Errorf("TimeoutDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Matcher(t *testing.T) {
	t.Parallel()

	m, err := (&Config{}).Matcher()
	if err != nil {
		t.Fatalf("Matcher() error = %v", err)
	}
	if tag, ok := m.Tag("repo/pkg/provider/AWS"); !ok || tag != "testing_aws" {
		t.Errorf("Tag() = %q, %v", tag, ok)
	}

	m, err = (&Config{ProviderPattern: `/plugins/(\w+)$`, TagPrefix: "fake_"}).Matcher()
	if err != nil {
		t.Fatalf("Matcher() error = %v", err)
	}
	if tag, ok := m.Tag("repo/plugins/S3"); !ok || tag != "fake_s3" {
		t.Errorf("Tag() = %q, %v", tag, ok)
	}
}
