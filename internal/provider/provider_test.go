package provider

import (
	"strings"
	"testing"
)

func TestMatcher_Tag(t *testing.T) {
	t.Parallel()
	m := DefaultMatcher()

	tests := []struct {
		pkg     string
		wantTag string
		wantOK  bool
	}{
		{"repo/pkg/provider/aws", "testing_aws", true},
		{"github.com/ksctl/ksctl/pkg/provider/civo", "testing_civo", true},
		{"repo/pkg/provider/Azure", "testing_azure", true},
		{"repo/pkg/provider/LOCAL", "testing_local", true},
		{"repo/internal/x/pkg/provider/k3s", "testing_k3s", true},
		{"repo/pkg/provider/aws/types", "", false},
		{"repo/pkg/provider", "", false},
		{"repo/pkg/provider/", "", false},
		{"repo/pkg/providers/aws", "", false},
		{"repo/pkg/foo", "", false},
		{"pkg/provider/aws", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			t.Parallel()
			tag, ok := m.Tag(tt.pkg)
			if ok != tt.wantOK {
				t.Fatalf("Tag(%q) ok = %v, want %v", tt.pkg, ok, tt.wantOK)
			}
			if tag != tt.wantTag {
				t.Errorf("Tag(%q) = %q, want %q", tt.pkg, tag, tt.wantTag)
			}
		})
	}
}

func TestMatcher_Name(t *testing.T) {
	t.Parallel()
	m := DefaultMatcher()

	name, ok := m.Name("repo/pkg/provider/AWS")
	if !ok || name != "AWS" {
		t.Errorf("Name() = %q, %v; want %q, true (case preserved)", name, ok, "AWS")
	}
}

// Tags are always testing_ followed by the lowercased segment, and only for
// identifiers whose last segment follows /pkg/provider/.
func TestMatcher_TagProperty(t *testing.T) {
	t.Parallel()
	m := DefaultMatcher()
	prefixes := []string{"repo", "github.com/org/repo", "a/b/c"}
	segments := []string{"aws", "Civo", "GCP", "local-store", "k8s_v2", "Ünïcode"}

	for _, p := range prefixes {
		for _, s := range segments {
			pkg := p + "/pkg/provider/" + s
			tag, ok := m.Tag(pkg)
			if !ok {
				t.Errorf("Tag(%q) not matched", pkg)
				continue
			}
			if want := "testing_" + strings.ToLower(s); tag != want {
				t.Errorf("Tag(%q) = %q, want %q", pkg, tag, want)
			}
			if _, ok := m.Tag(pkg + "/sub"); ok {
				t.Errorf("Tag(%q) matched a nested package", pkg+"/sub")
			}
		}
	}
}

func TestNewMatcher_CustomPrefix(t *testing.T) {
	t.Parallel()
	m, err := NewMatcher(`/drivers/([^/]+)$`, "mock_")
	if err != nil {
		t.Fatalf("NewMatcher() error = %v", err)
	}

	tag, ok := m.Tag("repo/drivers/Postgres")
	if !ok || tag != "mock_postgres" {
		t.Errorf("Tag() = %q, %v; want %q, true", tag, ok, "mock_postgres")
	}
	if m.Prefix() != "mock_" {
		t.Errorf("Prefix() = %q, want %q", m.Prefix(), "mock_")
	}
	if m.Pattern() != `/drivers/([^/]+)$` {
		t.Errorf("Pattern() = %q", m.Pattern())
	}
}

func TestNewMatcher_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern string
		wantErr string
	}{
		{"does not compile", `([`, "invalid provider pattern"},
		{"no group", `/pkg/provider/[^/]+$`, "exactly one capture group, has 0"},
		{"two groups", `/(pkg)/provider/([^/]+)$`, "exactly one capture group, has 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewMatcher(tt.pattern, DefaultTagPrefix)
			if err == nil {
				t.Fatal("NewMatcher() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantErr)
			}
		})
	}
}
