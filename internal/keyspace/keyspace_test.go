package keyspace

import (
	"strings"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		scope  string
		want   string
		wantOK bool
	}{
		{"root scope shows key unchanged", "readme.txt", "", "readme.txt", true},
		{"root scope shows nested key unchanged", "docs/guide.pdf", "", "docs/guide.pdf", true},
		{"marker object is hidden", "docs/", "docs/", "", false},
		{"prefix stripped", "docs/guide.pdf", "docs/", "guide.pdf", true},
		{"nested remainder kept", "docs/sub/a.txt", "docs/", "sub/a.txt", true},
		{"key outside scope shown unchanged", "other.txt", "docs/", "other.txt", true},
		{"single leading separator stripped", "docs/file", "docs", "file", true},
		{"empty remainder hidden", "docs", "docs", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DisplayName(tt.key, tt.scope)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DisplayName(%q, %q) = (%q, %v), want (%q, %v)",
					tt.key, tt.scope, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDisplayNameNeverLeadingSeparator(t *testing.T) {
	keys := []string{"docs/a.txt", "docs/sub/b.txt", "docs/", "docs"}
	scopes := []string{"", "docs/", "docs"}
	for _, k := range keys {
		for _, s := range scopes {
			if name, ok := DisplayName(k, s); ok && s != "" && strings.HasPrefix(name, Separator) {
				t.Errorf("DisplayName(%q, %q) = %q has a leading separator", k, s, name)
			}
		}
	}
}

func TestBelongsToScope(t *testing.T) {
	tests := []struct {
		key   string
		scope string
		want  bool
	}{
		{"anything", "", true},
		{"docs/a.txt", "docs/", true},
		{"docs/", "docs/", true},
		{"other/a.txt", "docs/", false},
	}
	for _, tt := range tests {
		if got := BelongsToScope(tt.key, tt.scope); got != tt.want {
			t.Errorf("BelongsToScope(%q, %q) = %v, want %v", tt.key, tt.scope, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("", "a.txt"); got != "a.txt" {
		t.Errorf("Join root = %q, want a.txt", got)
	}
	if got := Join("docs/", "a.txt"); got != "docs/a.txt" {
		t.Errorf("Join folder = %q, want docs/a.txt", got)
	}
}

func TestIsFolder(t *testing.T) {
	if !IsFolder("docs/") {
		t.Error("docs/ should be a folder")
	}
	if IsFolder("docs") || IsFolder("") {
		t.Error("docs and empty string are not folders")
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"docs/", "docs.zip"},
		{"a/b/", "a/b.zip"},
		{"", "archive.zip"},
	}
	for _, tt := range tests {
		if got := ArchiveName(tt.prefix); got != tt.want {
			t.Errorf("ArchiveName(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"docs/guide.pdf", "guide.pdf"},
		{"guide.pdf", "guide.pdf"},
		{"docs/", "docs"},
		{"a/b/c.txt", "c.txt"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.key); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
