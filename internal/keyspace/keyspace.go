// Package keyspace maps the store's flat, '/'-delimited key space onto the
// folder hierarchy shown to users. The store itself has no directories: a
// "folder" is a key prefix ending in the separator, and an empty folder is
// represented by a zero-length marker object whose key equals the prefix.
// All functions here are pure.
package keyspace

import "strings"

// Separator is the conventional path delimiter inside object keys.
const Separator = "/"

// DisplayName returns the name rendered for key inside scope. ok is false
// when the key must not appear as a row: the scope's own directory marker,
// or a key that reduces to nothing once the scope prefix is stripped.
//
// This is the sole authority on filename versus structural noise; every
// listing render filters through it. A key that does not start with the
// scope at all is shown unchanged rather than hidden, so inconsistent
// listing data stays visible instead of silently disappearing.
func DisplayName(key, scope string) (name string, ok bool) {
	if scope == "" {
		return key, true
	}
	if key == scope {
		// The folder's own marker object. Hidden even when it has a
		// nonzero size, otherwise every folder would show a spurious
		// same-named entry.
		return "", false
	}
	if !strings.HasPrefix(key, scope) {
		return key, true
	}
	rest := strings.TrimPrefix(key, scope)
	if rest == "" {
		return "", false
	}
	return strings.TrimPrefix(rest, Separator), true
}

// BelongsToScope reports whether key falls under scope. The root scope
// contains everything. Used only as an optimistic filter over the root
// listing while a folder's dedicated listing has not yet arrived.
func BelongsToScope(key, scope string) bool {
	return scope == "" || strings.HasPrefix(key, scope)
}

// Join computes the target key for a file name inside folder. The root
// folder yields the name unchanged.
func Join(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + name
}

// IsFolder reports whether key denotes a folder prefix rather than an
// object: non-empty and ending in the separator.
func IsFolder(key string) bool {
	return key != "" && strings.HasSuffix(key, Separator)
}

// ArchiveName names the zip artifact produced by bundling prefix.
// "docs/" becomes "docs.zip"; the root prefix falls back to "archive.zip".
func ArchiveName(prefix string) string {
	trimmed := strings.TrimSuffix(prefix, Separator)
	if trimmed == "" {
		return "archive.zip"
	}
	return trimmed + ".zip"
}

// BaseName returns the final path segment of key, for naming a downloaded
// file on local disk.
func BaseName(key string) string {
	trimmed := strings.TrimSuffix(key, Separator)
	if idx := strings.LastIndex(trimmed, Separator); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
