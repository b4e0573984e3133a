// Package models contains the wire types shared by the backend API and the
// client engine.
package models

import "time"

// Operation selects which transfer a TransferAuthorization permits.
type Operation string

const (
	OperationRead  Operation = "read"
	OperationWrite Operation = "write"
)

// ObjectRecord describes one stored object as returned by a listing.
// Records are never mutated; a re-listing supersedes them wholesale.
type ObjectRecord struct {
	Key          string    `json:"Key"`
	Size         int64     `json:"Size"`
	LastModified time.Time `json:"lastModified"`
}

// Listing is the contents of one folder prefix: the objects directly under
// it plus its immediate child prefixes. The scope's own directory marker,
// when the store holds one, stays in Files and is hidden at render time.
type Listing struct {
	Files   []ObjectRecord `json:"files"`
	Folders []string       `json:"folders"`
}

// TransferAuthorization is a short-lived permission to perform exactly one
// operation on exactly one key, carried as a presigned URL. It is requested
// fresh for every transfer and never reused across keys or operations.
type TransferAuthorization struct {
	Key       string    `json:"key"`
	Op        Operation `json:"op"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
