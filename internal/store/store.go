// File: internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
)

// Document is a JSON-like document as persisted in the store. List and Get
// inject the document id under IDField.
type Document map[string]interface{}

// IDField is the key under which the generated document id is surfaced.
const IDField = "id"

// Per-user collections. Every document lives under
// artifacts/{appId}/users/{userId}/{collection}[/{docId}].
const (
	CollectionProfiles  = "profiles"
	CollectionVendors   = "vendors"
	CollectionReminders = "reminders"
	CollectionMeta      = "meta"
)

// ProfileDocID is the fixed document id of a user's profile; the user id is
// already part of the path, so the profile is a singleton per namespace.
const ProfileDocID = "profile"

var (
	// ErrNotFound is returned by Get for an absent document.
	ErrNotFound = errors.New("store: document not found")
	// ErrAlreadyExists is returned by Create when the document exists. It is
	// the store-level create-if-absent signal the seeding guard relies on.
	ErrAlreadyExists = errors.New("store: document already exists")
)

// Store is the document store adapter. Paths are slash-separated; a document
// path has one more segment than its collection path. Delete of an absent
// document is not an error.
type Store interface {
	Get(ctx context.Context, path string) (Document, error)
	Set(ctx context.Context, path string, doc Document) error
	// Create writes the document only if it does not exist yet.
	Create(ctx context.Context, path string, doc Document) error
	// Add appends a document to a collection and returns the generated id.
	Add(ctx context.Context, collectionPath string, doc Document) (string, error)
	List(ctx context.Context, collectionPath string) ([]Document, error)
	Delete(ctx context.Context, path string) error
}

// UserCollection builds the path of a per-user collection.
func UserCollection(appID, userID, collection string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/%s", appID, userID, collection)
}

// UserDoc builds the path of a document inside a per-user collection.
func UserDoc(appID, userID, collection, docID string) string {
	return UserCollection(appID, userID, collection) + "/" + docID
}
