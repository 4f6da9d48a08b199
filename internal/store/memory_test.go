// File: internal/store/memory_test.go
package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	path := UserDoc("app", "u1", CollectionProfiles, ProfileDocID)

	_, err := s.Get(ctx, path)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, path, Document{"role": "client"}))

	doc, err := s.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "client", doc["role"])
	assert.Equal(t, ProfileDocID, doc[IDField])

	// Set on an existing path replaces the document.
	require.NoError(t, s.Set(ctx, path, Document{"role": "provider"}))
	doc, err = s.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "provider", doc["role"])

	require.NoError(t, s.Delete(ctx, path))
	_, err = s.Get(ctx, path)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent path is not an error.
	assert.NoError(t, s.Delete(ctx, path))
}

func TestMemoryStore_CreateConflict(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	path := UserDoc("app", "u1", CollectionMeta, "reminders-seeded")

	require.NoError(t, s.Create(ctx, path, Document{"seeded_at": "now"}))
	err := s.Create(ctx, path, Document{"seeded_at": "later"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// The losing write must not have replaced the document.
	doc, err := s.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "now", doc["seeded_at"])
}

func TestMemoryStore_AddAndListOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	coll := UserCollection("app", "u1", CollectionVendors)

	docs, err := s.List(ctx, coll)
	require.NoError(t, err)
	assert.Empty(t, docs)

	names := []string{"first", "second", "third"}
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, err := s.Add(ctx, coll, Document{"name": name})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids = append(ids, id)
	}

	docs, err = s.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, doc := range docs {
		assert.Equal(t, names[i], doc["name"])
		assert.Equal(t, ids[i], doc[IDField])
	}

	// Deleting the middle document preserves the order of the rest.
	require.NoError(t, s.Delete(ctx, coll+"/"+ids[1]))
	docs, err = s.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0]["name"])
	assert.Equal(t, "third", docs[1]["name"])
	assert.Equal(t, 2, s.Len(coll))
}

func TestMemoryStore_DocumentsAreIsolatedPerUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Add(ctx, UserCollection("app", "u1", CollectionReminders), Document{"serviceName": "Lawn Mowing"})
	require.NoError(t, err)

	docs, err := s.List(ctx, UserCollection("app", "u2", CollectionReminders))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStore_StoredDocumentIsACopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	path := UserDoc("app", "u1", CollectionProfiles, ProfileDocID)

	original := Document{"role": "client"}
	require.NoError(t, s.Set(ctx, path, original))
	original["role"] = "mutated"

	doc, err := s.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "client", doc["role"])
}
