// File: internal/reminder/repository.go
package reminder

import (
	"context"
	"time"

	"seva_backend/internal/store"
)

// seedMarkerDocID is the meta document recording that the demo set was
// written. It exists so the empty-collection check cannot double-seed.
const seedMarkerDocID = "reminders-seeded"

// Repository defines reminder persistence over the document store.
type Repository interface {
	List(ctx context.Context, userID string) ([]Reminder, error)
	Add(ctx context.Context, userID string, r *Reminder) (string, error)
	Delete(ctx context.Context, userID, reminderID string) error
	// MarkSeeded claims the seed marker with a create-if-absent write and
	// returns store.ErrAlreadyExists when another load claimed it first.
	MarkSeeded(ctx context.Context, userID string) error
}

type storeRepository struct {
	store store.Store
	appID string
}

// NewStoreRepository creates a document-store-backed reminder repository.
func NewStoreRepository(s store.Store, appID string) Repository {
	return &storeRepository{store: s, appID: appID}
}

func (r *storeRepository) collection(userID string) string {
	return store.UserCollection(r.appID, userID, store.CollectionReminders)
}

func (r *storeRepository) List(ctx context.Context, userID string) ([]Reminder, error) {
	docs, err := r.store.List(ctx, r.collection(userID))
	if err != nil {
		return nil, err
	}
	reminders := make([]Reminder, 0, len(docs))
	for _, doc := range docs {
		reminders = append(reminders, FromDocument(doc))
	}
	return reminders, nil
}

func (r *storeRepository) Add(ctx context.Context, userID string, rem *Reminder) (string, error) {
	return r.store.Add(ctx, r.collection(userID), ToDocument(rem))
}

func (r *storeRepository) Delete(ctx context.Context, userID, reminderID string) error {
	return r.store.Delete(ctx, store.UserDoc(r.appID, userID, store.CollectionReminders, reminderID))
}

func (r *storeRepository) MarkSeeded(ctx context.Context, userID string) error {
	path := store.UserDoc(r.appID, userID, store.CollectionMeta, seedMarkerDocID)
	return r.store.Create(ctx, path, store.Document{
		"seeded_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
