// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"

	"seva_backend/internal/common"
	"seva_backend/internal/shared"
	"seva_backend/internal/store"
)

// Repository defines profile persistence over the document store.
type Repository interface {
	Get(ctx context.Context, userID string) (*shared.Profile, error)
	// Create fails with common.ErrConflict when the profile already exists;
	// a profile is created exactly once, on first role selection.
	Create(ctx context.Context, p *shared.Profile) error
	// Replace writes the full document; settings updates are replace-on-write.
	Replace(ctx context.Context, p *shared.Profile) error
}

type storeRepository struct {
	store store.Store
	appID string
}

// NewStoreRepository creates a document-store-backed profile repository.
func NewStoreRepository(s store.Store, appID string) Repository {
	return &storeRepository{store: s, appID: appID}
}

func (r *storeRepository) path(userID string) string {
	return store.UserDoc(r.appID, userID, store.CollectionProfiles, store.ProfileDocID)
}

func (r *storeRepository) Get(ctx context.Context, userID string) (*shared.Profile, error) {
	doc, err := r.store.Get(ctx, r.path(userID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, common.ErrNotFound.WithDetails("No profile exists for this user.")
		}
		return nil, err
	}
	return FromDocument(doc), nil
}

func (r *storeRepository) Create(ctx context.Context, p *shared.Profile) error {
	err := r.store.Create(ctx, r.path(p.UserID), ToDocument(p))
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return common.ErrConflict.WithDetails("A profile already exists for this user.")
		}
		return err
	}
	return nil
}

func (r *storeRepository) Replace(ctx context.Context, p *shared.Profile) error {
	return r.store.Set(ctx, r.path(p.UserID), ToDocument(p))
}
