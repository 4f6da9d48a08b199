// File: internal/store/firestore.go
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store on Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
	logger *zap.Logger
}

var _ Store = (*FirestoreStore)(nil)

// NewFirestoreStore wraps an existing Firestore client.
func NewFirestoreStore(client *firestore.Client, logger *zap.Logger) *FirestoreStore {
	return &FirestoreStore{client: client, logger: logger}
}

func (s *FirestoreStore) Get(ctx context.Context, path string) (Document, error) {
	snap, err := s.client.Doc(path).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore get %s: %w", path, err)
	}
	doc := Document(snap.Data())
	doc[IDField] = snap.Ref.ID
	return doc, nil
}

func (s *FirestoreStore) Set(ctx context.Context, path string, doc Document) error {
	if _, err := s.client.Doc(path).Set(ctx, withoutID(doc)); err != nil {
		return fmt.Errorf("firestore set %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Create(ctx context.Context, path string, doc Document) error {
	if _, err := s.client.Doc(path).Create(ctx, withoutID(doc)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrAlreadyExists
		}
		return fmt.Errorf("firestore create %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Add(ctx context.Context, collectionPath string, doc Document) (string, error) {
	ref, _, err := s.client.Collection(collectionPath).Add(ctx, withoutID(doc))
	if err != nil {
		return "", fmt.Errorf("firestore add to %s: %w", collectionPath, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) List(ctx context.Context, collectionPath string) ([]Document, error) {
	var docs []Document
	iter := s.client.Collection(collectionPath).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore list %s: %w", collectionPath, err)
		}
		doc := Document(snap.Data())
		doc[IDField] = snap.Ref.ID
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	// Firestore deletes are idempotent; deleting an absent document succeeds.
	if _, err := s.client.Doc(path).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s: %w", path, err)
	}
	return nil
}

// withoutID strips the injected id field before persisting; the id lives in
// the document path, not the payload.
func withoutID(doc Document) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}
