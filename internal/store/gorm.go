// File: internal/store/gorm.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentRow is the single table backing the SQL store. The full path is
// unique, the parent column holds the collection path for List queries.
type documentRow struct {
	ID        uint           `gorm:"primaryKey"`
	Path      string         `gorm:"uniqueIndex;size:512;not null"`
	Parent    string         `gorm:"index;size:512;not null"`
	Data      datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (documentRow) TableName() string {
	return "documents"
}

// GORMStore implements Store on a relational database through GORM. It gives
// local and self-hosted deployments the same path semantics as Firestore.
type GORMStore struct {
	db *gorm.DB
}

var _ Store = (*GORMStore)(nil)

// NewGORMStore migrates the documents table and returns the store.
func NewGORMStore(db *gorm.DB) (*GORMStore, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("migrating documents table: %w", err)
	}
	return &GORMStore{db: db}, nil
}

func (s *GORMStore) Get(ctx context.Context, path string) (Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sql get %s: %w", path, err)
	}
	return rowToDocument(&row)
}

func (s *GORMStore) Set(ctx context.Context, path string, doc Document) error {
	data, err := json.Marshal(withoutID(doc))
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", path, err)
	}
	row := documentRow{Path: path, Parent: parentOf(path), Data: data}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("sql set %s: %w", path, err)
	}
	return nil
}

func (s *GORMStore) Create(ctx context.Context, path string, doc Document) error {
	data, err := json.Marshal(withoutID(doc))
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", path, err)
	}
	row := documentRow{Path: path, Parent: parentOf(path), Data: data}
	err = s.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("sql create %s: %w", path, err)
	}
	return nil
}

func (s *GORMStore) Add(ctx context.Context, collectionPath string, doc Document) (string, error) {
	id := uuid.NewString()
	if err := s.Create(ctx, collectionPath+"/"+id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (s *GORMStore) List(ctx context.Context, collectionPath string) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("parent = ?", collectionPath).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sql list %s: %w", collectionPath, err)
	}
	docs := make([]Document, 0, len(rows))
	for i := range rows {
		doc, err := rowToDocument(&rows[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs, nil
}

func (s *GORMStore) Delete(ctx context.Context, path string) error {
	// Deleting an absent document is a no-op, matching Firestore semantics.
	err := s.db.WithContext(ctx).Where("path = ?", path).Delete(&documentRow{}).Error
	if err != nil {
		return fmt.Errorf("sql delete %s: %w", path, err)
	}
	return nil
}

func rowToDocument(row *documentRow) (Document, error) {
	var doc Document
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", row.Path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	doc[IDField] = docIDOf(row.Path)
	return doc, nil
}

func parentOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

func docIDOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
