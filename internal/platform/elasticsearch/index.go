// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// VendorsIndexName is the index holding per-user vendor documents.
const VendorsIndexName = "seva-vendors"

const vendorsIndexMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "user_id":  { "type": "keyword" },
      "name":     { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
      "slug":     { "type": "keyword" },
      "category": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
      "phone":    { "type": "keyword" },
      "email":    { "type": "keyword" },
      "address":  { "type": "text" }
    }
  }
}`

// CreateVendorsIndexIfNotExists creates the vendors index when absent.
// A nil client is a no-op so callers need not branch on the optional index.
func CreateVendorsIndexIfNotExists(es *ESClientWrapper, logger *zap.Logger) error {
	if es == nil {
		return nil
	}

	res, err := es.Indices.Exists([]string{VendorsIndexName})
	if err != nil {
		logger.Error("Failed to check vendors index existence", zap.Error(err))
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		logger.Debug("Vendors index already exists", zap.String("index", VendorsIndexName))
		return nil
	}

	createRes, err := es.Indices.Create(
		VendorsIndexName,
		es.Indices.Create.WithBody(strings.NewReader(vendorsIndexMapping)),
		es.Indices.Create.WithContext(context.Background()),
	)
	if err != nil {
		logger.Error("Failed to create vendors index", zap.Error(err))
		return err
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		logger.Error("Vendors index creation returned an error", zap.String("status", createRes.Status()))
		return fmt.Errorf("vendors index creation returned %s", createRes.Status())
	}

	logger.Info("Vendors index created", zap.String("index", VendorsIndexName))
	return nil
}
