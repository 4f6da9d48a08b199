// File: cmd/server/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"strings"
	"syscall"

	"seva_backend/internal/config"
	"seva_backend/internal/firebase"
	platformElasticsearch "seva_backend/internal/platform/elasticsearch"
	"seva_backend/internal/platform/logger"
	"seva_backend/internal/vendor"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

func main() {
	reindexCmd := flag.NewFlagSet("reindex-vendors", flag.ExitOnError)
	reindexUser := reindexCmd.String("user", "", "User id whose vendors should be reindexed")
	esRefresh := reindexCmd.String("es-refresh", "false", "Elasticsearch refresh policy (true, false, wait_for)")

	if len(os.Args) > 1 && os.Args[1] == "reindex-vendors" {
		reindexCmd.Parse(os.Args[2:])
		if *reindexUser == "" {
			log.Fatal("FATAL: -user is required for reindex-vendors")
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("FATAL: Failed to load configuration for reindex: %v", err)
		}
		appLogger, err := logger.New(cfg)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize logger for reindex: %v", err)
		}

		fbService, err := firebase.NewService(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize Firebase for reindex", zap.Error(err))
		}

		docStore, cleanup, err := provideStore(cfg, fbService, appLogger)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize document store for reindex", zap.Error(err))
		}
		defer cleanup()

		esClient, err := platformElasticsearch.NewClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("FATAL: Failed to initialize Elasticsearch client for reindex", zap.Error(err))
		}
		if esClient == nil {
			appLogger.Fatal("FATAL: Elasticsearch is not configured; set ELASTICSEARCH_URL before reindexing.")
		}

		if err := platformElasticsearch.CreateVendorsIndexIfNotExists(esClient, appLogger); err != nil {
			appLogger.Fatal("FATAL: Failed to create/verify Elasticsearch index before reindex", zap.Error(err))
		}

		vendorRepo := vendor.NewStoreRepository(docStore, cfg.AppID)
		if err := runVendorReindex(vendorRepo, esClient, appLogger, *reindexUser, *esRefresh); err != nil {
			appLogger.Fatal("FATAL: Vendor reindex failed", zap.Error(err))
		}
		appLogger.Info("Vendor reindex completed successfully.")
		return
	}

	// Default: Start server
	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	if server.ESClient != nil {
		if err := platformElasticsearch.CreateVendorsIndexIfNotExists(server.ESClient, server.AppLogger); err != nil {
			server.AppLogger.Error("Failed to create Elasticsearch vendors index.", zap.Error(err))
		}
	} else {
		server.AppLogger.Info("Elasticsearch client not initialized, skipping index creation.")
	}

	go func() {
		if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runVendorReindex rebuilds the search index for one user's vendors with a
// single bulk request.
func runVendorReindex(
	vendorRepo vendor.Repository,
	esClient *platformElasticsearch.ESClientWrapper,
	logger *zap.Logger,
	userID string,
	esRefresh string,
) error {
	logger.Info("Starting vendor reindex...",
		zap.String("userID", userID),
		zap.String("esRefreshPolicy", esRefresh),
	)

	vendors, err := vendorRepo.List(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("failed to list vendors: %w", err)
	}
	if len(vendors) == 0 {
		logger.Info("No vendors to reindex.")
		return nil
	}

	var bulkRequestBody strings.Builder
	for i := range vendors {
		v := &vendors[i]
		docJSON, errDoc := json.Marshal(vendor.ToIndexDocument(userID, v))
		if errDoc != nil {
			return fmt.Errorf("failed to encode vendor %s: %w", v.ID, errDoc)
		}
		action := fmt.Sprintf(`{ "index" : { "_index" : "%s", "_id" : "%s" } }%s`,
			platformElasticsearch.VendorsIndexName, vendor.IndexID(userID, v.ID), "\n")
		bulkRequestBody.WriteString(action)
		bulkRequestBody.Write(docJSON)
		bulkRequestBody.WriteString("\n")
	}

	req := esapi.BulkRequest{
		Body:    strings.NewReader(bulkRequestBody.String()),
		Refresh: esRefresh,
	}
	res, err := req.Do(context.Background(), esClient.Client)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk request returned %s", res.Status())
	}

	var bulkResponse struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string                 `json:"_id"`
				Status int                    `json:"status"`
				Error  map[string]interface{} `json:"error,omitempty"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResponse); err != nil {
		return fmt.Errorf("failed to parse bulk response: %w", err)
	}

	var failed int
	for _, item := range bulkResponse.Items {
		if item.Index.Error != nil {
			logger.Error("Failed to index vendor",
				zap.String("indexID", item.Index.ID),
				zap.Any("error", item.Index.Error),
				zap.Int("status", item.Index.Status),
			)
			failed++
		}
	}

	logger.Info("Vendor reindex finished.",
		zap.Int("vendorsIndexed", len(vendors)-failed),
		zap.Int("vendorsFailed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d vendors failed to index", failed)
	}
	return nil
}
