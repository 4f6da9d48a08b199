// File: internal/platform/elasticsearch/client.go
package elasticsearch

import (
	"net/http"
	"time"

	"github.com/elastic/elastic-transport-go/v8/elastictransport"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"seva_backend/internal/config"
)

// ESClientWrapper wraps the elasticsearch.Client so Wire can disambiguate it
// from other external types. A nil wrapper means the vendor search index is
// disabled and search falls back to the in-memory filter.
type ESClientWrapper struct {
	*elasticsearch.Client
}

// ZapLogger adapts zap.Logger to elastictransport.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

// LogRoundTrip records request-response metrics for every ES call.
func (l *ZapLogger) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	var statusCode int
	if res != nil {
		statusCode = res.StatusCode
	}
	l.logger.Debug("Elasticsearch RoundTrip",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", statusCode),
		zap.Duration("duration", dur),
		zap.Error(err),
	)
	return nil
}

// RequestBodyEnabled makes the client pass a copy of request body to the logger.
func (l *ZapLogger) RequestBodyEnabled() bool { return true }

// ResponseBodyEnabled makes the client pass a copy of response body to the logger.
func (l *ZapLogger) ResponseBodyEnabled() bool { return true }

var _ elastictransport.Logger = (*ZapLogger)(nil)

// NewClient creates an Elasticsearch client wrapper, or (nil, nil) when
// ELASTICSEARCH_URL is unset.
func NewClient(cfg *config.Config, logger *zap.Logger) (*ESClientWrapper, error) {
	if cfg.ElasticsearchURL == "" {
		logger.Info("ELASTICSEARCH_URL not set; vendor search index disabled.")
		return nil, nil
	}

	retryBackoff := func(i int) time.Duration {
		return time.Duration(i) * 100 * time.Millisecond
	}

	esCfg := elasticsearch.Config{
		Addresses:     []string{cfg.ElasticsearchURL},
		Logger:        &ZapLogger{logger: logger.Named("elasticsearch_client")},
		RetryOnStatus: []int{502, 503, 504, 429},
		RetryBackoff:  retryBackoff,
		MaxRetries:    3,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		logger.Error("Failed to create Elasticsearch client", zap.Error(err))
		return nil, err
	}

	logger.Info("Elasticsearch client initialized", zap.String("url", cfg.ElasticsearchURL))
	return &ESClientWrapper{Client: client}, nil
}
