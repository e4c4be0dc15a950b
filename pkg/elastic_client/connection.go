package elastic_client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/util"
)

var Client *elasticsearch.Client
var bulkIndexer esutil.BulkIndexer

func Connect(required bool) error {
	env := util.GetEnvironmentVariables()
	address := env["RAILRESCHED_ELASTICSEARCH_ADDRESS"]

	if address == "" && !required {
		log.Info().Msg("Skipping Elasticsearch setup")
		return nil
	} else if address == "" && required {
		log.Fatal().Msg("Elasticsearch configuration not set")
	}

	tp := http.DefaultTransport.(*http.Transport).Clone()
	if env["RAILRESCHED_ELASTICSEARCH_INSECURE"] == "YES" {
		tp.TLSClientConfig.InsecureSkipVerify = true
	}

	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{address},
		Username:  env["RAILRESCHED_ELASTICSEARCH_USERNAME"],
		Password:  env["RAILRESCHED_ELASTICSEARCH_PASSWORD"],
		Transport: tp,

		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		MaxRetries: 5,
	})
	if err != nil {
		return err
	}

	if _, err = es.Info(); err != nil {
		return err
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        es,
		FlushInterval: 15 * time.Second,
	})
	if err != nil {
		return err
	}

	Client = es
	bulkIndexer = indexer

	log.Info().Msgf("Elasticsearch client setup for %s", address)

	return nil
}

func Configured() bool {
	return Client != nil
}

// IndexDocument queues v for indexing under indexName. It is a no-op when
// Elasticsearch has not been configured.
func IndexDocument(indexName string, v interface{}) {
	if !Configured() {
		return
	}

	document, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("indexName", indexName).Msg("Failed to encode document")
		return
	}

	IndexRequest(indexName, bytes.NewReader(document))
}

func IndexRequest(indexName string, document io.ReadSeeker) {
	if !Configured() {
		return
	}

	err := bulkIndexer.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Index:  indexName,
			Action: "index",
			Body:   document,
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					log.Error().Err(err).Str("indexName", indexName).Msg("Failed to index document")
				} else {
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("Failed to index document")
				}
			},
		},
	)
	if err != nil {
		log.Error().Err(err).Str("indexName", indexName).Msg("Failed to queue document")
	}
}

// IndexName returns the dated index a document belongs in, eg. railresched-weather-2024-05-01.
func IndexName(kind string, t time.Time) string {
	return "railresched-" + kind + "-" + t.UTC().Format("2006-01-02")
}

func WaitUntilQueueEmpty() {
	if !Configured() {
		return
	}

	if err := bulkIndexer.Close(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to flush bulk indexer")
	}
}
