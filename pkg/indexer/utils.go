package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/elastic_client"
)

func createIndex(ctx context.Context, indexName string, mapping string) error {
	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	resp, err := indexReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("creating index %s: %w", indexName, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("creating index %s: %s", indexName, resp.String())
	}

	log.Info().Str("index", indexName).Msg("Created index")

	return nil
}

func deleteOldIndexes(ctx context.Context, indexWildcard string, indexName string) error {
	catReq := esapi.CatIndicesRequest{
		Index:  []string{indexWildcard},
		Format: "json",
	}

	resp, err := catReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("listing indexes: %w", err)
	}
	defer resp.Body.Close()

	var indexes []struct {
		Index string `json:"index"`
	}

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(responseBytes, &indexes); err != nil {
		return fmt.Errorf("decoding index list: %w", err)
	}

	for _, index := range indexes {
		if index.Index == indexName {
			continue
		}

		deleteReq := esapi.IndicesDeleteRequest{
			Index: []string{index.Index},
		}

		deleteResp, err := deleteReq.Do(ctx, elastic_client.Client)
		if err != nil {
			log.Error().Err(err).Str("index", index.Index).Msg("Failed to delete old index")
			continue
		}
		deleteResp.Body.Close()

		log.Info().Str("index", index.Index).Msg("Delete old index")
	}

	return nil
}
