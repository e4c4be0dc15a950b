package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/pagination"
	"github.com/travigo/railresched/pkg/timetable"
)

const trainPageSize = 500

const trainMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	},
	"mappings": {
		"properties": {
			"train_number": {
				"type": "keyword"
			},
			"train_name": {
				"type": "text",
				"fields": {
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"stations": {
				"type": "keyword"
			},
			"start_time": {
				"type": "date"
			}
		}
	}
}`

func TrainDocument(train *model.Train) map[string]interface{} {
	stations := []string{}
	for _, stop := range train.Schedule {
		if stop != nil {
			stations = append(stations, stop.StationCode)
		}
	}

	document := map[string]interface{}{
		"train_number": train.TrainNumber,
		"train_name":   train.TrainName,
		"origin_code":  train.OriginCode,
		"dest_code":    train.DestCode,
		"stations":     stations,
	}
	if start := train.StartTime(); start != nil {
		document["start_time"] = start
	}

	return document
}

// IndexTrains walks every page of trains into a fresh index
func IndexTrains(ctx context.Context, store timetable.TrainStore) error {
	indexName := fmt.Sprintf("railresched-trains-%d", time.Now().Unix())

	if err := createIndex(ctx, indexName, trainMapping); err != nil {
		return err
	}

	indexed := 0
	for page := 1; ; page++ {
		result, err := store.ListTrains(ctx, timetable.TrainQuery{
			Params: pagination.Params{Page: page, Limit: trainPageSize},
		})
		if err != nil {
			return err
		}

		for _, train := range result.Items {
			elastic_client.IndexDocument(indexName, TrainDocument(train))
		}
		indexed += result.Count()

		if page >= result.TotalPages {
			break
		}
	}

	log.Info().Int("trains", indexed).Msg("Sent all index requests to queue")

	return deleteOldIndexes(ctx, "railresched-trains-*", indexName)
}
