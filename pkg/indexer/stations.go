package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/elastic_client"
	"github.com/travigo/railresched/pkg/model"
	"github.com/travigo/railresched/pkg/timetable"
)

const stationMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	},
	"mappings": {
		"properties": {
			"station_code": {
				"type": "keyword"
			},
			"station_name": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					},
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"location": {
				"type": "geo_point"
			},
			"altitude": {
				"type": "float"
			},
			"maintenance": {
				"type": "keyword"
			}
		}
	}
}`

func StationDocument(station *model.Station) map[string]interface{} {
	maintenance := []string{}
	for _, forecast := range station.Forecasts {
		if forecast != nil && forecast.MaintenanceType != model.MaintenanceTypeNone && forecast.MaintenanceType != "" {
			maintenance = append(maintenance, string(forecast.MaintenanceType))
		}
	}

	return map[string]interface{}{
		"station_code": station.StationCode,
		"station_name": station.StationName,
		"location": map[string]float64{
			"lat": station.Lat,
			"lon": station.Lon,
		},
		"altitude":    station.Altitude,
		"forecasts":   len(station.Forecasts),
		"maintenance": maintenance,
	}
}

func IndexStations(ctx context.Context, store timetable.StationStore) error {
	indexName := fmt.Sprintf("railresched-stations-%d", time.Now().Unix())

	if err := createIndex(ctx, indexName, stationMapping); err != nil {
		return err
	}

	stations, err := store.AllStations(ctx)
	if err != nil {
		return err
	}

	for _, station := range stations {
		elastic_client.IndexDocument(indexName, StationDocument(station))
	}

	log.Info().Int("stations", len(stations)).Msg("Sent all index requests to queue")

	return deleteOldIndexes(ctx, "railresched-stations-*", indexName)
}
