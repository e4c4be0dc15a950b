package consumer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/redis_client"
)

const DefaultStatsListen = ":3333"

type RedisConsumer struct {
	QueueName string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer

	StatsListen string
}

func (c *RedisConsumer) Setup() error {
	if redis_client.QueueConnection == nil {
		return fmt.Errorf("queue %s: redis is not connected", c.QueueName)
	}

	if err := c.startConsumers(); err != nil {
		return err
	}
	go c.startStatsServer()

	return nil
}

func (c *RedisConsumer) startConsumers() error {
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := redis_client.QueueConnection.OpenQueue(c.QueueName)
	if err != nil {
		return err
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), 1*time.Second); err != nil {
		return err
	}

	for i := 0; i < c.NumberConsumers; i++ {
		log.Info().Msgf("Starting %s consumer %d", c.QueueName, i)

		tag := fmt.Sprintf("%s-%d", c.QueueName, i)
		if _, err := queue.AddBatchConsumer(tag, int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return err
		}
	}

	return nil
}

func (c *RedisConsumer) startStatsServer() {
	listen := c.StatsListen
	if listen == "" {
		listen = DefaultStatsListen
	}

	mux := http.NewServeMux()
	endpoint := fmt.Sprintf("/%s/stats", c.QueueName)
	mux.Handle(endpoint, NewStatsHandler(redis_client.QueueConnection))
	mux.Handle("/health", NewHealthHandler())

	log.Info().Msgf("Stats server listening on %s%s", listen, endpoint)
	if err := http.ListenAndServe(listen, mux); err != nil {
		log.Error().Err(err).Msg("Stats server stopped")
	}
}
