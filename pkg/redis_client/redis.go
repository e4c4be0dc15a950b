package redis_client

import (
	"context"
	"strconv"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up the redis client and queue connection. When the address is
// not configured and required is false the setup is skipped.
func Connect(required bool) error {
	if Client != nil {
		return nil
	}

	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["RAILRESCHED_REDIS_ADDRESS"] != "" {
		address = env["RAILRESCHED_REDIS_ADDRESS"]
	} else if !required {
		log.Info().Msg("Skipping Redis setup")
		return nil
	}

	if env["RAILRESCHED_REDIS_PASSWORD"] != "" {
		password = env["RAILRESCHED_REDIS_PASSWORD"]
	}

	if env["RAILRESCHED_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["RAILRESCHED_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	statusCmd := client.Ping(context.Background())
	err := statusCmd.Err()
	if err != nil {
		return err
	}

	QueueConnection, err = rmq.OpenConnectionWithRedisClient("railresched", client, nil)
	if err != nil {
		return err
	}

	Client = client

	log.Info().Str("address", address).Msg("Redis client setup")

	return nil
}

func Configured() bool {
	return Client != nil
}
