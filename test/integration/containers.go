//go:build integration

// Package integration runs the adapters against real backends started with
// testcontainers.
package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

type Env struct {
	PG       *postgres.PostgresContainer
	Redis    *tcredis.RedisContainer
	Mongo    *mongodb.MongoDBContainer
	Kafka    *kafka.KafkaContainer
	PGURL    string
	RedisURL string
	MongoURI string
	Brokers  []string
}

// Setup starts every backend. On error the containers started so far are
// terminated.
func Setup(ctx context.Context) (env *Env, err error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	env = &Env{}
	defer func() {
		if err != nil {
			env.Teardown(context.Background())
			env = nil
		}
	}()

	env.PG, err = postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("honey"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return env, fmt.Errorf("start postgres: %w", err)
	}
	if env.PGURL, err = env.PG.ConnectionString(ctx, "sslmode=disable"); err != nil {
		return env, err
	}

	env.Redis, err = tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return env, fmt.Errorf("start redis: %w", err)
	}
	if env.RedisURL, err = env.Redis.ConnectionString(ctx); err != nil {
		return env, err
	}

	env.Mongo, err = mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return env, fmt.Errorf("start mongodb: %w", err)
	}
	if env.MongoURI, err = env.Mongo.ConnectionString(ctx); err != nil {
		return env, err
	}

	env.Kafka, err = kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("honey-test"),
	)
	if err != nil {
		return env, fmt.Errorf("start kafka: %w", err)
	}
	if env.Brokers, err = env.Kafka.Brokers(ctx); err != nil {
		return env, err
	}
	return env, nil
}

func (e *Env) Teardown(_ context.Context) {
	for _, c := range []testcontainers.Container{e.Kafka, e.Mongo, e.Redis, e.PG} {
		_ = testcontainers.TerminateContainer(c)
	}
}
