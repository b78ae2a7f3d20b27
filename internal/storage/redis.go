// internal/storage/redis.go
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"uniautomarket/internal/common/config"
	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/models"
)

// Redis keeps the catalog document as a JSON blob at a single key and
// fans out persists over a pub/sub channel so other processes see pushes.
type Redis struct {
	client  *redis.Client
	key     string
	channel string
	log     logger.Logger
}

func NewRedis(cfg config.RedisConfig, log logger.Logger) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
	return NewRedisFromClient(rdb, cfg.Key, cfg.Channel, log)
}

// NewRedisFromClient wraps an existing client; used by tests running
// against miniredis.
func NewRedisFromClient(client *redis.Client, key, channel string, log logger.Logger) *Redis {
	return &Redis{
		client:  client,
		key:     key,
		channel: channel,
		log:     log.WithFields(map[string]interface{}{"adapter": "redis"}),
	}
}

// Ping tests the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) FetchAll(ctx context.Context) (models.Tree, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return DecodeTree(raw)
}

func (r *Redis) Persist(ctx context.Context, tree models.Tree) error {
	raw, err := EncodeTree(tree)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return err
	}
	// Publish failures are not persist failures: the write landed, other
	// processes just will not hear about it until their next fetch.
	if err := r.client.Publish(ctx, r.channel, raw).Err(); err != nil {
		r.log.Warn("publish after persist failed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (r *Redis) Subscribe(onChange func(models.Tree)) func() {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := r.client.Subscribe(ctx, r.channel)

	go func() {
		for msg := range pubsub.Channel() {
			tree, err := DecodeTree([]byte(msg.Payload))
			if err != nil {
				r.log.Warn("dropping undecodable push", map[string]interface{}{"error": err.Error()})
				continue
			}
			onChange(tree)
		}
	}()

	return func() {
		cancel()
		_ = pubsub.Close()
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
