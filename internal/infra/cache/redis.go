package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix = "agendamento:"
	tagPrefix = "agendamento:tag:"
)

type Redis struct {
	client *redis.Client
}

// ConnectRedis tenta algumas vezes antes de desistir; o chamador
// decide se cai para o cache em memória.
func ConnectRedis(addr, password string, db int) (*Redis, error) {
	const (
		maxRetries = 3
		retryDelay = 2 * time.Second
	)

	client := redis.NewClient(&redis.Options{
		Network:  "tcp",
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	var err error
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = client.Ping(ctx).Err()
		cancel()
		if err == nil {
			return &Redis{client: client}, nil
		}

		log.Printf("[CACHE] redis indisponível (tentativa %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryDelay)
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis %s: %w", addr, err)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set grava o valor e registra a chave no conjunto de cada tag. O
// conjunto expira junto com o valor mais longo gravado nele.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	full := keyPrefix + key

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, full, value, ttl)
		for _, tag := range tags {
			p.SAdd(ctx, tagPrefix+tag, full)
			if ttl > 0 {
				p.Expire(ctx, tagPrefix+tag, ttl)
			}
		}
		return nil
	})
	return err
}

func (r *Redis) Invalidate(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		keys, err := r.client.SMembers(ctx, tagPrefix+tag).Result()
		if err != nil {
			return err
		}
		keys = append(keys, tagPrefix+tag)
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
