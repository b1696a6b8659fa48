package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// VerdictStream carries every resolved verdict for downstream consumers
// (the Discord bot announces from it).
const VerdictStream = "claimcheck.verdicts"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func PublishVerdict(ctx context.Context, rdb *redis.Client, payload map[string]any) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: VerdictStream,
		Values: payload,
	}).Result()
	return err
}
