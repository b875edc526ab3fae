package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()
var Redis *redis.Client

// ConnectRedis wires the shared client. Redis only backs response caching,
// so an empty addr or a dead server just disables it.
func ConnectRedis(addr string) {
	if addr == "" {
		log.Println("REDIS_ADDR not set, response caching disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect Redis, caching disabled: %v", err)
		return
	}

	Redis = client
	log.Println("Redis connected")
}
