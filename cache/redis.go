package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is the shared connection for upstream read caching. It stays nil
// when Redis is unreachable; the helpers treat a nil client as a cache that
// never hits.
var Client *redis.Client

// InitRedis connects to addr and verifies the connection with a ping. The
// cache is optional: on failure every read goes straight to the upstream.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Upstream read cache unavailable: %v (serving uncached)", err)
		Client = nil
		return
	}
	log.Println("Upstream read cache connected")
}

// Close releases the connection if one was established.
func Close() {
	if Client == nil {
		return
	}
	if err := Client.Close(); err != nil {
		log.Printf("Closing read cache: %v", err)
	}
}
