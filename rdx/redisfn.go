package rdx

import (
	"log"
	"os"
	"time"

	"trippal/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

const boardCacheTTL = 5 * time.Minute

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func boardKey(tripID string) string {
	return "board:" + tripID
}

// CacheBoard stores the serialized board projection for a trip.
func CacheBoard(tripID string, data []byte) {
	if err := Conn.Set(globals.Ctx, boardKey(tripID), data, boardCacheTTL).Err(); err != nil {
		log.Println("Redis Set error:", err)
	}
}

// GetCachedBoard returns the cached board JSON, or "" on a miss.
func GetCachedBoard(tripID string) string {
	val, err := Conn.Get(globals.Ctx, boardKey(tripID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Redis Get error:", err)
		}
		return ""
	}
	return val
}

// InvalidateBoard drops the cached board after any board mutation.
func InvalidateBoard(tripID string) {
	if err := Conn.Del(globals.Ctx, boardKey(tripID)).Err(); err != nil {
		log.Println("Redis Del error:", err)
	}
}
