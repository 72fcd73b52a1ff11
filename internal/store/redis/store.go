package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/atshaw/quill/internal/logger"
)

// Store handles Redis persistence for posts and bookmarks. Posts are JSON
// documents with two index structures: a ZSET keyed by creation time for the
// feed and a HASH mapping slug -> id for permalinks.
type Store struct {
	client *redis.Client
	logger logger.Logger
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log,
	}
}
