package database

import (
	"fmt"

	"girasol/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey database indexes. Each index provides logical separation for a
// cache category.
const (
	// General purpose caching
	GENERAL_CACHE_INDEX = iota

	// User sessions and token-related temporary data
	SESSION_CACHE_INDEX

	// User profiles and task eligibility lookups
	USER_CACHE_INDEX

	// Pub/sub backbone for collection-change events
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.ErrMsg("cache address or port is empty")
	}

	var cacheDB Cache

	clients := []struct {
		target *CacheClient
		index  int
		name   string
	}{
		{&cacheDB.General, GENERAL_CACHE_INDEX, "general"},
		{&cacheDB.Session, SESSION_CACHE_INDEX, "session"},
		{&cacheDB.User, USER_CACHE_INDEX, "user"},
		{&cacheDB.Events, EVENTS_CACHE_INDEX, "events"},
	}

	for _, c := range clients {
		client, err := valkey.NewClient(
			valkey.ClientOption{
				InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
				SelectDB:    c.index,
			},
		)
		if err != nil {
			return log.Err("failed to create valkey client", err, "cache", c.name)
		}
		*c.target = client
	}

	s.Cache = cacheDB

	return nil
}
