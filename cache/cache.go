package cache

import (
	"fmt"
	"log"

	"github.com/handleme/gallery/config"
)

// NewProvider builds the cache configured by cache_type.
func NewProvider(cfg *config.Config) (Provider, error) {
	cacheType := cfg.CacheType
	if cacheType == "" {
		cacheType = "memory"
	}

	log.Printf("Initializing cache, type: %s", cacheType)

	switch cacheType {
	case "memory":
		return newMemoryCache()
	case "redis":
		return newRedisCache(cfg.CacheRedisAddr, cfg.CacheRedisPassword, cfg.CacheRedisDB)
	default:
		return nil, fmt.Errorf("invalid cache type specified in config: %s", cacheType)
	}
}
