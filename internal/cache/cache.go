package cache

import (
	"errors"
	"os"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/maypok86/otter/v2"
)

const collectionFile = "alerts.gob"

type CollectionCache = otter.Cache[string, model.Collection]
type CollectionLoaderFunc = otter.LoaderFunc[string, model.Collection]

// NewCollectionCache returns nil when ttl is not positive, which disables
// caching.
func NewCollectionCache(ttl time.Duration) *CollectionCache {
	if ttl <= 0 {
		return nil
	}
	return otter.Must(&otter.Options[string, model.Collection]{
		MaximumSize:      100,
		ExpiryCalculator: otter.ExpiryCreating[string, model.Collection](ttl),
	})
}

func LoadCache(c *CollectionCache, cachePath string) {
	if c == nil {
		return
	}
	collectionPath := path.Join(cachePath, collectionFile)
	log.Info().Str("path", collectionPath).Msg("Loading alert cache")
	if err := otter.LoadCacheFromFile(c, collectionPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Error().Err(err).Msg("Load cache failed")
		}
	}
}

func SaveCache(c *CollectionCache, cachePath string) {
	if c == nil {
		return
	}
	collectionPath := path.Join(cachePath, collectionFile)
	log.Info().Str("path", collectionPath).Msg("Saving alert cache")
	if err := otter.SaveCacheToFile(c, collectionPath); err != nil {
		log.Error().Err(err).Msg("Save cache failed")
	}
}
