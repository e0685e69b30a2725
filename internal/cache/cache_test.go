package cache

import (
	"context"
	"testing"
	"time"

	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollectionCacheDisabled(t *testing.T) {
	assert.Nil(t, NewCollectionCache(0))
	assert.Nil(t, NewCollectionCache(-time.Second))
	assert.NotPanics(t, func() {
		SaveCache(nil, t.TempDir())
		LoadCache(nil, t.TempDir())
	})
}

func TestSaveAndLoadCache(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	collection := model.NewCollection("Alerts", "https://example.com", []model.Alert{
		{Title: "Flood warning", Link: "https://example.com/1", PublishedAt: model.NoDate},
	})

	saved := NewCollectionCache(time.Hour)
	_, err := saved.Get(ctx, "feed", CollectionLoaderFunc(func(ctx context.Context, key string) (model.Collection, error) {
		return collection, nil
	}))
	require.NoError(t, err)
	SaveCache(saved, dir)

	loaded := NewCollectionCache(time.Hour)
	LoadCache(loaded, dir)
	got, ok := loaded.GetIfPresent("feed")
	require.True(t, ok)
	assert.Equal(t, "Flood warning", got.Alerts[0].Title)
}

func TestLoadCacheMissingFile(t *testing.T) {
	c := NewCollectionCache(time.Hour)
	assert.NotPanics(t, func() {
		LoadCache(c, t.TempDir())
	})
	_, ok := c.GetIfPresent("feed")
	assert.False(t, ok)
}
