package thumbnail

import (
	"image/color"
	"testing"

	"github.com/avestudio/studio/pkg/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_MissGeneratesAndStores(t *testing.T) {
	store := blobstore.NewDiskStore(t.TempDir())
	cache := NewCache(store)
	source := encodePNG(t, solidImage(20, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))

	assert.False(t, cache.Exists("file-1"))

	b, err := cache.GetOrCreate("file-1", source)
	require.NoError(t, err)
	assert.NotEmpty(t, b)

	assert.True(t, cache.Exists("file-1"))

	stored, err := store.Get("thumbnails/file-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, b, stored)
}

func TestCache_HitIgnoresSource(t *testing.T) {
	store := blobstore.NewDiskStore(t.TempDir())
	require.NoError(t, store.Put("thumbnails/file-1.jpg", []byte("cached")))

	cache := NewCache(store)

	b, err := cache.GetOrCreate("file-1", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), b)

	b, ok := cache.Lookup("file-1")
	assert.True(t, ok)
	assert.Equal(t, []byte("cached"), b)
}

func TestCache_NeverOverwrites(t *testing.T) {
	store := blobstore.NewDiskStore(t.TempDir())
	cache := NewCache(store)

	first, err := cache.GetOrCreate("file-1", encodePNG(t, solidImage(10, 10, color.Black)))
	require.NoError(t, err)

	second, err := cache.GetOrCreate("file-1", encodePNG(t, solidImage(50, 50, color.White)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCache_CorruptSource(t *testing.T) {
	store := blobstore.NewDiskStore(t.TempDir())
	cache := NewCache(store)

	b, err := cache.GetOrCreate("file-1", []byte("garbage"))

	assert.ErrorIs(t, err, ErrNotProduced)
	assert.Nil(t, b)
	assert.False(t, cache.Exists("file-1"))
}

func TestCache_OversizedSourceFallsBack(t *testing.T) {
	cache := NewCache(blobstore.NewDiskStore(t.TempDir()))

	b, err := cache.GetOrCreate("file-1", pngHeader(20000, 20000))

	assert.ErrorIs(t, err, ErrNotProduced)
	assert.ErrorIs(t, err, ErrSourceTooLarge)
	assert.Nil(t, b)
	assert.False(t, cache.Exists("file-1"))
}

func TestCache_RejectsUnsafeFileIDs(t *testing.T) {
	cache := NewCache(blobstore.NewDiskStore(t.TempDir()))

	for _, id := range []string{"../escape", "a/b", "", "id.jpg"} {
		_, err := cache.GetOrCreate(id, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidFileID, id)

		_, ok := cache.Lookup(id)
		assert.False(t, ok, id)
		assert.False(t, cache.Exists(id), id)
	}
}
