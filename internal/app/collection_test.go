package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

func TestCollection_UpsertPrependsOrReplaces(t *testing.T) {
	s := NewStore()
	s.Quotes.ReplaceAll([]domain.Quote{quote("1", 0, "a"), quote("2", 0, "b")})

	s.Quotes.Upsert(quote("3", 0, "c"))
	assert.Equal(t, []string{"3", "1", "2"}, ids(s.Quotes.Items()))

	s.Quotes.Upsert(quote("1", 4, "changed"))
	assert.Equal(t, []string{"3", "1", "2"}, ids(s.Quotes.Items()))

	q, ok := s.Quotes.Get("1")
	require.True(t, ok)
	assert.Equal(t, "changed", q.Content)
}

func TestCollection_AppendAndRemove(t *testing.T) {
	c := NewCollection(func(c domain.Category) string { return c.ID }, nil)

	c.Append(domain.Category{ID: "a", Name: "A"})
	c.Append(domain.Category{ID: "b", Name: "B"})
	c.Append(domain.Category{ID: "a", Name: "A2"})

	assert.Equal(t, []domain.Category{{ID: "a", Name: "A2"}, {ID: "b", Name: "B"}}, c.Items())

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_ItemsAreCopies(t *testing.T) {
	s := NewStore()
	q := quote("1", 0, "a")
	q.Tags = []domain.Tag{{ID: "t", Name: "x"}}
	s.Quotes.Upsert(q)

	q.Tags[0].Name = "mutated by caller"

	items := s.Quotes.Items()
	items[0].Tags[0].Name = "mutated by reader"

	got, _ := s.Quotes.Get("1")
	assert.Equal(t, "x", got.Tags[0].Name)
}

func TestCollection_Update(t *testing.T) {
	s := NewStore()
	s.Quotes.Upsert(quote("1", 1, "a"))

	ok := s.Quotes.Update("1", func(q *domain.Quote) { q.LikesCount = 10 })
	require.True(t, ok)
	assert.False(t, s.Quotes.Update("missing", func(*domain.Quote) {}))

	got, _ := s.Quotes.Get("1")
	assert.Equal(t, 10, got.LikesCount)
}

func TestStore_LoadSyncsFavoriteFlags(t *testing.T) {
	s := NewStore()

	stale := quote("2", 0, "b")
	stale.IsFavorited = true

	s.Load(
		[]domain.Quote{quote("1", 0, "a"), stale},
		[]domain.Quote{quote("1", 0, "a")},
		[]domain.Category{{ID: "c"}},
		[]domain.Tag{{ID: "t"}},
	)

	q1, _ := s.Quotes.Get("1")
	q2, _ := s.Quotes.Get("2")
	f1, _ := s.Favorites.Get("1")

	assert.True(t, q1.IsFavorited)
	assert.False(t, q2.IsFavorited)
	assert.True(t, f1.IsFavorited)
	assert.Equal(t, 1, s.Categories.Len())
	assert.Equal(t, 1, s.Tags.Len())
}

func TestStore_ApplyQuoteKeepsFavoritesInSync(t *testing.T) {
	s := NewStore()

	fav := quote("1", 0, "a")
	fav.IsFavorited = true
	s.ApplyQuote(fav)
	assert.Equal(t, []string{"1"}, ids(s.Favorites.Items()))

	fav.IsFavorited = false
	s.ApplyQuote(fav)
	assert.Empty(t, s.Favorites.Items())
	assert.Equal(t, []string{"1"}, ids(s.Quotes.Items()))
}

func TestStore_ToggleFavoriteMembership(t *testing.T) {
	s := NewStore()
	s.Quotes.ReplaceAll([]domain.Quote{quote("1", 0, "a")})

	q, ok := s.ToggleFavorite("1")
	require.True(t, ok)
	assert.True(t, q.IsFavorited)
	assert.Equal(t, []string{"1"}, ids(s.Favorites.Items()))

	q, ok = s.ToggleFavorite("1")
	require.True(t, ok)
	assert.False(t, q.IsFavorited)
	assert.Empty(t, s.Favorites.Items())

	// Toggling on again never duplicates.
	s.ToggleFavorite("1")
	assert.Len(t, s.Favorites.Items(), 1)

	_, ok = s.ToggleFavorite("missing")
	assert.False(t, ok)
}

func TestStore_LikeQuoteUpdatesBothCollections(t *testing.T) {
	s := NewStore()

	q := quote("1", 2, "a")
	q.IsFavorited = true
	s.ApplyQuote(q)

	s.LikeQuote("1")

	held, _ := s.Quotes.Get("1")
	fav, _ := s.Favorites.Get("1")

	assert.Equal(t, 3, held.LikesCount)
	assert.True(t, held.IsLiked)
	assert.Equal(t, 3, fav.LikesCount)
}

func TestStore_RemoveQuoteAndReset(t *testing.T) {
	s := NewStore()

	q := quote("1", 0, "a")
	q.IsFavorited = true
	s.ApplyQuote(q)
	s.ApplyQuote(quote("2", 0, "b"))

	s.RemoveQuote("1")
	assert.Equal(t, []string{"2"}, ids(s.Quotes.Items()))
	assert.Empty(t, s.Favorites.Items())

	s.Reset()
	snap := s.Snapshot()
	assert.Empty(t, snap.Quotes)
	assert.Empty(t, snap.Categories)
}
