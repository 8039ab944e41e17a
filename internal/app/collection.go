package app

import (
	"slices"
	"sync"

	"github.com/jsamuelsen/quotedash/internal/domain"
)

// Collection is an ordered, id-keyed mirror of one server-owned collection.
// Items go in and come out as copies.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	key   func(T) string
	clone func(T) T
}

// NewCollection creates an empty collection. clone may be nil for value types
// without shared references.
func NewCollection[T any](key func(T) string, clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}

	return &Collection[T]{key: key, clone: clone}
}

func (c *Collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(v T) bool { return c.key(v) == id })
}

// Upsert replaces the item with the same id, else prepends it.
func (c *Collection[T]) Upsert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(c.key(item)); i >= 0 {
		c.items[i] = c.clone(item)
		return
	}

	c.items = slices.Insert(c.items, 0, c.clone(item))
}

// Append replaces the item with the same id, else appends it.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(c.key(item)); i >= 0 {
		c.items[i] = c.clone(item)
		return
	}

	c.items = append(c.items, c.clone(item))
}

// Remove drops the item with the given id. It reports whether one was removed.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(v T) bool { return c.key(v) == id })

	return len(c.items) != n
}

// ReplaceAll swaps in a fresh copy of items.
func (c *Collection[T]) ReplaceAll(items []T) {
	fresh := make([]T, 0, len(items))
	for _, v := range items {
		fresh = append(fresh, c.clone(v))
	}

	c.mu.Lock()
	c.items = fresh
	c.mu.Unlock()
}

// Items returns a copy of the collection in order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		out = append(out, c.clone(v))
	}

	return out
}

// Get returns a copy of the item with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.clone(c.items[i]), true
	}

	var zero T

	return zero, false
}

// Update applies fn to the item with the given id in place.
func (c *Collection[T]) Update(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false
	}

	fn(&c.items[i])

	return true
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Store holds the four mirrored collections. Operations that touch more
// than one collection take mu so quotes and favorites never disagree.
type Store struct {
	mu sync.Mutex

	Quotes     *Collection[domain.Quote]
	Categories *Collection[domain.Category]
	Tags       *Collection[domain.Tag]
	Favorites  *Collection[domain.Quote]
}

// NewStore creates an empty store.
func NewStore() *Store {
	quoteKey := func(q domain.Quote) string { return q.ID }
	cloneQuote := func(q domain.Quote) domain.Quote { return q.Clone() }

	return &Store{
		Quotes:     NewCollection(quoteKey, cloneQuote),
		Categories: NewCollection(func(c domain.Category) string { return c.ID }, nil),
		Tags:       NewCollection(func(t domain.Tag) string { return t.ID }, nil),
		Favorites:  NewCollection(quoteKey, cloneQuote),
	}
}

// Reset empties every collection.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Quotes.ReplaceAll(nil)
	s.Categories.ReplaceAll(nil)
	s.Tags.ReplaceAll(nil)
	s.Favorites.ReplaceAll(nil)
}

// Load replaces all four collections. Favorites is the source of truth for
// IsFavorited: flags on quotes are rewritten to match it.
func (s *Store) Load(quotes, favorites []domain.Quote, categories []domain.Category, tags []domain.Tag) {
	favIDs := make(map[string]struct{}, len(favorites))
	for _, f := range favorites {
		favIDs[f.ID] = struct{}{}
	}

	synced := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		_, q.IsFavorited = favIDs[q.ID]
		synced = append(synced, q)
	}

	favs := make([]domain.Quote, 0, len(favorites))
	for _, f := range favorites {
		f.IsFavorited = true
		favs = append(favs, f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Quotes.ReplaceAll(synced)
	s.Favorites.ReplaceAll(favs)
	s.Categories.ReplaceAll(categories)
	s.Tags.ReplaceAll(tags)
}

// ApplyQuote upserts a server copy of a quote and keeps favorites membership
// in line with its IsFavorited flag.
func (s *Store) ApplyQuote(q domain.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Quotes.Upsert(q)
	s.syncFavorite(q)
}

func (s *Store) syncFavorite(q domain.Quote) {
	if q.IsFavorited {
		s.Favorites.Upsert(q)
		return
	}

	s.Favorites.Remove(q.ID)
}

// RemoveQuote drops a quote from quotes and favorites.
func (s *Store) RemoveQuote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Quotes.Remove(id)
	s.Favorites.Remove(id)
}

// LikeQuote adds one like and marks the quote liked wherever it is held.
func (s *Store) LikeQuote(id string) {
	like := func(q *domain.Quote) {
		q.LikesCount++
		q.IsLiked = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Quotes.Update(id, like)
	s.Favorites.Update(id, like)
}

// FindQuote looks in quotes, then favorites.
func (s *Store) FindQuote(id string) (domain.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findQuote(id)
}

func (s *Store) findQuote(id string) (domain.Quote, bool) {
	if q, ok := s.Quotes.Get(id); ok {
		return q, true
	}

	return s.Favorites.Get(id)
}

// ToggleFavorite flips IsFavorited and adds or removes the quote from
// favorites. It returns the updated quote.
func (s *Store) ToggleFavorite(id string) (domain.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.findQuote(id)
	if !ok {
		return domain.Quote{}, false
	}

	q.IsFavorited = !q.IsFavorited

	s.Quotes.Update(id, func(held *domain.Quote) { held.IsFavorited = q.IsFavorited })
	s.syncFavorite(q)

	return q, true
}

// Snapshot is a consistent copy of the store.
type Snapshot struct {
	Quotes     []domain.Quote
	Favorites  []domain.Quote
	Categories []domain.Category
	Tags       []domain.Tag
}

// Snapshot copies all four collections under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Quotes:     s.Quotes.Items(),
		Favorites:  s.Favorites.Items(),
		Categories: s.Categories.Items(),
		Tags:       s.Tags.Items(),
	}
}
