package conversation

import (
	"time"

	"github.com/jazmy/formchat/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

// Store holds live sessions with a TTL. Every successful operation
// refreshes the deadline; abandoned sessions expire without cleanup.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (st *Store) Get(id string) (*Session, error) {
	v, ok := st.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return v.(*Session), nil
}

func (st *Store) Put(s *Session) {
	st.cache.SetDefault(s.ID, s)
}

func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}
