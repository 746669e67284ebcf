package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DraftStore holds note text whose save failed, so the edit is not lost.
type DraftStore struct {
	cache *cache.Cache
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{cache: cache.New(ttl, ttl)}
}

func (d *DraftStore) Put(noteId uuid.UUID, text string) {
	d.cache.Set(noteId.String(), text, cache.DefaultExpiration)
}

func (d *DraftStore) Get(noteId uuid.UUID) (*string, bool) {
	if x, found := d.cache.Get(noteId.String()); found {
		text := x.(string)
		return &text, true
	}
	return nil, false
}

func (d *DraftStore) Clear(noteId uuid.UUID) {
	d.cache.Delete(noteId.String())
}
