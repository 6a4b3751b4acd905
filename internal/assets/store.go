package assets

import (
	"sync"
	"time"
)

// Upload is the original bytes and metadata of one uploaded image,
// kept so repeated renders reuse the last upload without the operator
// re-picking the file.
type Upload struct {
	Data       []byte
	MIME       string
	Filename   string
	UploadedAt time.Time
}

// Store is the in-memory upload store for one editing session, keyed by
// a caller-supplied stable slot key (e.g. "site.logo", "shops.shop2.campaign").
// It is cleared wholesale on document reset because slot keys reference
// a document shape that no longer applies.
type Store struct {
	mu      sync.Mutex
	uploads map[string]*Upload
}

// NewStore returns an empty upload store.
func NewStore() *Store {
	return &Store{uploads: make(map[string]*Upload)}
}

// Put records an upload under its slot key, replacing any previous
// upload for the same slot, and returns the data URI to embed.
func (s *Store) Put(slot, filename, mime string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[slot] = &Upload{
		Data:       data,
		MIME:       mime,
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
	}
	return ToDataURI(data, mime)
}

// Get returns the last upload for a slot, or nil.
func (s *Store) Get(slot string) *Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads[slot]
}

// Delete forgets the upload for a slot.
func (s *Store) Delete(slot string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, slot)
}

// Reset drops every cached upload.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = make(map[string]*Upload)
}

// Len returns the number of cached uploads.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads)
}

// ClearEmbedded implements the dual-mode field contract for switching a
// field from "uploaded" back to "URL" mode: the current value is
// discarded only if it is itself a data URI; a plain external URL is
// preserved verbatim.
func ClearEmbedded(current string) string {
	if IsDataURI(current) {
		return ""
	}
	return current
}
