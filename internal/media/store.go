// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media holds generated images and videos in memory for the
// lifetime of a workspace session. Nothing is written to disk; a reset
// or session expiry drops every blob.
package media

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Blob is a single generated media object.
type Blob struct {
	ID          uuid.UUID
	ContentType string
	Data        []byte
	Owner       string // session ID that produced the blob
}

// Store is an in-memory blob registry keyed by UUID. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	blobs map[uuid.UUID]*Blob
}

// NewStore creates an empty media store.
func NewStore() *Store {
	return &Store{blobs: make(map[uuid.UUID]*Blob)}
}

// Put stores media bytes under a fresh UUID and returns the ID.
func (s *Store) Put(owner, contentType string, data []byte) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = &Blob{
		ID:          id,
		ContentType: contentType,
		Data:        data,
		Owner:       owner,
	}
	return id
}

// Get returns the blob for an ID, or an error when no such blob exists.
func (s *Store) Get(id uuid.UUID) (*Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("media: blob %s not found", id)
	}
	return b, nil
}

// Delete removes a single blob. Missing IDs are ignored.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
}

// PurgeOwner drops every blob produced by the given session. Returns the
// number of blobs removed.
func (s *Store) PurgeOwner(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, b := range s.blobs {
		if b.Owner == owner {
			delete(s.blobs, id)
			n++
		}
	}
	return n
}

// Len reports how many blobs are currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
