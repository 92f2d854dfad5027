// Foodbot - Chat-driven Restaurant Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodbot

// Package usercontext keeps a small per-user memory: the last category a
// user asked about, so "again" can re-sample it.
package usercontext

import (
	"sync"
	"time"
)

const (
	// DefaultCapacity bounds the number of remembered users.
	DefaultCapacity = 10000

	// DefaultTTL is how long an idle user's context is kept.
	DefaultTTL = 24 * time.Hour
)

// UserContext is a snapshot of one user's memory.
type UserContext struct {
	UserID       string `json:"user_id"`
	LastCategory string `json:"last_category,omitempty"`
}

// HasLastCategory reports whether a category has been remembered.
func (u UserContext) HasLastCategory() bool {
	return u.LastCategory != ""
}

// entry is a node of the recency list.
type entry struct {
	ctx       UserContext
	prev      *entry
	next      *entry
	expiresAt time.Time
}

// Store is a thread-safe LRU map from user ID to context with idle expiry.
// All operations are O(1) except CleanupExpired.
//
// The list is ordered by recency: head.next is the most recently used user,
// tail.prev the least recently used one and the first to be evicted.
type Store struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*entry
	head  *entry
	tail  *entry

	hits   int64
	misses int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store. Non-positive values select the defaults.
func NewStore(capacity int, ttl time.Duration, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Store{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*entry),
		head:     &entry{},
		tail:     &entry{},
	}
	s.head.next = s.tail
	s.tail.prev = s.head

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the user's context, creating an empty one if the user is
// unknown or their context has expired. Either way the user becomes the most
// recently used entry.
func (s *Store) Get(userID string) UserContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.touch(userID).ctx
}

// SetLastCategory records the category most recently resolved for the user.
func (s *Store) SetLastCategory(userID, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch(userID).ctx.LastCategory = category
}

// Forget drops the user's context. It reports whether the user was known.
func (s *Store) Forget(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[userID]; ok {
		s.removeEntry(e)
		return true
	}
	return false
}

// Len returns the number of stored contexts, including ones that have
// expired but not yet been cleaned up.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// CleanupExpired removes every expired context and returns how many were removed.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for e := s.tail.prev; e != s.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			s.removeEntry(e)
			removed++
		}
		e = prev
	}
	return removed
}

// Stats returns lookup hits (live context found), misses and current size.
func (s *Store) Stats() (hits, misses int64, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses, len(s.items)
}

// touch finds or creates the user's entry, refreshes its expiry and moves
// it to the front. Caller must hold the lock.
func (s *Store) touch(userID string) *entry {
	now := s.now()

	if e, ok := s.items[userID]; ok {
		if !now.After(e.expiresAt) {
			e.expiresAt = now.Add(s.ttl)
			s.moveToFront(e)
			s.hits++
			return e
		}
		s.removeEntry(e)
	}

	s.misses++
	e := &entry{
		ctx:       UserContext{UserID: userID},
		expiresAt: now.Add(s.ttl),
	}
	s.addToFront(e)
	s.items[userID] = e

	for len(s.items) > s.capacity {
		s.evictOldest()
	}
	return e
}

func (s *Store) addToFront(e *entry) {
	e.prev = s.head
	e.next = s.head.next
	s.head.next.prev = e
	s.head.next = e
}

func (s *Store) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	s.addToFront(e)
}

func (s *Store) removeEntry(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(s.items, e.ctx.UserID)
}

func (s *Store) evictOldest() {
	oldest := s.tail.prev
	if oldest == s.head {
		return
	}
	s.removeEntry(oldest)
}
