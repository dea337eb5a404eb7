package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// ChangeListener is notified after every successful store mutation with a
// snapshot of the annotations in creation order.
type ChangeListener func(annotations []domain.Annotation)

// AnnotationStore is the ordered, process-wide collection of annotations.
// Mutations that fail validation change nothing and notify nobody.
type AnnotationStore struct {
	mu        sync.RWMutex
	notifyMu  sync.Mutex
	items     []domain.Annotation
	lastID    int64
	clock     func() time.Time
	listeners []ChangeListener
}

// NewAnnotationStore creates an empty store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{clock: time.Now}
}

// SetClock replaces the time source used for new IDs.
func (s *AnnotationStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// OnChange registers a listener. Listeners run synchronously in
// registration order on the mutating goroutine. A listener must not mutate
// the store.
func (s *AnnotationStore) OnChange(fn ChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Create appends an annotation and returns its ID.
func (s *AnnotationStore) Create(text string, pageNumber int, rects []domain.Rect) (int64, error) {
	return s.CreateScaled(text, pageNumber, rects, 0)
}

// CreateScaled is Create with the render scale the rects were captured at.
func (s *AnnotationStore) CreateScaled(text string, pageNumber int, rects []domain.Rect, scale float64) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, domain.ErrEmptyText
	}
	if pageNumber < 1 {
		return 0, fmt.Errorf("page %d: %w", pageNumber, domain.ErrPageOutOfRange)
	}
	kept := make([]domain.Rect, 0, len(rects))
	for _, r := range rects {
		if !r.IsDegenerate() {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return 0, domain.ErrNoRects
	}

	s.mu.Lock()
	id := s.clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	s.items = append(s.items, domain.Annotation{
		ID:         id,
		Text:       text,
		PageNumber: pageNumber,
		Rects:      kept,
		Replies:    []string{},
		Scale:      scale,
	})
	s.mu.Unlock()

	s.notify()
	return id, nil
}

// Delete removes an annotation and all its replies.
func (s *AnnotationStore) Delete(id int64) error {
	err := s.mutate(id, func(idx int) error {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		return nil
	})
	return err
}

// AddReply appends a trimmed reply. Blank replies are rejected.
func (s *AnnotationStore) AddReply(id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyText
	}
	return s.mutate(id, func(idx int) error {
		s.items[idx].Replies = append(s.items[idx].Replies, text)
		return nil
	})
}

// EditReply replaces reply index. A blank replacement deletes the reply.
func (s *AnnotationStore) EditReply(id int64, index int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.DeleteReply(id, index)
	}
	return s.mutate(id, func(idx int) error {
		replies := s.items[idx].Replies
		if index < 0 || index >= len(replies) {
			return fmt.Errorf("reply %d: %w", index, domain.ErrNotFound)
		}
		replies[index] = text
		return nil
	})
}

// DeleteReply removes reply index. Out-of-range indexes change nothing.
func (s *AnnotationStore) DeleteReply(id int64, index int) error {
	return s.mutate(id, func(idx int) error {
		replies := s.items[idx].Replies
		if index < 0 || index >= len(replies) {
			return fmt.Errorf("reply %d: %w", index, domain.ErrNotFound)
		}
		s.items[idx].Replies = append(replies[:index:index], replies[index+1:]...)
		return nil
	})
}

// Clear removes every annotation.
func (s *AnnotationStore) Clear() {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return
	}
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// Retain removes every annotation keep rejects and returns how many were
// removed. Listeners are notified only when something was removed.
func (s *AnnotationStore) Retain(keep func(domain.Annotation) bool) int {
	s.mu.Lock()
	kept := s.items[:0:0]
	for _, a := range s.items {
		if keep(a) {
			kept = append(kept, a)
		}
	}
	removed := len(s.items) - len(kept)
	if removed > 0 {
		s.items = kept
	}
	s.mu.Unlock()

	if removed > 0 {
		s.notify()
	}
	return removed
}

// Replay runs fn with a current snapshot, ordered with change
// notifications.
func (s *AnnotationStore) Replay(fn ChangeListener) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.RLock()
	snapshot := s.snapshot()
	s.mu.RUnlock()
	fn(snapshot)
}

// Get returns a copy of one annotation.
func (s *AnnotationStore) Get(id int64) (*domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("annotation %d: %w", id, domain.ErrNotFound)
	}
	a := s.items[idx].Clone()
	return &a, nil
}

// List returns copies of all annotations in creation order.
func (s *AnnotationStore) List() []domain.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Len returns the number of annotations.
func (s *AnnotationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Serialize encodes the store as a JSON array of records.
func (s *AnnotationStore) Serialize() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.items
	if items == nil {
		items = []domain.Annotation{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding annotations: %w", err)
	}
	return data, nil
}

// Hydrate replaces the store contents with previously serialized data.
// Data that is not a JSON array returns domain.ErrCorruptData and leaves the
// store empty. Individual records that fail validation, or repeat an ID, are
// dropped. Hydrate reports how many records were dropped.
func (s *AnnotationStore) Hydrate(data []byte) (int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		s.Clear()
		return 0, fmt.Errorf("hydrating annotations: %w", domain.ErrCorruptData)
	}

	items := make([]domain.Annotation, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	var lastID int64
	dropped := 0
	for _, r := range raw {
		var a domain.Annotation
		if err := json.Unmarshal(r, &a); err != nil || !a.Valid() || seen[a.ID] {
			dropped++
			continue
		}
		if a.Replies == nil {
			a.Replies = []string{}
		}
		seen[a.ID] = true
		if a.ID > lastID {
			lastID = a.ID
		}
		items = append(items, a)
	}

	s.mu.Lock()
	s.items = items
	if lastID > s.lastID {
		s.lastID = lastID
	}
	s.mu.Unlock()

	s.notify()
	return dropped, nil
}

// mutate runs fn with the write lock held on the index of id and notifies
// listeners when fn succeeds.
func (s *AnnotationStore) mutate(id int64, fn func(idx int) error) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("annotation %d: %w", id, domain.ErrNotFound)
	}
	if err := fn(idx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// notify hands listeners a snapshot. Notifications are serialized so
// listeners see snapshots in mutation order.
func (s *AnnotationStore) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.RLock()
	snapshot := s.snapshot()
	listeners := append([]ChangeListener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// snapshot copies items (caller must hold lock).
func (s *AnnotationStore) snapshot() []domain.Annotation {
	out := make([]domain.Annotation, len(s.items))
	for i, a := range s.items {
		out[i] = a.Clone()
	}
	return out
}

func (s *AnnotationStore) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
