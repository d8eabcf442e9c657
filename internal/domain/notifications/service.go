package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"bizadmin/internal/kv"
)

const storageKey = "notifications"

type Notification struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	IsRead  bool   `json:"isRead"`
}

// Service keeps an append-only notification list per category. Entries are
// never edited or evicted; MarkRead flips the whole category at once.
type Service struct {
	mu     sync.RWMutex
	store  *kv.Store
	logger *slog.Logger
	nextID func() int64

	lists map[string][]Notification
}

func New(ctx context.Context, store *kv.Store, logger *slog.Logger, nextID func() int64) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger, nextID: nextID, lists: map[string][]Notification{}}
	store.Get(ctx, storageKey, &s.lists)
	for _, category := range Categories() {
		if s.lists[category] == nil {
			s.lists[category] = []Notification{}
		}
	}
	return s
}

func (s *Service) Add(ctx context.Context, category, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[category]; !ok {
		return fmt.Errorf("%q: %w", category, ErrUnknownCategory)
	}
	s.lists[category] = append(s.lists[category], Notification{
		ID:      s.nextID(),
		Content: content,
	})
	s.persist(ctx)
	return nil
}

// List returns a copy of every category's notifications.
func (s *Service) List(ctx context.Context) map[string][]Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]Notification, len(s.lists))
	for category, entries := range s.lists {
		copied := make([]Notification, len(entries))
		copy(copied, entries)
		out[category] = copied
	}
	return out
}

func (s *Service) ListCategory(ctx context.Context, category string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.lists[category]
	if !ok {
		return nil, fmt.Errorf("%q: %w", category, ErrUnknownCategory)
	}
	copied := make([]Notification, len(entries))
	copy(copied, entries)
	return copied, nil
}

// MarkRead flips every entry in the category to read. Unknown categories are
// a no-op so stale clients cannot fail a bulk acknowledgement.
func (s *Service) MarkRead(ctx context.Context, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.lists[category]
	if !ok {
		return
	}
	for i := range entries {
		entries[i].IsRead = true
	}
	s.persist(ctx)
}

// Reset clears the given categories; with none given, every category.
func (s *Service) Reset(ctx context.Context, categories ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(categories) == 0 {
		categories = Categories()
	}
	for _, category := range categories {
		if _, ok := s.lists[category]; ok {
			s.lists[category] = []Notification{}
		}
	}
	s.persist(ctx)
}

func (s *Service) UnreadCount(ctx context.Context, category string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, entry := range s.lists[category] {
		if !entry.IsRead {
			count++
		}
	}
	return count
}

func (s *Service) persist(ctx context.Context) {
	s.store.Set(ctx, storageKey, s.lists)
}
