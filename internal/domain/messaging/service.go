package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/kv"
)

const (
	keyMessages = "messages"
	keyChats    = "chats"
)

var (
	// ErrNotFound aliases the employee collection's miss error so callers can
	// match either package's sentinel.
	ErrNotFound     = admin.ErrNotFound
	ErrEmptyMessage = errors.New("message content is empty")
)

// Directory resolves chat counterparts against the employee collection.
type Directory interface {
	Employees(ctx context.Context) []admin.Employee
	EmployeeByID(ctx context.Context, id int64) (admin.Employee, error)
	EmployeeByName(ctx context.Context, name string) (admin.Employee, error)
}

// Notifier mirrors the admin domain's fan-out hook.
type Notifier interface {
	Add(ctx context.Context, category, content string) error
}

// Service owns the messages collection and the derived chat list. Chats are
// ordered most-recently-active first.
type Service struct {
	mu        sync.RWMutex
	store     *kv.Store
	directory Directory
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
	nextID    func() int64

	messages []Message
	chats    []Chat
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(ctx context.Context, store *kv.Store, directory Directory, notifier Notifier, logger *slog.Logger, nextID func() int64, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:     store,
		directory: directory,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
		nextID:    nextID,
	}
	for _, opt := range opts {
		opt(s)
	}
	store.Get(ctx, keyMessages, &s.messages)
	store.Get(ctx, keyChats, &s.chats)
	return s
}

// InitializeChats derives one chat per employee from the stored messages. It
// does nothing when a chat list already exists; it does not reconcile a stale
// one.
func (s *Service) InitializeChats(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.chats) > 0 {
		return
	}
	for _, emp := range s.directory.Employees(ctx) {
		s.chats = append(s.chats, s.deriveChat(emp))
	}
	s.store.Set(ctx, keyChats, s.chats)
}

// StartChat returns the employee's chat promoted to the front of the list,
// creating it first when absent.
func (s *Service) StartChat(ctx context.Context, employeeID int64) (Chat, error) {
	emp, err := s.directory.EmployeeByID(ctx, employeeID)
	if err != nil {
		return Chat{}, fmt.Errorf("start chat: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.chatIndex(employeeID)
	if idx < 0 {
		s.chats = append([]Chat{s.deriveChat(emp)}, s.chats...)
	} else {
		chat := s.chats[idx]
		s.chats = append(s.chats[:idx], s.chats[idx+1:]...)
		s.chats = append([]Chat{chat}, s.chats...)
	}
	s.store.Set(ctx, keyChats, s.chats)
	return s.chats[0], nil
}

// Chats returns a copy of the chat list, most recently active first.
func (s *Service) Chats(ctx context.Context) []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

// Send appends a message between sender and recipient, refreshes the
// counterpart's chat summary and moves that chat to the front. The chat's
// unread count only grows for messages arriving from the employee side.
func (s *Service) Send(ctx context.Context, sender, recipient, content string) (Message, error) {
	if strings.TrimSpace(content) == "" {
		return Message{}, ErrEmptyMessage
	}
	counterpart := sender
	if counterpart == AdminName {
		counterpart = recipient
	}
	emp, err := s.directory.EmployeeByName(ctx, counterpart)
	if err != nil {
		return Message{}, fmt.Errorf("send to %q: %w", counterpart, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:        s.nextID(),
		Content:   content,
		Sender:    sender,
		Recipient: recipient,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	s.messages = append(s.messages, msg)

	idx := s.chatIndex(emp.ID)
	if idx < 0 {
		s.chats = append([]Chat{s.deriveChat(emp)}, s.chats...)
		idx = 0
	}
	chat := s.chats[idx]
	chat.LastMessage = msg.Content
	chat.Timestamp = msg.Timestamp
	if sender != AdminName {
		chat.Unread++
	}
	s.chats = append(s.chats[:idx], s.chats[idx+1:]...)
	s.chats = append([]Chat{chat}, s.chats...)

	s.store.Set(ctx, keyMessages, s.messages)
	s.store.Set(ctx, keyChats, s.chats)

	if s.notifier != nil {
		if err := s.notifier.Add(ctx, "messages", fmt.Sprintf("New message from %s", sender)); err != nil {
			s.logger.Warn("notification emit failed", "err", err)
		}
	}
	return msg, nil
}

// SendToChat sends from the admin to the chat's employee counterpart.
func (s *Service) SendToChat(ctx context.Context, employeeID int64, content string) (Message, error) {
	emp, err := s.directory.EmployeeByID(ctx, employeeID)
	if err != nil {
		return Message{}, fmt.Errorf("send to chat: %w", err)
	}
	return s.Send(ctx, AdminName, emp.Name, content)
}

// ChatMessages returns every message exchanged with the employee, in
// insertion order.
func (s *Service) ChatMessages(ctx context.Context, employeeID int64) ([]Message, error) {
	emp, err := s.directory.EmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("chat messages: %w", err)
	}
	return s.MessagesWith(ctx, emp.Name), nil
}

// MessagesWith returns the conversation between the admin and the named
// counterpart, in insertion order.
func (s *Service) MessagesWith(ctx context.Context, name string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Message
	for _, msg := range s.messages {
		if (msg.Sender == name && msg.Recipient == AdminName) ||
			(msg.Sender == AdminName && msg.Recipient == name) {
			out = append(out, msg)
		}
	}
	return out
}

// Messages returns a copy of the whole message collection.
func (s *Service) Messages(ctx context.Context) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// MarkChatRead flips the employee's inbound messages to read and zeroes the
// chat's unread counter.
func (s *Service) MarkChatRead(ctx context.Context, employeeID int64) error {
	emp, err := s.directory.EmployeeByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("mark chat read: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].Sender == emp.Name && s.messages[i].Recipient == AdminName {
			s.messages[i].IsRead = true
		}
	}
	if idx := s.chatIndex(employeeID); idx >= 0 {
		s.chats[idx].Unread = 0
	}
	s.store.Set(ctx, keyMessages, s.messages)
	s.store.Set(ctx, keyChats, s.chats)
	return nil
}

func (s *Service) chatIndex(employeeID int64) int {
	for i := range s.chats {
		if s.chats[i].ID == employeeID {
			return i
		}
	}
	return -1
}

func (s *Service) deriveChat(emp admin.Employee) Chat {
	chat := Chat{
		ID:          emp.ID,
		Name:        emp.Name,
		Role:        emp.Role,
		LastMessage: "No messages yet",
		Online:      rand.Intn(2) == 0,
	}
	for _, msg := range s.messages {
		if (msg.Sender == emp.Name && msg.Recipient == AdminName) ||
			(msg.Sender == AdminName && msg.Recipient == emp.Name) {
			chat.LastMessage = msg.Content
			chat.Timestamp = msg.Timestamp
			if msg.Sender == emp.Name && !msg.IsRead {
				chat.Unread++
			}
		}
	}
	return chat
}
