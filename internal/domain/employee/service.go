package employee

import (
	"context"
	"log/slog"
	"sync"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/domain/messaging"
	"bizadmin/internal/domain/notifications"
	"bizadmin/internal/kv"
)

const keyCurrentEmployee = "currentEmployee"

// Service is the self-service surface scoped to the single current employee
// profile. There is no multi-session identity; logout resets the profile to
// the seed default rather than tearing down a session.
type Service struct {
	mu        sync.RWMutex
	store     *kv.Store
	admins    *admin.Service
	messaging *messaging.Service
	notifier  *notifications.Service
	logger    *slog.Logger

	current admin.Employee
}

func New(ctx context.Context, store *kv.Store, admins *admin.Service, msg *messaging.Service, notifier *notifications.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:     store,
		admins:    admins,
		messaging: msg,
		notifier:  notifier,
		logger:    logger,
		current:   admin.DefaultCurrentEmployee(),
	}
	store.Get(ctx, keyCurrentEmployee, &s.current)
	return s
}

// Current returns the employee the self-service panel is scoped to.
func (s *Service) Current(ctx context.Context) admin.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// MyTasks returns the tasks assigned to the current employee by name.
func (s *Service) MyTasks(ctx context.Context) []admin.Task {
	return s.admins.TasksAssignedTo(ctx, s.Current(ctx).Name)
}

// UpdateTaskStatus forwards the transition to the admin service, which owns
// the counter bookkeeping and the "tasks" notification.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID int64, status admin.TaskStatus) (admin.Task, error) {
	return s.admins.UpdateTaskStatus(ctx, taskID, status)
}

// MySchedule returns the events listing the current employee.
func (s *Service) MySchedule(ctx context.Context) []admin.Event {
	return s.admins.EventsWithParticipant(ctx, s.Current(ctx).Name)
}

// MyNotifications returns the categories the self-service panel surfaces.
func (s *Service) MyNotifications(ctx context.Context) map[string][]notifications.Notification {
	out := make(map[string][]notifications.Notification, 4)
	for _, category := range []string{
		notifications.CategoryTasks,
		notifications.CategorySchedule,
		notifications.CategoryMessages,
		notifications.CategoryProfile,
	} {
		items, err := s.notifier.ListCategory(ctx, category)
		if err != nil {
			continue
		}
		out[category] = items
	}
	return out
}

// Inbox is the employee view of their conversation with the admin: one
// derived chat plus the raw message list.
type Inbox struct {
	Chats    []messaging.Chat    `json:"chats"`
	Messages []messaging.Message `json:"messages"`
}

// MyMessages derives the single admin chat alongside the message list.
func (s *Service) MyMessages(ctx context.Context) Inbox {
	name := s.Current(ctx).Name
	msgs := s.messaging.MessagesWith(ctx, name)

	chat := messaging.Chat{
		ID:          0,
		Name:        messaging.AdminName,
		Role:        "Administrator",
		LastMessage: "No messages yet",
	}
	for _, msg := range msgs {
		chat.LastMessage = msg.Content
		chat.Timestamp = msg.Timestamp
		if msg.Sender == messaging.AdminName && !msg.IsRead {
			chat.Unread++
		}
	}
	if msgs == nil {
		msgs = []messaging.Message{}
	}
	return Inbox{Chats: []messaging.Chat{chat}, Messages: msgs}
}

// SendMessage sends from the current employee to the admin.
func (s *Service) SendMessage(ctx context.Context, content string) (messaging.Message, error) {
	msg, err := s.messaging.Send(ctx, s.Current(ctx).Name, messaging.AdminName, content)
	if err != nil {
		return messaging.Message{}, err
	}
	return msg, nil
}

// ProfilePatch carries optional profile updates; nil fields stay unchanged.
type ProfilePatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// UpdateProfile merges the patch into the current employee profile. The admin
// employee collection is a separate store and is deliberately not touched.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) admin.Employee {
	s.mu.Lock()
	if patch.Name != nil {
		s.current.Name = *patch.Name
	}
	if patch.Email != nil {
		s.current.Email = *patch.Email
	}
	if patch.Phone != nil {
		s.current.Phone = *patch.Phone
	}
	updated := s.current
	s.store.Set(ctx, keyCurrentEmployee, s.current)
	s.mu.Unlock()

	s.notifyEmployee(ctx, notifications.CategoryProfile, "Profile updated successfully")
	return updated
}

// Logout resets the current employee to the seed default and clears the
// employee-facing notification categories. It is a state reset, not a real
// session teardown.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = admin.DefaultCurrentEmployee()
	s.store.Set(ctx, keyCurrentEmployee, s.current)
	s.mu.Unlock()

	s.notifier.Reset(ctx,
		notifications.CategoryTasks,
		notifications.CategoryMessages,
		notifications.CategorySchedule,
	)
}

func (s *Service) notifyEmployee(ctx context.Context, category, content string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Add(ctx, category, content); err != nil {
		s.logger.Warn("notification emit failed", "category", category, "err", err)
	}
}
