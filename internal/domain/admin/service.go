package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"bizadmin/internal/kv"
)

const (
	keyEmployees = "employees"
	keyTasks     = "tasks"
	keyEvents    = "events"
	keyFinances  = "finances"
)

// Notifier receives a human-readable entry for every mutating operation.
type Notifier interface {
	Add(ctx context.Context, category, content string) error
}

// Service owns the employee, task, event and transaction collections. Every
// mutation runs synchronously under one lock, persists the touched
// collections and emits a notification.
type Service struct {
	mu       sync.RWMutex
	store    *kv.Store
	logger   *slog.Logger
	notifier Notifier
	now      func() time.Time
	nextID   func() int64

	employees []Employee
	tasks     []Task
	events    []Event
	finances  []Transaction
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(ctx context.Context, store *kv.Store, notifier Notifier, logger *slog.Logger, nextID func() int64, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:    store,
		logger:   logger,
		notifier: notifier,
		now:      time.Now,
		nextID:   nextID,
	}
	for _, opt := range opts {
		opt(s)
	}
	store.Get(ctx, keyEmployees, &s.employees)
	store.Get(ctx, keyTasks, &s.tasks)
	store.Get(ctx, keyEvents, &s.events)
	store.Get(ctx, keyFinances, &s.finances)
	return s
}

func (s *Service) notify(ctx context.Context, category, content string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Add(ctx, category, content); err != nil {
		s.logger.Warn("notification emit failed", "category", category, "err", err)
	}
}

// Employees returns a copy of the employee collection in insertion order.
func (s *Service) Employees(ctx context.Context) []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *Service) EmployeeByID(ctx context.Context, id int64) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, emp := range s.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
}

func (s *Service) EmployeeByName(ctx context.Context, name string) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, emp := range s.employees {
		if emp.Name == name {
			return emp, nil
		}
	}
	return Employee{}, fmt.Errorf("employee %q: %w", name, ErrNotFound)
}

type EmployeeInput struct {
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	JoinDate string `json:"joinDate"`
}

func (s *Service) AddEmployee(ctx context.Context, input EmployeeInput) (Employee, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Employee{}, fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	if !ValidRole(input.Role) {
		return Employee{}, fmt.Errorf("role %q: %w", input.Role, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp := Employee{
		ID:       s.nextID(),
		Name:     input.Name,
		Role:     input.Role,
		Status:   StatusActive,
		Email:    input.Email,
		Phone:    input.Phone,
		JoinDate: input.JoinDate,
	}
	s.employees = append(s.employees, emp)
	s.store.Set(ctx, keyEmployees, s.employees)
	s.notify(ctx, "employees", fmt.Sprintf("New employee added: %s (%s)", emp.Name, emp.Role))
	return emp, nil
}

func (s *Service) EditEmployee(ctx context.Context, id int64, patch EmployeePatch) (Employee, error) {
	if patch.Role != nil && !ValidRole(*patch.Role) {
		return Employee{}, fmt.Errorf("role %q: %w", *patch.Role, ErrInvalidInput)
	}
	if patch.Status != nil && !ValidEmployeeStatus(*patch.Status) {
		return Employee{}, fmt.Errorf("status %q: %w", *patch.Status, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.employeeIndex(id)
	if idx < 0 {
		return Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	emp := &s.employees[idx]
	if patch.Name != nil {
		emp.Name = *patch.Name
	}
	if patch.Role != nil {
		emp.Role = *patch.Role
	}
	if patch.Email != nil {
		emp.Email = *patch.Email
	}
	if patch.Phone != nil {
		emp.Phone = *patch.Phone
	}
	if patch.JoinDate != nil {
		emp.JoinDate = *patch.JoinDate
	}
	if patch.Status != nil {
		emp.Status = *patch.Status
	}
	s.store.Set(ctx, keyEmployees, s.employees)
	s.notify(ctx, "employees", fmt.Sprintf("Employee updated: %s", emp.Name))
	return *emp, nil
}

// RemoveEmployee deletes the employee along with every task assigned to them
// and strips their name from all event participant lists.
func (s *Service) RemoveEmployee(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.employeeIndex(id)
	if idx < 0 {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	name := s.employees[idx].Name

	kept := s.tasks[:0]
	for _, task := range s.tasks {
		if task.AssignedTo != name {
			kept = append(kept, task)
		}
	}
	s.tasks = kept

	for i := range s.events {
		participants := s.events[i].Participants[:0]
		for _, participant := range s.events[i].Participants {
			if participant != name {
				participants = append(participants, participant)
			}
		}
		s.events[i].Participants = participants
	}

	s.employees = append(s.employees[:idx], s.employees[idx+1:]...)

	s.store.Set(ctx, keyEmployees, s.employees)
	s.store.Set(ctx, keyTasks, s.tasks)
	s.store.Set(ctx, keyEvents, s.events)
	s.notify(ctx, "employees", fmt.Sprintf("Employee removed: %s", name))
	return nil
}

func (s *Service) UpdateEmployeeStatus(ctx context.Context, id int64, status EmployeeStatus) (Employee, error) {
	if !ValidEmployeeStatus(status) {
		return Employee{}, fmt.Errorf("status %q: %w", status, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.employeeIndex(id)
	if idx < 0 {
		return Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	previous := s.employees[idx].Status
	s.employees[idx].Status = status
	s.store.Set(ctx, keyEmployees, s.employees)
	s.notify(ctx, "employees", fmt.Sprintf("%s status changed from %s to %s", s.employees[idx].Name, previous, status))
	return s.employees[idx], nil
}

// Tasks returns a copy of the task collection in insertion order.
func (s *Service) Tasks(ctx context.Context) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Service) TaskByID(ctx context.Context, id int64) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, task := range s.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// TasksAssignedTo returns the tasks assigned to the named employee.
func (s *Service) TasksAssignedTo(ctx context.Context, name string) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Task
	for _, task := range s.tasks {
		if task.AssignedTo == name {
			out = append(out, task)
		}
	}
	return out
}

type TaskInput struct {
	Title       string   `json:"title"`
	AssignedTo  string   `json:"assignedTo"`
	Deadline    string   `json:"deadline"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
}

// AddTask appends a task with status Pending and bumps the assignee's
// open-task counter when that employee exists.
func (s *Service) AddTask(ctx context.Context, input TaskInput) (Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Task{}, fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if !ValidPriority(input.Priority) {
		return Task{}, fmt.Errorf("priority %q: %w", input.Priority, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{
		ID:          s.nextID(),
		Title:       input.Title,
		AssignedTo:  input.AssignedTo,
		Deadline:    input.Deadline,
		Status:      TaskPending,
		Priority:    input.Priority,
		Description: input.Description,
	}
	s.tasks = append(s.tasks, task)
	for i := range s.employees {
		if s.employees[i].Name == task.AssignedTo {
			s.employees[i].OpenTasks++
			break
		}
	}
	s.store.Set(ctx, keyTasks, s.tasks)
	s.store.Set(ctx, keyEmployees, s.employees)
	s.notify(ctx, "tasks", fmt.Sprintf("New task assigned to %s: %s", task.AssignedTo, task.Title))
	return task, nil
}

// UpdateTaskStatus sets the task's status. The assignee's open-task counter
// only moves on the transition into Completed; re-opening a completed task
// does not restore it.
func (s *Service) UpdateTaskStatus(ctx context.Context, id int64, status TaskStatus) (Task, error) {
	if !ValidTaskStatus(status) {
		return Task{}, fmt.Errorf("status %q: %w", status, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(id)
	if idx < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	previous := s.tasks[idx].Status
	s.tasks[idx].Status = status
	if status == TaskCompleted && previous != TaskCompleted {
		s.decrementOpenTasks(s.tasks[idx].AssignedTo)
	}
	s.store.Set(ctx, keyTasks, s.tasks)
	s.store.Set(ctx, keyEmployees, s.employees)
	s.notify(ctx, "tasks", fmt.Sprintf("Task %s: %s", status, s.tasks[idx].Title))
	return s.tasks[idx], nil
}

// RemoveTask deletes the task; a task that never reached Completed gives its
// assignee's open-task counter back.
func (s *Service) RemoveTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.taskIndex(id)
	if idx < 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	task := s.tasks[idx]
	if task.Status != TaskCompleted {
		s.decrementOpenTasks(task.AssignedTo)
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.store.Set(ctx, keyTasks, s.tasks)
	s.store.Set(ctx, keyEmployees, s.employees)
	s.notify(ctx, "tasks", fmt.Sprintf("Task removed: %s", task.Title))
	return nil
}

// Events returns a copy of the event collection in insertion order.
func (s *Service) Events(ctx context.Context) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// EventsWithParticipant returns every event listing the named employee.
func (s *Service) EventsWithParticipant(ctx context.Context, name string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, event := range s.events {
		for _, participant := range event.Participants {
			if participant == name {
				out = append(out, event)
				break
			}
		}
	}
	return out
}

type EventInput struct {
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Type         EventType `json:"type"`
	Participants []string  `json:"participants"`
	Description  string    `json:"description"`
}

func (s *Service) AddEvent(ctx context.Context, input EventInput) (Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return Event{}, fmt.Errorf("title is required: %w", ErrInvalidInput)
	}
	if !ValidEventType(input.Type) {
		return Event{}, fmt.Errorf("event type %q: %w", input.Type, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := Event{
		ID:           s.nextID(),
		Title:        input.Title,
		Date:         input.Date,
		Time:         input.Time,
		Type:         input.Type,
		Participants: append([]string{}, input.Participants...),
		Description:  input.Description,
	}
	s.events = append(s.events, event)
	s.store.Set(ctx, keyEvents, s.events)
	s.notify(ctx, "schedule", fmt.Sprintf("New event scheduled: %s on %s", event.Title, event.Date))
	return event, nil
}

func (s *Service) EditEvent(ctx context.Context, id int64, patch EventPatch) (Event, error) {
	if patch.Type != nil && !ValidEventType(*patch.Type) {
		return Event{}, fmt.Errorf("event type %q: %w", *patch.Type, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.eventIndex(id)
	if idx < 0 {
		return Event{}, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	event := &s.events[idx]
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Time != nil {
		event.Time = *patch.Time
	}
	if patch.Type != nil {
		event.Type = *patch.Type
	}
	if patch.Participants != nil {
		event.Participants = append([]string{}, (*patch.Participants)...)
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	s.store.Set(ctx, keyEvents, s.events)
	s.notify(ctx, "schedule", fmt.Sprintf("Event updated: %s", event.Title))
	return *event, nil
}

func (s *Service) RemoveEvent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.eventIndex(id)
	if idx < 0 {
		return fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	title := s.events[idx].Title
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	s.store.Set(ctx, keyEvents, s.events)
	s.notify(ctx, "schedule", fmt.Sprintf("Event removed: %s", title))
	return nil
}

func (s *Service) employeeIndex(id int64) int {
	for i := range s.employees {
		if s.employees[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) taskIndex(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) eventIndex(id int64) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) decrementOpenTasks(name string) {
	for i := range s.employees {
		if s.employees[i].Name == name {
			if s.employees[i].OpenTasks > 0 {
				s.employees[i].OpenTasks--
			}
			return
		}
	}
}
