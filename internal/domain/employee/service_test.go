package employee

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/domain/messaging"
	"bizadmin/internal/domain/notifications"
	"bizadmin/internal/kv"
)

type fixture struct {
	store     *kv.Store
	admins    *admin.Service
	messaging *messaging.Service
	notifier  *notifications.Service
	svc       *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "state.db"), slog.Default())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	var next int64
	nextID := func() int64 {
		next++
		return next
	}

	notifier := notifications.New(ctx, store, slog.Default(), nextID)
	admins := admin.New(ctx, store, notifier, slog.Default(), nextID)
	admins.Seed(ctx)
	msg := messaging.New(ctx, store, admins, notifier, slog.Default(), nextID)
	svc := New(ctx, store, admins, msg, notifier, slog.Default())
	return &fixture{store: store, admins: admins, messaging: msg, notifier: notifier, svc: svc}
}

func TestCurrentDefaultsToSeedProfile(t *testing.T) {
	f := newFixture(t)

	current := f.svc.Current(context.Background())
	if current.Name != "John Doe" || current.Role != admin.RoleTechnician {
		t.Fatalf("unexpected default profile: %+v", current)
	}
}

func TestMyTasksFiltersByAssignee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.admins.AddTask(ctx, admin.TaskInput{Title: "Mine", AssignedTo: "John Doe", Priority: admin.PriorityHigh})
	_, _ = f.admins.AddTask(ctx, admin.TaskInput{Title: "Hers", AssignedTo: "Jane Smith", Priority: admin.PriorityLow})

	tasks := f.svc.MyTasks(ctx)
	for _, task := range tasks {
		if task.AssignedTo != "John Doe" {
			t.Fatalf("foreign task leaked in: %+v", task)
		}
	}
	// the seed task plus the one added above
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestMyScheduleFiltersByParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _ = f.admins.AddEvent(ctx, admin.EventInput{Title: "Sales only", Date: "2025-04-01", Type: admin.EventMeeting, Participants: []string{"Jane Smith"}})

	for _, event := range f.svc.MySchedule(ctx) {
		found := false
		for _, participant := range event.Participants {
			if participant == "John Doe" {
				found = true
			}
		}
		if !found {
			t.Fatalf("event without the current employee leaked in: %+v", event)
		}
	}
}

func TestInboxDerivesAdminChat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inbox := f.svc.MyMessages(ctx)
	if len(inbox.Chats) != 1 || inbox.Chats[0].Name != messaging.AdminName {
		t.Fatalf("expected single admin chat, got %+v", inbox.Chats)
	}
	if inbox.Chats[0].LastMessage != "No messages yet" {
		t.Fatalf("unexpected placeholder: %q", inbox.Chats[0].LastMessage)
	}

	_, _ = f.messaging.Send(ctx, messaging.AdminName, "John Doe", "Ping")
	if _, err := f.svc.SendMessage(ctx, "Pong"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inbox = f.svc.MyMessages(ctx)
	if len(inbox.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(inbox.Messages))
	}
	if inbox.Chats[0].LastMessage != "Pong" {
		t.Fatalf("expected latest content, got %q", inbox.Chats[0].LastMessage)
	}
	if inbox.Chats[0].Unread != 1 {
		t.Fatalf("expected 1 unread from admin, got %d", inbox.Chats[0].Unread)
	}
}

func TestUpdateProfilePersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	phone := "+91 9000000000"
	updated := f.svc.UpdateProfile(ctx, ProfilePatch{Phone: &phone})
	if updated.Phone != phone {
		t.Fatalf("phone not updated: %s", updated.Phone)
	}

	// a fresh service over the same store sees the change
	again := New(ctx, f.store, f.admins, f.messaging, f.notifier, slog.Default())
	if again.Current(ctx).Phone != phone {
		t.Fatal("profile update not persisted")
	}

	entries, err := f.notifier.ListCategory(ctx, notifications.CategoryProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected profile notification, got %d", len(entries))
	}
}

func TestLogoutResetsProfileAndNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name := "Johnny"
	f.svc.UpdateProfile(ctx, ProfilePatch{Name: &name})
	_ = f.notifier.Add(ctx, notifications.CategoryTasks, "pending ack")
	_ = f.notifier.Add(ctx, notifications.CategoryFinance, "stays put")

	f.svc.Logout(ctx)

	if got := f.svc.Current(ctx).Name; got != "John Doe" {
		t.Fatalf("expected seed default after logout, got %q", got)
	}
	tasks, _ := f.notifier.ListCategory(ctx, notifications.CategoryTasks)
	if len(tasks) != 0 {
		t.Fatalf("expected tasks notifications cleared, got %d", len(tasks))
	}
	finance, _ := f.notifier.ListCategory(ctx, notifications.CategoryFinance)
	if len(finance) != 1 {
		t.Fatalf("finance notifications must survive logout, got %d", len(finance))
	}
}
