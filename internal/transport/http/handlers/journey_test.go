package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bizadmin/internal/app/server"
	"bizadmin/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func newTestApp(t *testing.T) (*server.App, *httptest.Server) {
	t.Helper()
	cfg := config.Config{
		Addr:             ":0",
		Environment:      "test",
		DataPath:         filepath.Join(t.TempDir(), "journey.db"),
		JWTSecret:        "test-secret",
		TokenTTL:         time.Hour,
		AdminEmail:       "admin@test.local",
		AdminPassword:    "AdminPass123",
		EmployeeEmail:    "john@test.local",
		EmployeePassword: "EmployeePass123",
		PollInterval:     50 * time.Millisecond,
		MaxBodyBytes:     1048576,
		RunSeed:          true,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any) (int, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, url, err)
	}
	return resp.StatusCode, env
}

func login(t *testing.T, client *http.Client, baseURL, email, password, role string) string {
	t.Helper()
	status, env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	if status != http.StatusOK {
		t.Fatalf("login as %s failed with status %d", role, status)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	if data.Token == "" {
		t.Fatal("expected a token")
	}
	return data.Token
}

func TestAdminJourney(t *testing.T) {
	app, ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL, app.Config.AdminEmail, app.Config.AdminPassword, "admin")

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list employees: status %d", status)
	}
	var employees []struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Tasks int    `json:"tasks"`
	}
	if err := json.Unmarshal(env.Data, &employees); err != nil {
		t.Fatalf("decode employees: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 seeded employees, got %d", len(employees))
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/employees", token, map[string]string{
		"name":     "Alice Brown",
		"role":     "Sales",
		"email":    "alice@test.local",
		"phone":    "+91 9876500000",
		"joinDate": "2025-06-01",
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee: status %d", status)
	}
	var created struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
		Tasks  int    `json:"tasks"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created employee: %v", err)
	}
	if created.Status != "Active" || created.Tasks != 0 {
		t.Fatalf("unexpected new employee defaults: %+v", created)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/tasks", token, map[string]string{
		"title":      "Install cameras",
		"assignedTo": "Alice Brown",
		"deadline":   "2025-09-15",
		"priority":   "High",
	})
	if status != http.StatusCreated {
		t.Fatalf("create task: status %d", status)
	}
	var task struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if task.Status != "Pending" {
		t.Fatalf("expected new task to be Pending, got %s", task.Status)
	}

	status, env = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, created.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("get employee: status %d", status)
	}
	var assignee struct {
		Tasks int `json:"tasks"`
	}
	if err := json.Unmarshal(env.Data, &assignee); err != nil {
		t.Fatalf("decode assignee: %v", err)
	}
	if assignee.Tasks != 1 {
		t.Fatalf("expected open task counter 1, got %d", assignee.Tasks)
	}

	status, _ = doJSON(t, client, http.MethodPost, fmt.Sprintf("%s/api/v1/tasks/%d/status", ts.URL, task.ID), token, map[string]string{
		"status": "Completed",
	})
	if status != http.StatusOK {
		t.Fatalf("complete task: status %d", status)
	}
	status, env = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/employees/%d", ts.URL, created.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("get employee after completion: status %d", status)
	}
	if err := json.Unmarshal(env.Data, &assignee); err != nil {
		t.Fatalf("decode assignee: %v", err)
	}
	if assignee.Tasks != 0 {
		t.Fatalf("expected counter back to 0, got %d", assignee.Tasks)
	}

	today := time.Now().Format("2006-01-02")
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/finances", token, map[string]any{
		"type":        "income",
		"amount":      "500",
		"category":    "Sales",
		"description": "Camera install",
		"date":        today,
	})
	if status != http.StatusCreated {
		t.Fatalf("add transaction: status %d", status)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/finances/stats?range=currentWeek", token, nil)
	if status != http.StatusOK {
		t.Fatalf("financial stats: status %d", status)
	}
	var stats struct {
		Labels   []string `json:"labels"`
		Revenue  []string `json:"revenue"`
		Expenses []string `json:"expenses"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if len(stats.Labels) == 0 || len(stats.Labels) != len(stats.Revenue) || len(stats.Labels) != len(stats.Expenses) {
		t.Fatalf("mismatched stats series: %+v", stats)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/statistics", token, nil)
	if status != http.StatusOK {
		t.Fatalf("statistics: status %d", status)
	}
	var overview struct {
		TotalEmployees int `json:"totalEmployees"`
		CompletedTasks int `json:"completedTasks"`
	}
	if err := json.Unmarshal(env.Data, &overview); err != nil {
		t.Fatalf("decode statistics: %v", err)
	}
	if overview.TotalEmployees != 3 {
		t.Fatalf("expected 3 employees in statistics, got %d", overview.TotalEmployees)
	}
	if overview.CompletedTasks != 1 {
		t.Fatalf("expected 1 completed task, got %d", overview.CompletedTasks)
	}

	status, env = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/chats", token, map[string]int64{
		"employeeId": created.ID,
	})
	if status != http.StatusCreated {
		t.Fatalf("start chat: status %d", status)
	}
	status, _ = doJSON(t, client, http.MethodPost, fmt.Sprintf("%s/api/v1/chats/%d/messages", ts.URL, created.ID), token, map[string]string{
		"content": "Welcome aboard",
	})
	if status != http.StatusCreated {
		t.Fatalf("send chat message: status %d", status)
	}
	status, env = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/v1/chats/%d/messages", ts.URL, created.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("chat messages: status %d", status)
	}
	var msgs []struct {
		Sender  string `json:"sender"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(env.Data, &msgs); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Sender != "Admin" {
		t.Fatalf("unexpected chat messages: %+v", msgs)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/notifications/employees", token, nil)
	if status != http.StatusOK {
		t.Fatalf("notifications: status %d", status)
	}
	var notes []struct {
		Content string `json:"content"`
		IsRead  bool   `json:"isRead"`
	}
	if err := json.Unmarshal(env.Data, &notes); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(notes) == 0 {
		t.Fatal("expected an employees notification after create")
	}
}

func TestReportDownloads(t *testing.T) {
	app, ts := newTestApp(t)
	client := ts.Client()
	token := login(t, client, ts.URL, app.Config.AdminEmail, app.Config.AdminPassword, "admin")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/reports/financial?format=csv", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("csv report: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("csv report: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %s", ct)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	body := string(raw)
	if !strings.HasPrefix(body, "date,type,category,amount,description") {
		t.Fatalf("unexpected csv header: %q", body)
	}
	if !strings.Contains(body, "CCTV Installation") || !strings.Contains(body, "Security Cameras Purchase") {
		t.Fatalf("expected seeded transaction rows in csv output, got %q", body)
	}

	status, _ := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/reports/unknown", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown report type, got %d", status)
	}
}

func TestEmployeeJourney(t *testing.T) {
	app, ts := newTestApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, app.Config.AdminEmail, app.Config.AdminPassword, "admin")
	employeeToken := login(t, client, ts.URL, app.Config.EmployeeEmail, app.Config.EmployeePassword, "employee")

	status, _ := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/employees", employeeToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for employee on admin route, got %d", status)
	}

	status, env := doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/me", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("current employee: status %d", status)
	}
	var me struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode current employee: %v", err)
	}
	if me.Name != "John Doe" {
		t.Fatalf("expected John Doe, got %s", me.Name)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/me/tasks", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("my tasks: status %d", status)
	}
	var tasks []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Server Maintenance" {
		t.Fatalf("unexpected seeded tasks: %+v", tasks)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/me/schedule", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("my schedule: status %d", status)
	}
	var events []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(env.Data, &events); err != nil {
		t.Fatalf("decode schedule: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Team Meeting" {
		t.Fatalf("unexpected seeded schedule: %+v", events)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/me/messages", employeeToken, map[string]string{
		"content": "Need a day off next week",
	})
	if status != http.StatusCreated {
		t.Fatalf("send message: status %d", status)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/me/messages", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("my messages: status %d", status)
	}
	var inbox struct {
		Chats []struct {
			Name string `json:"name"`
		} `json:"chats"`
		Messages []struct {
			Sender string `json:"sender"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(env.Data, &inbox); err != nil {
		t.Fatalf("decode inbox: %v", err)
	}
	if len(inbox.Chats) != 1 || inbox.Chats[0].Name != "Admin" {
		t.Fatalf("expected the single admin chat, got %+v", inbox.Chats)
	}
	if len(inbox.Messages) != 1 || inbox.Messages[0].Sender != "John Doe" {
		t.Fatalf("unexpected inbox messages: %+v", inbox.Messages)
	}

	status, env = doJSON(t, client, http.MethodGet, ts.URL+"/api/v1/chats", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin chats: status %d", status)
	}
	var chats []struct {
		Name   string `json:"name"`
		Unread int    `json:"unread"`
	}
	if err := json.Unmarshal(env.Data, &chats); err != nil {
		t.Fatalf("decode chats: %v", err)
	}
	if len(chats) == 0 || chats[0].Name != "John Doe" || chats[0].Unread != 1 {
		t.Fatalf("expected John Doe chat first with 1 unread, got %+v", chats)
	}

	status, env = doJSON(t, client, http.MethodPut, ts.URL+"/api/v1/me/profile", employeeToken, map[string]string{
		"phone": "+91 9999999999",
	})
	if status != http.StatusOK {
		t.Fatalf("update profile: status %d", status)
	}
	var profile struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Phone != "+91 9999999999" {
		t.Fatalf("expected updated phone, got %s", profile.Phone)
	}

	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/api/v1/me/logout", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("logout: status %d", status)
	}
}
