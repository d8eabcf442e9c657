package settings

import (
	"context"
	"log/slog"
	"sync"

	"bizadmin/internal/kv"
)

const (
	keyTheme   = "theme"
	keyProfile = "profileSettings"
)

type Profile struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type Settings struct {
	Theme   string  `json:"theme"`
	Profile Profile `json:"profile"`
}

// Service keeps the presentation-level settings that persist alongside the
// data collections: the theme choice and the settings-page profile fields.
type Service struct {
	mu     sync.RWMutex
	store  *kv.Store
	logger *slog.Logger

	theme   string
	profile Profile
}

func New(ctx context.Context, store *kv.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger, theme: "dark"}
	store.Get(ctx, keyTheme, &s.theme)
	store.Get(ctx, keyProfile, &s.profile)
	return s
}

func (s *Service) Get(ctx context.Context) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Settings{Theme: s.theme, Profile: s.profile}
}

type Patch struct {
	Theme   *string  `json:"theme"`
	Profile *Profile `json:"profile"`
}

func (s *Service) Update(ctx context.Context, patch Patch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Theme != nil {
		s.theme = *patch.Theme
		s.store.Set(ctx, keyTheme, s.theme)
	}
	if patch.Profile != nil {
		s.profile = *patch.Profile
		s.store.Set(ctx, keyProfile, s.profile)
	}
	return Settings{Theme: s.theme, Profile: s.profile}
}
