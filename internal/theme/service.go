package theme

import (
	"context"
	"fmt"
	"log/slog"
)

// Store is the key-value persistence the service reads and writes
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Service resolves the theme setting and its stylesheet
type Service struct {
	store    Store
	provider CSSProvider
	logger   *slog.Logger
}

// NewService creates a theme service. A nil provider serves the embedded
// sheets.
func NewService(store Store, provider CSSProvider, logger *slog.Logger) *Service {
	if provider == nil {
		provider = NewStaticCSS()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, provider: provider, logger: logger}
}

// Setting returns the stored setting, or System when nothing usable is
// stored
func (s *Service) Setting(ctx context.Context) Setting {
	if s.store == nil {
		return System
	}
	value, err := s.store.Get(ctx, SettingKey)
	if err != nil {
		s.logger.Debug("theme setting unavailable", "error", err)
		return System
	}
	return ParseSetting(value)
}

// SetSetting persists setting
func (s *Service) SetSetting(ctx context.Context, setting Setting) error {
	if !setting.Valid() {
		return fmt.Errorf("invalid theme setting %q", setting)
	}
	if s.store == nil {
		return fmt.Errorf("no settings store configured")
	}
	if err := s.store.Set(ctx, SettingKey, string(setting)); err != nil {
		return fmt.Errorf("failed to save theme setting: %w", err)
	}
	return nil
}

// CSS returns the stylesheet for setting. Failures degrade to no styling.
func (s *Service) CSS(ctx context.Context, setting Setting) string {
	css, err := s.provider.CSS(ctx, setting)
	if err != nil {
		s.logger.Warn("failed to load stylesheet", "setting", setting, "error", err)
		return ""
	}
	return css
}
