package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ajramos/mm3commander/internal/mailman"
)

// truthyTokens is the vocabulary accepted as true for boolean settings
var truthyTokens = map[string]bool{
	"1":    true,
	"t":    true,
	"true": true,
	"y":    true,
	"yes":  true,
	"on":   true,
}

// SettingsServiceImpl implements SettingsService
type SettingsServiceImpl struct {
	dir    Directory
	logger *log.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(dir Directory, logger *log.Logger) *SettingsServiceImpl {
	return &SettingsServiceImpl{dir: dir, logger: logger}
}

// Settings fetches the list and its current settings
func (s *SettingsServiceImpl) Settings(ctx context.Context, fqdn string) (*mailman.Settings, error) {
	list, err := s.dir.List(ctx, fqdn)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", fqdn, err)
	}
	settings, err := s.dir.Settings(ctx, list.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings of %s: %w", fqdn, err)
	}
	return settings, nil
}

// UpdateSetting coerces input to the type of the current value, writes it
// and commits. Empty input returns false and issues no write.
func (s *SettingsServiceImpl) UpdateSetting(ctx context.Context, fqdn, key, input string) (bool, error) {
	if input == "" {
		return false, nil
	}
	settings, err := s.Settings(ctx, fqdn)
	if err != nil {
		return false, err
	}
	current, ok := settings.Get(key)
	if !ok {
		return false, fmt.Errorf("setting %s of %s: %w", key, fqdn, mailman.ErrNotFound)
	}

	value := CoerceSetting(current, input)
	if err := settings.Set(key, value); err != nil {
		return false, err
	}
	if err := settings.Save(ctx); err != nil {
		if s.logger != nil {
			s.logger.Printf("save setting %s=%q on %s failed: %v", key, value.String(), fqdn, err)
		}
		return false, fmt.Errorf("failed to save %s on %s: %w", key, fqdn, err)
	}
	if s.logger != nil {
		s.logger.Printf("set %s=%q (%s) on %s", key, value.String(), value.Kind, fqdn)
	}
	return true, nil
}

// CoerceSetting converts user input to the type of the current value.
// Numeric input that does not parse is kept as text.
func CoerceSetting(current mailman.SettingValue, input string) mailman.SettingValue {
	switch current.Kind {
	case mailman.KindBoolean:
		return mailman.BoolValue(truthyTokens[strings.ToLower(strings.TrimSpace(input))])
	case mailman.KindInteger:
		if i, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64); err == nil {
			return mailman.IntValue(i)
		}
		return mailman.TextValue(input)
	case mailman.KindFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(input), 64); err == nil {
			return mailman.FloatValue(f)
		}
		return mailman.TextValue(input)
	default:
		return mailman.TextValue(input)
	}
}
