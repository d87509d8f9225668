// Package settings persists user preferences of the lab front-ends.
//
// The document is a small JSON object stored under the user's home directory.
// Only the theme is recognised; other keys found in the file are kept as they
// are and written back on save. A missing, unreadable or invalid document
// never fails a front-end: the defaults are used instead and a warning is logged.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/synthetic-data-lab/internal/logger"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"go.uber.org/zap"
)

// Theme is the colour scheme of a front-end.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no valid theme is stored.
const DefaultTheme = ThemeDark

const (
	dirName  = ".synthetic_data_lab"
	fileName = "settings.json"
	themeKey = "theme"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

var validate = validator.New()

type document struct {
	Theme Theme `json:"theme" validate:"required,oneof=light dark"`
}

// ParseTheme validates s as a theme name.
func ParseTheme(s string) (Theme, error) {
	doc := document{Theme: Theme(s)}
	if err := validate.Struct(doc); err != nil {
		return "", errors.Wrapf(errors.ErrCodeInvalidSetting, err, "invalid theme %q, expected light or dark", s)
	}

	return doc.Theme, nil
}

// Settings is the loaded preference document. It is safe for concurrent use.
type Settings struct {
	mu    sync.RWMutex
	path  string
	theme Theme
	extra map[string]json.RawMessage
	log   *logger.Logger
}

// DefaultPath returns ~/.synthetic_data_lab/settings.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSettingsLoadFailed, "cannot locate home directory", err)
	}

	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the settings at path. A missing file is created with the
// defaults; any other problem leaves the defaults in memory.
func Load(path string, log *logger.Logger) *Settings {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Settings{
		path:  path,
		theme: DefaultTheme,
		extra: map[string]json.RawMessage{},
		log:   log.With(zap.String("path", path)),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.save(); err != nil {
				s.log.Warn("failed to write default settings", zap.Error(err))
			}
			return s
		}

		s.log.Warn("failed to read settings, using defaults", zap.Error(err))
		return s
	}

	if err := s.decode(data); err != nil {
		s.log.Warn("invalid settings, using defaults", zap.Error(err))
	}

	return s
}

// decode fills s from data. The stored theme is only taken when it is valid.
func (s *Settings) decode(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeSettingsLoadFailed, "settings are not a JSON object", err)
	}

	var doc document
	if value, ok := raw[themeKey]; ok {
		if err := json.Unmarshal(value, &doc.Theme); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSetting, "theme is not a string", err)
		}
	}

	delete(raw, themeKey)
	s.extra = raw

	if err := validate.Struct(doc); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidSetting, err, "invalid theme %q", doc.Theme)
	}

	s.theme = doc.Theme

	return nil
}

// Path returns the location of the settings document.
func (s *Settings) Path() string {
	return s.path
}

// Theme returns the current theme.
func (s *Settings) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.theme
}

// SetTheme validates theme, stores it and saves the document. The in-memory
// value only changes when the save succeeds.
func (s *Settings) SetTheme(theme Theme) error {
	parsed, err := ParseTheme(string(theme))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.theme
	s.theme = parsed

	if err := s.save(); err != nil {
		s.theme = previous
		return err
	}

	s.log.Debug("theme saved", zap.String("theme", string(parsed)))

	return nil
}

// save writes the document to a temporary file and renames it over path.
// Callers hold s.mu when s is shared.
func (s *Settings) save() error {
	out := make(map[string]any, len(s.extra)+1)
	for k, v := range s.extra {
		out[k] = v
	}
	out[themeKey] = s.theme

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSettingsSaveFailed, "failed to encode settings", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeSettingsSaveFailed, "failed to create settings directory", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeSettingsSaveFailed, "failed to write settings", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeSettingsSaveFailed, "failed to replace settings", err)
	}

	return nil
}
